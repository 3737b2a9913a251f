package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/pybindgen/config"
	"github.com/ardanlabs/pybindgen/parser"
)

const testHeader = `
typedef struct database_s * database;

int db_open(const char *path, database *result);
void db_close(database db);
const char *db_version(void);
void db_set_threads(database db, int threads);
`

func generate(t *testing.T, doc string) (map[string]string, []string) {
	t.Helper()

	feed, err := parser.Parse(testHeader)
	require.NoError(t, err)

	cfg := config.Default()
	if doc != "" {
		cfg, err = config.Parse([]byte(doc))
		require.NoError(t, err)
	}

	files, warnings, err := New("db", cfg, feed).Generate()
	require.NoError(t, err)

	return files, warnings
}

func TestGenerateFiles(t *testing.T) {
	files, warnings := generate(t, "")

	assert.Empty(t, warnings)
	require.Len(t, files, 3)

	support := files["support.py"]
	assert.Contains(t, support, "_ffi = FFI()")
	assert.Contains(t, support, "if _lib.db_error_set():")
	assert.Contains(t, support, "def _timestamp_to_native(value):")

	types := files["types.py"]
	assert.Contains(t, types, "class Database:")

	funcs := files["functions.py"]
	assert.True(t, strings.HasPrefix(funcs, "from __future__ import annotations\n"))
	assert.Contains(t, funcs, "from .support import (")
	assert.Contains(t, funcs, "from .types import (\n    Database,\n)")
	assert.Contains(t, funcs, "def db_open(path: str) -> Database:")
	assert.Contains(t, funcs, "return Database(result_converted[0]) if result_converted[0] != _ffi.NULL else None")
	assert.Contains(t, funcs, "def db_close(db: Database) -> None:")
	assert.Contains(t, funcs, "db_converted = db._handle")
	assert.Contains(t, funcs, "_lib.db_close(db_converted)")
	assert.Contains(t, funcs, "def db_version() -> str:")
	assert.Contains(t, funcs, `return _ffi.string(inner_call_result).decode("utf-8") if inner_call_result != _ffi.NULL else None`)
	assert.Contains(t, funcs, "def db_set_threads(db: Database, threads: int) -> None:")
}

// Every class name the wrappers reference resolves at import time: the
// generated module imports the handle classes it constructs.
func TestGenerateImportsCoverAnnotations(t *testing.T) {
	files, _ := generate(t, "")

	funcs := files["functions.py"]
	assert.Contains(t, funcs, "from .types import (")

	types := files["types.py"]
	assert.Contains(t, types, "class Database:")
}

// An override bypasses the generic model entirely, even when curated role
// tables also reference the function.
func TestGenerateOverrideIsLiteral(t *testing.T) {
	override := "def db_version():\n    return \"static\"\n"

	files, warnings := generate(t, `
roles:
  nullable:
    - function: db_version
      parameter: ignored
overrides:
  db_version: |
    def db_version():
        return "static"
`)

	assert.Empty(t, warnings)
	assert.Contains(t, files["functions.py"], override)
	assert.NotContains(t, files["functions.py"], "def db_version() -> str:")
}

func TestGenerateWarnsOnDriftAndModifierMisuse(t *testing.T) {
	files, warnings := generate(t, `
overrides:
  db_gone: |
    def db_gone():
        return None
modifiers:
  db_close:
    sized_sequence:
      pointer: missing
      length: also_missing
`)

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `override references unknown function "db_gone"`)
	assert.Contains(t, warnings[1], `modifier for "db_close" not applied`)

	// Best effort: the function still renders generically.
	assert.Contains(t, files["functions.py"], "def db_close(db: Database) -> None:")
}

func TestGenerateFunctionOrderFollowsFeed(t *testing.T) {
	files, _ := generate(t, "")

	funcs := files["functions.py"]
	open := strings.Index(funcs, "def db_open")
	version := strings.Index(funcs, "def db_version")
	require.Greater(t, open, -1)
	require.Greater(t, version, -1)
	assert.Less(t, open, version)
}
