package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
roles:
  nullable:
    - function: db_bind_value
      parameter: value
  result:
    - function: db_fetch
      parameter: row
  output:
    - function: db_stats
      parameter: pages
  array:
    - function: db_append_values
      parameter: values
overrides:
  db_from_env: |
    def db_from_env():
        return _lib.db_open_path(os.environ["DB_PATH"].encode("utf-8"))
modifiers:
  db_append_values:
    sized_sequence:
      pointer: values
      length: count
    drop_error_check: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.True(t, cfg.Nullable("db_bind_value", "value"))
	assert.False(t, cfg.Nullable("db_bind_value", "other"))
	assert.True(t, cfg.Result("db_fetch", "row"))
	assert.True(t, cfg.Output("db_stats", "pages"))
	assert.True(t, cfg.Array("db_append_values", "values"))

	require.Contains(t, cfg.Overrides, "db_from_env")
	assert.Contains(t, cfg.Overrides["db_from_env"], "os.environ")

	mod, ok := cfg.Modifiers["db_append_values"]
	require.True(t, ok)
	require.NotNil(t, mod.SizedSequence)
	assert.Equal(t, "values", mod.SizedSequence.Pointer)
	assert.Equal(t, "count", mod.SizedSequence.Length)
	assert.True(t, mod.DropErrorCheck)
}

func TestParseRejectsResultOutputOverlap(t *testing.T) {
	doc := `
roles:
  result:
    - function: db_fetch
      parameter: row
  output:
    - function: db_fetch
      parameter: row
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both result and output")
}

func TestParseRejectsNullableArrayOverlap(t *testing.T) {
	doc := `
roles:
  nullable:
    - function: db_append_values
      parameter: values
  array:
    - function: db_append_values
      parameter: values
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both nullable and array")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Nullable("any", "value"))
	assert.Empty(t, cfg.Overrides)
	assert.Empty(t, cfg.Modifiers)
}
