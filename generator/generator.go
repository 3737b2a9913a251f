package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/golang-cz/textcase"

	"github.com/ardanlabs/pybindgen/config"
	"github.com/ardanlabs/pybindgen/parser"
)

// Generator renders one Python binding package from a declaration feed and
// a curated configuration.
type Generator struct {
	libName string
	cfg     *config.Config
	feed    *parser.Feed
	reg     *Registry
	cls     *Classifier
}

func New(libName string, cfg *config.Config, feed *parser.Feed) *Generator {
	reg := NewRegistry()
	for _, name := range feed.Opaques {
		reg.RegisterHandle(name)
	}

	return &Generator{
		libName: libName,
		cfg:     cfg,
		feed:    feed,
		reg:     reg,
		cls:     NewClassifier(cfg),
	}
}

// Generate renders the binding files. The returned warnings are
// configuration-drift findings; they never abort generation.
func (g *Generator) Generate() (map[string]string, []string, error) {
	files := make(map[string]string)

	warnings := CheckConfig(g.cfg, g.feed.Names())

	supportCode, err := g.generateSupport()
	if err != nil {
		return nil, nil, fmt.Errorf("generating support: %w", err)
	}
	files["support.py"] = supportCode

	files["types.py"] = g.generateTypes()

	funcsCode, funcWarnings := g.generateFunctions()
	files["functions.py"] = funcsCode
	warnings = append(warnings, funcWarnings...)

	return files, warnings, nil
}

func (g *Generator) generateSupport() (string, error) {
	tmpl := `import datetime

from cffi import FFI

_ffi = FFI()


class NativeError(Exception):
    """Raised when the native library reports an error state."""


class _LazyLib:
    def __init__(self):
        self._lib = None

    def __getattr__(self, name):
        if self._lib is None:
            raise NativeError("library not loaded; call load() first")
        return getattr(self._lib, name)


_lib = _LazyLib()


def load(path):
    _lib._lib = _ffi.dlopen(path)


def _check_error():
    if _lib.{{.Lib}}_error_set():
        message = _ffi.string(_lib.{{.Lib}}_error_message()).decode("utf-8")
        _lib.{{.Lib}}_error_clear()
        raise NativeError(message)


_EPOCH_ORDINAL = datetime.date(1970, 1, 1).toordinal()


def _timestamp_to_native(value):
    return int(value.timestamp() * 1_000_000)


def _timestamp_to_host(value):
    return datetime.datetime.fromtimestamp(value / 1_000_000)


def _date_to_native(value):
    return value.toordinal() - _EPOCH_ORDINAL


def _date_to_host(value):
    return datetime.date.fromordinal(value + _EPOCH_ORDINAL)


def _interval_to_native(value):
    return int(value / datetime.timedelta(microseconds=1))


def _interval_to_host(value):
    return datetime.timedelta(microseconds=value)


def _text_to_native(value):
    return value.encode("utf-8")


def _text_to_host(value):
    return _ffi.string(value).decode("utf-8")
`

	t, err := template.New("support").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, map[string]string{
		"Lib": g.libName,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (g *Generator) generateTypes() string {
	var buf bytes.Buffer

	buf.WriteString("\"\"\"Opaque handle types.\"\"\"\n")

	for _, name := range g.feed.Opaques {
		fmt.Fprintf(&buf, "\n\nclass %s:\n", textcase.PascalCase(name))
		fmt.Fprintf(&buf, "    \"\"\"Opaque %s handle.\"\"\"\n\n", name)
		fmt.Fprintf(&buf, "    __slots__ = (\"_handle\",)\n\n")
		fmt.Fprintf(&buf, "    def __init__(self, handle):\n")
		fmt.Fprintf(&buf, "        self._handle = handle\n")
	}

	return buf.String()
}

func (g *Generator) generateFunctions() (string, []string) {
	var body bytes.Buffer
	var warnings []string

	for _, decl := range g.feed.Declarations {
		code, warning := g.renderFunction(decl)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		body.WriteString("\n")
		body.WriteString(code)
		if !strings.HasSuffix(code, "\n") {
			body.WriteString("\n")
		}
	}

	var buf bytes.Buffer

	buf.WriteString("from __future__ import annotations\n\n")
	buf.WriteString("import datetime\n")
	buf.WriteString("from typing import Any, List, Optional, Tuple\n\n")
	buf.WriteString("from .support import (\n")
	for _, name := range []string{
		"_check_error", "_date_to_host", "_date_to_native", "_ffi",
		"_interval_to_host", "_interval_to_native", "_lib", "_text_to_host",
		"_text_to_native", "_timestamp_to_host", "_timestamp_to_native",
	} {
		fmt.Fprintf(&buf, "    %s,\n", name)
	}
	buf.WriteString(")\n")

	if classes := g.usedHandleClasses(body.String()); len(classes) > 0 {
		buf.WriteString("from .types import (\n")
		for _, class := range classes {
			fmt.Fprintf(&buf, "    %s,\n", class)
		}
		buf.WriteString(")\n")
	}

	buf.WriteString("\n")
	buf.WriteString(body.String())

	return buf.String(), warnings
}

// usedHandleClasses lists the opaque handle classes the rendered wrappers
// reference, so functions.py imports exactly what it constructs.
func (g *Generator) usedHandleClasses(body string) []string {
	var classes []string
	for _, name := range g.feed.Opaques {
		class := textcase.PascalCase(name)
		if strings.Contains(body, class) {
			classes = append(classes, class)
		}
	}
	sort.Strings(classes)
	return classes
}

// renderFunction produces one wrapper: the override text verbatim when one
// is curated, otherwise the generic assembly with any curated modifier
// applied to the model first.
func (g *Generator) renderFunction(decl parser.Declaration) (string, string) {
	if text, ok := g.cfg.Overrides[decl.Name]; ok {
		return text, ""
	}

	fn := NewFunction(g.reg, g.cls, decl)

	var warning string
	if mod, ok := g.cfg.Modifiers[decl.Name]; ok {
		if err := ApplyModifier(g.reg, fn, mod); err != nil {
			warning = fmt.Sprintf("modifier for %q not applied: %v", decl.Name, err)
		}
	}

	return fn.Render(), warning
}
