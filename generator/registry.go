package generator

import (
	"fmt"
	"strings"

	"github.com/golang-cz/textcase"
)

// ExprBuilder renders a conversion applied to a Python expression.
type ExprBuilder func(expr string) string

// Conversion maps one native type spelling to its host type and the
// expressions that move values across the boundary. Both builders nil means
// identity passthrough; a nil ToHost with a non-nil ToNative marks a
// native-only helper type (narrowing casts) that never flows outward.
type Conversion struct {
	NativeType string
	HostType   string
	ToNative   ExprBuilder
	ToHost     ExprBuilder

	// PointerBacked marks conversions whose native value is a pointer
	// (strings, opaque handle typedefs): outward reads must surface a null
	// pointer as an absent host value instead of converting it.
	PointerBacked bool
}

// Identity reports whether the conversion is a pure passthrough.
func (c Conversion) Identity() bool {
	return c.ToNative == nil && c.ToHost == nil
}

// Registry maps native type spellings to conversions. It is populated once
// by NewRegistry and read-only afterwards.
type Registry struct {
	conversions map[string]Conversion
}

// NewRegistry builds a registry with the supported type families
// registered: identity primitives, strings, temporal types, opaque text
// buffers, and fixed-width integer aliases.
func NewRegistry() *Registry {
	r := &Registry{conversions: make(map[string]Conversion)}
	r.registerDefaults()
	return r
}

// Lookup returns the conversion for a native type spelling.
func (r *Registry) Lookup(spelling string) (Conversion, bool) {
	c, ok := r.conversions[strings.TrimSpace(spelling)]
	return c, ok
}

// Register records a base conversion under the four spellings that share
// its marshalling strategy: T, T *, const T, const T *.
func (r *Registry) Register(c Conversion) {
	base := c.NativeType
	for _, spelling := range []string{base, base + " *", "const " + base, "const " + base + " *"} {
		entry := c
		entry.NativeType = spelling
		r.conversions[spelling] = entry
	}
}

// RegisterIdentity records a passthrough conversion for a primitive.
func (r *Registry) RegisterIdentity(native, host string) {
	r.Register(Conversion{NativeType: native, HostType: host})
}

// RegisterHandle records an opaque handle typedef: inward conversion
// unwraps the host wrapper's _handle, outward conversion constructs the
// wrapper class. Handle typedefs are pointers under the hood, so outward
// reads carry the null-sentinel guard.
func (r *Registry) RegisterHandle(name string) {
	class := textcase.PascalCase(name)
	r.Register(Conversion{
		NativeType:    name,
		HostType:      class,
		ToNative:      func(expr string) string { return expr + "._handle" },
		ToHost:        func(expr string) string { return class + "(" + expr + ")" },
		PointerBacked: true,
	})
}

func (r *Registry) registerDefaults() {
	identities := []struct {
		native string
		host   string
	}{
		{"void", "None"},
		{"bool", "bool"},
		{"short", "int"},
		{"int", "int"},
		{"long", "int"},
		{"unsigned char", "int"},
		{"unsigned short", "int"},
		{"unsigned int", "int"},
		{"unsigned long", "int"},
		{"size_t", "int"},
		{"idx_t", "int"},
		{"float", "float"},
		{"double", "float"},
	}
	for _, id := range identities {
		r.RegisterIdentity(id.native, id.host)
	}

	r.Register(Conversion{
		NativeType:    "char",
		HostType:      "str",
		ToNative:      func(expr string) string { return expr + `.encode("utf-8")` },
		ToHost:        func(expr string) string { return `_ffi.string(` + expr + `).decode("utf-8")` },
		PointerBacked: true,
	})

	temporal := []struct {
		native string
		host   string
		helper string
	}{
		{"timestamp_t", "datetime.datetime", "_timestamp"},
		{"date_t", "datetime.date", "_date"},
		{"interval_t", "datetime.timedelta", "_interval"},
		{"text_t", "str", "_text"},
	}
	for _, t := range temporal {
		helper := t.helper
		r.Register(Conversion{
			NativeType: t.native,
			HostType:   t.host,
			ToNative:   func(expr string) string { return helper + "_to_native(" + expr + ")" },
			ToHost:     func(expr string) string { return helper + "_to_host(" + expr + ")" },
		})
	}

	widths := []string{"int8_t", "uint8_t", "int16_t", "uint16_t", "int32_t", "uint32_t", "int64_t", "uint64_t"}
	for _, w := range widths {
		width := w
		r.Register(Conversion{
			NativeType: width,
			HostType:   "int",
			ToNative: func(expr string) string {
				return fmt.Sprintf("_ffi.cast(%q, %s)", width, expr)
			},
		})
	}
}
