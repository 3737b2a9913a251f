package generator

import (
	"strings"

	"github.com/golang-cz/textcase"
)

// Type is the resolved descriptor for one native type spelling.
type Type struct {
	Native        string
	Host          string
	IsPointer     bool
	IsArray       bool
	Interoperable bool

	conv  *Conversion
	deref string
}

// numericHosts are the host types cheap enough to pass through unwrapped.
var numericHosts = map[string]bool{
	"int":   true,
	"float": true,
	"bool":  true,
}

// ResolveType builds a Type for a raw spelling. Arrays and out-slots
// resolve their conversion against the singly-dereferenced spelling: the
// outer pointer is the array's memory or the scratch slot, not part of the
// element's declared type.
func ResolveType(reg *Registry, spelling string, isArray, isOut bool) Type {
	spelling = strings.TrimSpace(spelling)

	t := Type{
		Native:    spelling,
		IsPointer: strings.HasSuffix(spelling, "*"),
		IsArray:   isArray,
		deref:     spelling,
	}

	if isArray || isOut {
		t.deref = stripPointer(spelling)
	}

	if c, ok := reg.Lookup(t.deref); ok {
		t.conv = &c
		t.Host = c.HostType
	} else {
		t.Host = opaqueHost(t.deref)
	}

	if isArray {
		t.Host = "List[" + t.Host + "]"
	}

	t.Interoperable = t.conv == nil || t.conv.Identity() || numericHosts[t.conv.HostType]

	return t
}

// Conversion returns the element conversion, if any.
func (t Type) Conversion() (Conversion, bool) {
	if t.conv == nil {
		return Conversion{}, false
	}
	return *t.conv, true
}

// stripPointer removes one level of indirection from a spelling, or one
// bracket-array suffix.
func stripPointer(spelling string) string {
	if strings.HasSuffix(spelling, "[]") {
		return strings.TrimSpace(strings.TrimSuffix(spelling, "[]"))
	}
	if strings.HasSuffix(spelling, "*") {
		return strings.TrimSpace(strings.TrimSuffix(spelling, "*"))
	}
	return spelling
}

// opaqueHost renders an unregistered spelling as an opaque handle type
// name: qualifiers and indirection dropped, PascalCase identifier.
func opaqueHost(spelling string) string {
	base := spelling
	base = strings.ReplaceAll(base, "const ", "")
	base = strings.ReplaceAll(base, "*", "")
	base = strings.TrimSuffix(strings.TrimSpace(base), "[]")
	if base == "" {
		return "Any"
	}
	return textcase.PascalCase(base)
}
