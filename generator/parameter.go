package generator

import (
	"fmt"
	"strings"
)

// pyKeywords renames declared C parameter names that collide with Python
// reserved words.
var pyKeywords = map[string]string{
	"and": "and_", "as": "as_", "assert": "assert_", "async": "async_",
	"await": "await_", "break": "break_", "class": "class_",
	"continue": "continue_", "def": "def_", "del": "del_", "elif": "elif_",
	"else": "else_", "except": "except_", "finally": "finally_",
	"for": "for_", "from": "from_", "global": "global_", "if": "if_",
	"import": "import_", "in": "in_", "is": "is_", "lambda": "lambda_",
	"nonlocal": "nonlocal_", "not": "not_", "or": "or_", "pass": "pass_",
	"raise": "raise_", "return": "return_", "try": "try_", "while": "while_",
	"with": "with_", "yield": "yield_",
}

// Parameter is one parameter's full descriptor: renamed identifier,
// resolved type, and role flags.
type Parameter struct {
	Name     string
	Type     Type
	Nullable bool
	Result   bool
	Output   bool

	// Set by the sized_sequence modifier: the parameter disappears from the
	// declared signature and callExpr supplies its call argument instead.
	hidden   bool
	callExpr string
}

// NewParameter resolves one raw (type, name) pair against the registry and
// classifier. Role lookups are keyed by function plus parameter name.
func NewParameter(reg *Registry, cls *Classifier, function, spelling, name string) *Parameter {
	if name == "" {
		name = "arg"
	}

	result := cls.Result(function, name)
	output := !result && cls.Output(function, name, spelling)
	isArray := cls.Array(function, name, spelling)

	p := &Parameter{
		Name:     renameKeyword(name),
		Type:     ResolveType(reg, spelling, isArray, result || output),
		Nullable: cls.Nullable(function, name),
		Result:   result,
		Output:   output,
	}

	return p
}

// Input reports whether the parameter appears in the declared signature.
func (p *Parameter) Input() bool {
	return !p.Result && !p.Output
}

func (p *Parameter) converted() string {
	return p.Name + "_converted"
}

// Declaration renders the "name: host_type" signature fragment. Output and
// result parameters are native-side scratch space, never declared.
func (p *Parameter) Declaration() string {
	host := p.Type.Host
	if p.Nullable {
		host = "Optional[" + host + "]"
	}
	return p.Name + ": " + host
}

// Conversion renders the statement that moves the parameter across the
// boundary before the native call: inward conversion for inputs, scratch
// slot allocation for output and result slots. Empty when the value passes
// through untouched.
func (p *Parameter) Conversion() string {
	if p.Result || p.Output {
		return fmt.Sprintf("%s = _ffi.new(%q)", p.converted(), p.scratchSpelling())
	}
	if p.hidden {
		return ""
	}

	conv, ok := p.Type.Conversion()

	if p.Type.IsArray {
		if !ok || conv.ToNative == nil {
			return ""
		}
		return fmt.Sprintf("%s = [%s for x in %s]", p.converted(), conv.ToNative("x"), p.Name)
	}

	if ok && conv.ToNative != nil {
		stmt := fmt.Sprintf("%s = %s", p.converted(), conv.ToNative(p.Name))
		if p.Nullable {
			stmt += fmt.Sprintf(" if %s is not None else _ffi.NULL", p.Name)
		}
		return stmt
	}

	if p.Nullable {
		return fmt.Sprintf("%s = %s if %s is not None else _ffi.NULL", p.converted(), p.Name, p.Name)
	}

	return ""
}

// CallArg renders the argument passed to the native call.
func (p *Parameter) CallArg() string {
	if p.callExpr != "" {
		return p.callExpr
	}
	if p.Conversion() != "" {
		return p.converted()
	}
	return p.Name
}

// hostRead applies a conversion's outward builder to an expression. A
// pointer-backed value surfaces null as an absent host value instead of
// being converted.
func hostRead(conv Conversion, expr string) string {
	converted := conv.ToHost(expr)
	if conv.PointerBacked {
		return fmt.Sprintf("%s if %s != _ffi.NULL else None", converted, expr)
	}
	return converted
}

// OutConversion renders the expression reading the native scratch slot back
// into a host value after the call. length is the paired length slot
// expression for array outputs, empty when none exists.
func (p *Parameter) OutConversion(length string) string {
	slot := p.converted() + "[0]"
	conv, ok := p.Type.Conversion()

	if p.Type.IsArray && length != "" {
		elem := slot + "[i]"
		if ok && conv.ToHost != nil {
			elem = hostRead(conv, elem)
		}
		return fmt.Sprintf("[%s for i in range(%s)]", elem, length)
	}

	if ok && conv.ToHost != nil {
		return hostRead(conv, slot)
	}

	// Interoperable passthrough. A slot still holding a pointer surfaces
	// null as an absent host value; struct and numeric slots read directly.
	if strings.Count(p.Type.Native, "*") >= 2 && !p.Type.IsArray {
		return fmt.Sprintf("%s if %s != _ffi.NULL else None", slot, slot)
	}

	return slot
}

// scratchSpelling is the C spelling allocated for an output or result slot.
func (p *Parameter) scratchSpelling() string {
	if strings.HasSuffix(p.Type.Native, "*") {
		return p.Type.Native
	}
	return p.Type.Native + " *"
}

func renameKeyword(name string) string {
	if renamed, ok := pyKeywords[name]; ok {
		return renamed
	}
	return name
}
