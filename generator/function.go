package generator

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/pybindgen/parser"
)

// Function assembles one wrapper: the declaration's parameters partitioned
// by role, the native return type, and the rendering of the full generated
// source text.
type Function struct {
	Name       string
	Parameters []*Parameter
	Return     Type

	Outputs []*Parameter
	Result  *Parameter

	noErrorCheck bool
}

// NewFunction classifies and types every parameter of one declaration.
func NewFunction(reg *Registry, cls *Classifier, decl parser.Declaration) *Function {
	fn := &Function{
		Name:   decl.Name,
		Return: ResolveType(reg, decl.ReturnType, false, false),
	}

	for _, raw := range decl.Params {
		p := NewParameter(reg, cls, decl.Name, raw.Type, raw.Name)
		fn.Parameters = append(fn.Parameters, p)

		switch {
		case p.Result:
			fn.Result = p
		case p.Output:
			fn.Outputs = append(fn.Outputs, p)
		}
	}

	return fn
}

// returnsValue reports whether the native return itself carries a value the
// wrapper must surface.
func (f *Function) returnsValue() bool {
	return f.Return.Native != "void" && f.Result == nil
}

// ReturnType renders the composite host return type: the primary result
// alone, or an ordered tuple of the primary followed by each output in
// declaration order.
func (f *Function) ReturnType() string {
	primary := f.primaryType()

	if len(f.Outputs) == 0 {
		return primary
	}

	var parts []string
	if primary != "None" {
		parts = append(parts, primary)
	}
	for _, out := range f.Outputs {
		parts = append(parts, out.Type.Host)
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}

func (f *Function) primaryType() string {
	if f.Result != nil {
		return f.Result.Type.Host
	}
	return f.Return.Host
}

// lengthSlot finds the output slot that carries an array output's element
// count: the first scalar output named count or suffixed _count.
func (f *Function) lengthSlot() string {
	for _, out := range f.Outputs {
		if out.Type.IsArray {
			continue
		}
		if out.Name == "count" || strings.HasSuffix(out.Name, "_count") {
			return out.converted() + "[0]"
		}
	}
	return ""
}

// returnExprs collects the expressions concatenated into the return
// statement: the primary result first, then each output's out-conversion.
func (f *Function) returnExprs() []string {
	length := f.lengthSlot()

	var exprs []string

	switch {
	case f.Result != nil:
		exprs = append(exprs, f.Result.OutConversion(length))
	case f.returnsValue():
		exprs = append(exprs, f.primaryExpr())
	}

	for _, out := range f.Outputs {
		exprs = append(exprs, out.OutConversion(length))
	}

	return exprs
}

// primaryExpr converts the bound native call result outward.
func (f *Function) primaryExpr() string {
	if conv, ok := f.Return.Conversion(); ok && conv.ToHost != nil {
		return hostRead(conv, "inner_call_result")
	}
	if f.Return.IsPointer && !numericHosts[f.Return.Host] {
		return "inner_call_result if inner_call_result != _ffi.NULL else None"
	}
	return "inner_call_result"
}

// Render emits the complete generated wrapper text.
func (f *Function) Render() string {
	var b strings.Builder

	var decls []string
	for _, p := range f.Parameters {
		if p.Input() && !p.hidden {
			decls = append(decls, p.Declaration())
		}
	}
	fmt.Fprintf(&b, "def %s(%s) -> %s:\n", f.Name, strings.Join(decls, ", "), f.ReturnType())

	for _, p := range f.Parameters {
		if stmt := p.Conversion(); stmt != "" {
			fmt.Fprintf(&b, "    %s\n", stmt)
		}
	}

	var args []string
	for _, p := range f.Parameters {
		args = append(args, p.CallArg())
	}
	call := fmt.Sprintf("_lib.%s(%s)", f.Name, strings.Join(args, ", "))
	if f.returnsValue() {
		fmt.Fprintf(&b, "    inner_call_result = %s\n", call)
	} else {
		fmt.Fprintf(&b, "    %s\n", call)
	}

	if !f.noErrorCheck {
		b.WriteString("    _check_error()\n")
	}

	exprs := f.returnExprs()
	switch len(exprs) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "    return %s\n", exprs[0])
	default:
		fmt.Fprintf(&b, "    return (%s)\n", strings.Join(exprs, ", "))
	}

	return b.String()
}
