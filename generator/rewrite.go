package generator

import (
	"fmt"

	"github.com/ardanlabs/pybindgen/config"
)

// ApplyModifier rewrites one function's generic model in place before
// rendering. Modifiers cover the closed set of mechanical signature
// deviations the generic rules cannot express. Every named parameter is
// resolved before any mutation, so a failing modifier leaves the model
// untouched.
func ApplyModifier(reg *Registry, fn *Function, mod config.Modifier) error {
	var ptr, length, elem *Parameter

	if mod.SizedSequence != nil {
		if ptr = findParameter(fn, mod.SizedSequence.Pointer); ptr == nil {
			return fmt.Errorf("%s: sized_sequence names unknown parameter %q", fn.Name, mod.SizedSequence.Pointer)
		}
		if length = findParameter(fn, mod.SizedSequence.Length); length == nil {
			return fmt.Errorf("%s: sized_sequence names unknown parameter %q", fn.Name, mod.SizedSequence.Length)
		}
	}

	if mod.ElementType != nil {
		if elem = findParameter(fn, mod.ElementType.Parameter); elem == nil {
			return fmt.Errorf("%s: element_type names unknown parameter %q", fn.Name, mod.ElementType.Parameter)
		}
	}

	if mod.SizedSequence != nil {
		// The length parameter leaves the declared signature; its call
		// argument becomes the host-side length of the pointer parameter.
		length.hidden = true
		length.callExpr = fmt.Sprintf("len(%s)", ptr.Name)
	}

	if mod.ElementType != nil {
		elem.Type = ResolveType(reg, mod.ElementType.Type, elem.Type.IsArray, elem.Result || elem.Output)
	}

	if mod.DropErrorCheck {
		fn.noErrorCheck = true
	}

	return nil
}

func findParameter(fn *Function, name string) *Parameter {
	renamed := renameKeyword(name)
	for _, p := range fn.Parameters {
		if p.Name == renamed {
			return p
		}
	}
	return nil
}
