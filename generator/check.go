package generator

import (
	"fmt"
	"sort"

	"github.com/ardanlabs/pybindgen/config"
)

// CheckConfig reports every curated entry referencing a function absent
// from the declaration feed. Drift is reported, never fatal: stale entries
// do not block generation of the functions that do exist.
func CheckConfig(cfg *config.Config, known map[string]bool) []string {
	var warnings []string

	for name := range cfg.Overrides {
		if !known[name] {
			warnings = append(warnings, fmt.Sprintf("override references unknown function %q", name))
		}
	}

	for name := range cfg.Modifiers {
		if !known[name] {
			warnings = append(warnings, fmt.Sprintf("modifier references unknown function %q", name))
		}
	}

	roles := []struct {
		table string
		refs  []config.ParamRef
	}{
		{"nullable", cfg.Roles.Nullable},
		{"result", cfg.Roles.Result},
		{"output", cfg.Roles.Output},
		{"array", cfg.Roles.Array},
	}
	for _, role := range roles {
		for _, ref := range role.refs {
			if !known[ref.Function] {
				warnings = append(warnings, fmt.Sprintf("%s entry %s.%s references unknown function", role.table, ref.Function, ref.Parameter))
			}
		}
	}

	sort.Strings(warnings)

	return warnings
}
