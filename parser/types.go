package parser

// Param is one declared parameter with its raw C type spelling preserved,
// e.g. {Type: "const char *", Name: "query"}.
type Param struct {
	Type string
	Name string
}

// Declaration is one function declaration triple extracted from a header.
type Declaration struct {
	Name       string
	ReturnType string
	Params     []Param
}

// Feed is the full declaration feed for one header: the declaration triples
// in header order plus the opaque handle typedef names.
type Feed struct {
	Declarations []Declaration
	Opaques      []string
}

// Names returns the set of declared function names.
func (f *Feed) Names() map[string]bool {
	names := make(map[string]bool, len(f.Declarations))
	for _, d := range f.Declarations {
		names[d.Name] = true
	}
	return names
}
