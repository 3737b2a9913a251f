package parser

import (
	"regexp"
	"strings"
)

var blockCommentRe = regexp.MustCompile(`/\*[\s\S]*?\*/`)
var lineCommentRe = regexp.MustCompile(`//[^\n]*`)
var multiSpaceRe = regexp.MustCompile(`[ \t]+`)
var opaqueRe = regexp.MustCompile(`typedef\s+struct\s+(\w+)_s\s*\*\s*(\w+)\s*;`)
var funcRe = regexp.MustCompile(`(?m)^[ \t]*((?:const\s+)?(?:unsigned\s+)?(?:struct\s+)?\w+(?:\s*\*+)?)\s*(\w+)\s*\(([^)]*)\)\s*;`)

// Parse extracts the declaration feed from raw header text.
func Parse(content string) (*Feed, error) {
	content = removeComments(content)
	content = normalizeWhitespace(content)

	feed := &Feed{}

	parseOpaques(content, feed)
	parseFunctions(content, feed)

	return feed, nil
}

func removeComments(s string) string {
	s = blockCommentRe.ReplaceAllString(s, "")
	s = lineCommentRe.ReplaceAllString(s, "")

	return s
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiSpaceRe.ReplaceAllString(s, " ")

	return s
}

func parseOpaques(content string, feed *Feed) {
	matches := opaqueRe.FindAllStringSubmatch(content, -1)

	for _, m := range matches {
		if len(m) < 3 {
			continue
		}
		feed.Opaques = append(feed.Opaques, strings.TrimSpace(m[2]))
	}
}

func parseFunctions(content string, feed *Feed) {
	matches := funcRe.FindAllStringSubmatch(content, -1)

	for _, m := range matches {
		if len(m) < 4 {
			continue
		}

		feed.Declarations = append(feed.Declarations, Declaration{
			Name:       strings.TrimSpace(m[2]),
			ReturnType: normalizeSpelling(m[1]),
			Params:     SplitParams(m[3]),
		})
	}
}

// SplitParams splits a comma-joined parameter list of "<type> <name>" tokens
// into raw params. "void" and the empty string denote zero parameters.
func SplitParams(list string) []Param {
	list = strings.TrimSpace(list)
	if list == "" || list == "void" {
		return nil
	}

	var params []Param

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tokens := strings.Fields(part)
		if len(tokens) < 2 {
			params = append(params, Param{Type: normalizeSpelling(part)})
			continue
		}

		name := tokens[len(tokens)-1]
		typeTokens := tokens[:len(tokens)-1]

		// Pointer stars bind to the type spelling, not the name.
		for strings.HasPrefix(name, "*") {
			name = strings.TrimPrefix(name, "*")
			typeTokens = append(typeTokens, "*")
		}

		spelling := normalizeSpelling(strings.Join(typeTokens, " "))

		// Bracket array suffixes declared on the name also belong to the type.
		if strings.HasSuffix(name, "[]") {
			name = strings.TrimSuffix(name, "[]")
			spelling += "[]"
		}

		params = append(params, Param{
			Type: spelling,
			Name: name,
		})
	}

	return params
}

// normalizeSpelling canonicalizes a raw type spelling: single spaces, stars
// grouped at the end separated from the base by one space ("const char *",
// "char **").
func normalizeSpelling(s string) string {
	stars := strings.Count(s, "*")
	s = strings.ReplaceAll(s, "*", " ")
	s = strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))

	if stars > 0 {
		s += " " + strings.Repeat("*", stars)
	}

	return s
}
