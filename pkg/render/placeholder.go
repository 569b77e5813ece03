package render

import (
	"strings"
	"unicode"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Substitute replaces every `{{name}}` token whose name is a key of values
// with the mapped text. Matching is literal and case-sensitive; names are
// never compiled into patterns. Replacement happens in a single left to right
// pass, so text inserted for one placeholder is never rescanned. Tokens that
// reference unknown names are left untouched and returned, deduplicated, in
// order of first appearance.
func Substitute(body string, values map[string]string) (string, []string) {
	if !strings.Contains(body, openDelim) {
		return body, nil
	}

	var (
		b          strings.Builder
		unresolved []string
		seen       map[string]struct{}
		pos        int
	)
	b.Grow(len(body))

	for {
		open := strings.Index(body[pos:], openDelim)
		if open < 0 {
			break
		}
		open += pos
		end := strings.Index(body[open+len(openDelim):], closeDelim)
		if end < 0 {
			break
		}
		end += open + len(openDelim)
		name := body[open+len(openDelim) : end]

		if value, ok := values[name]; ok {
			b.WriteString(body[pos:open])
			b.WriteString(value)
			pos = end + len(closeDelim)
			continue
		}

		if isPlaceholderName(name) {
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				unresolved = append(unresolved, name)
			}
		}
		// Advance a single byte so "{{{name}}}" still finds the inner token.
		b.WriteString(body[pos : open+1])
		pos = open + 1
	}

	b.WriteString(body[pos:])
	return b.String(), unresolved
}

// Placeholders lists the distinct placeholder names referenced by body in
// order of first appearance.
func Placeholders(body string) []string {
	_, names := Substitute(body, nil)
	return names
}

func isPlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || r == '{' || r == '}' {
			return false
		}
	}
	return true
}
