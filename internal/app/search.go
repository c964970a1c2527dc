package app

import (
	"strings"

	"github.com/jmoiron/nbted/internal/app/mcformat"
)

// matchEntry reports whether all query terms appear as substrings in
// the entry's path or any of the decoded string values. Terms should
// be pre-split and lowercased; string values are stripped of color
// codes and lowercased before matching.
func matchEntry(e *Entry, values []string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	fields := make([]string, 0, len(values)+1)
	fields = append(fields, strings.ToLower(e.Rel))
	for _, v := range values {
		fields = append(fields, strings.ToLower(mcformat.Strip(v)))
	}
	for _, term := range terms {
		found := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
