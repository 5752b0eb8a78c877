package directory

import "strings"

// matchesPrefix reports whether any searchable field of e starts with query.
// Text fields compare case-insensitively; mobile is compared as typed.
func matchesPrefix(e *Employee, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range [...]string{e.Name, e.ID, e.Department, e.Location, e.Grade} {
		if strings.HasPrefix(strings.ToLower(field), q) {
			return true
		}
	}
	return strings.HasPrefix(e.Mobile, query)
}

// appendUnique appends v to list when it is non-empty and not already in seen.
func appendUnique(list []string, seen map[string]struct{}, v string) []string {
	if v == "" {
		return list
	}
	if _, ok := seen[v]; ok {
		return list
	}
	seen[v] = struct{}{}
	return append(list, v)
}
