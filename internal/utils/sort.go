package utils

import "sort"

// SortedKeys returns the keys of a string-keyed map in lexical order, so
// scene iteration stays deterministic.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
