// Package sqlutil provides small shared SQL building helpers.
package sqlutil

import "strings"

// InClauseArgs builds a "?, ?, ?" placeholder list and the matching args
// slice for an IN clause over the given values.
func InClauseArgs(values []string) (string, []any) {
	if len(values) == 0 {
		return "", nil
	}
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return strings.Join(placeholders, ", "), args
}
