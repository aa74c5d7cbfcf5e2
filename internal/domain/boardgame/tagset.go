package boardgame

import (
	"slices"
	"strings"
)

// TagSet holds the values a game carries along one dimension, in dataset
// order and without duplicates. The zero value is an empty set.
type TagSet []string

// NewTagSet trims values, drops empty ones and removes duplicates keeping
// the first occurrence. The result is never nil.
func NewTagSet(values ...string) TagSet {
	out := make(TagSet, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains reports whether v is in the set.
func (s TagSet) Contains(v string) bool {
	return slices.Contains(s, v)
}

// Join concatenates the values with sep in dataset order.
func (s TagSet) Join(sep string) string {
	return strings.Join(s, sep)
}

// Len returns the number of values.
func (s TagSet) Len() int { return len(s) }
