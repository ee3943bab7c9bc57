// Package listing implements the search-then-sort transform every list
// endpoint applies to an in-memory collection.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case. Empty input yields def.
func ParseDirection(s string, def Direction) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort order %q: must be asc or desc", s)
}

// Query describes a filter over items of type T.
//
// Search is matched case-insensitively as a substring of any string returned
// by Fields. Every predicate in Where must also hold.
type Query[T any] struct {
	Search string
	Fields func(T) []string
	Where  []func(T) bool
}

// Matches reports whether item passes the query.
func (q Query[T]) Matches(item T) bool {
	for _, pred := range q.Where {
		if !pred(item) {
			return false
		}
	}
	term := strings.TrimSpace(q.Search)
	if term == "" || q.Fields == nil {
		return true
	}
	for _, f := range q.Fields(item) {
		if ContainsFold(f, term) {
			return true
		}
	}
	return false
}

// Filter returns the matching items in their original order. src is not
// modified.
func Filter[T any](src []T, q Query[T]) []T {
	out := make([]T, 0, len(src))
	for _, item := range src {
		if q.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a copy of src ordered by cmpFn in the given direction. The sort
// is stable in both directions: items that compare equal keep their original
// relative order.
func Sort[T any](src []T, cmpFn func(a, b T) int, dir Direction) []T {
	out := slices.Clone(src)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if dir == Desc {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})
	return out
}

// By builds a comparator from a key extractor.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Apply filters and then sorts. A nil cmpFn keeps the filtered order.
func Apply[T any](src []T, q Query[T], cmpFn func(a, b T) int, dir Direction) []T {
	filtered := Filter(src, q)
	if cmpFn == nil {
		return filtered
	}
	return Sort(filtered, cmpFn, dir)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Equal returns a predicate that holds when field(item) equals want. An empty
// or "all" want matches every item.
func Equal[T any](want string, field func(T) string) func(T) bool {
	if want == "" || strings.EqualFold(want, "all") {
		return func(T) bool { return true }
	}
	return func(item T) bool { return field(item) == want }
}
