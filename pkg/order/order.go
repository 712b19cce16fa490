// Package order sorts and filters report entries under a SortSpec.
package order

import (
	"slices"
	"strings"
	"time"

	"vizex/pkg/common"
)

// Key is the field entries are ordered by.
type Key string

const (
	KeyType     Key = "type"
	KeySize     Key = "size"
	KeyName     Key = "name"
	KeyModified Key = "dt"
)

// Direction is the requested ordering direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec is the requested ordering and visibility of a listing.
type SortSpec struct {
	Key        Key
	Direction  Direction
	ShowHidden bool
}

// ParseKey converts a sort key name into a Key.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(s) {
	case "type":
		return KeyType, nil
	case "size":
		return KeySize, nil
	case "name":
		return KeyName, nil
	case "dt", "modified":
		return KeyModified, nil
	default:
		return "", &common.ConfigError{Field: "sort", Value: s, Reason: "expected type, size, name or dt"}
	}
}

// ParseDirection converts "asc" or "desc" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return "", &common.ConfigError{Field: "order", Value: s, Reason: "expected asc or desc"}
	}
}

// Validate checks that the key and direction are known.
func (s SortSpec) Validate() error {
	if _, err := ParseKey(string(s.Key)); err != nil {
		return err
	}
	if _, err := ParseDirection(string(s.Direction)); err != nil {
		return err
	}
	return nil
}

// Item is an entry that can be ordered.
type Item interface {
	SortName() string
	SortSize() uint64
	SortModified() time.Time
	// SortType returns the type bucket rank and a label ordering items
	// within the same rank.
	SortType() (int, string)
	Hidden() bool
}

// Order returns a filtered, ordered copy of entries.
//
// Hidden items are dropped unless spec.ShowHidden. The sort is stable, so
// items with equal keys keep their sampling order. Descending reverses the
// order of the groups of equal keys but not the items inside a group. The
// type key breaks ties by ascending name in both directions.
func Order[T Item](entries []T, spec SortSpec) ([]T, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if !spec.ShowHidden && e.Hidden() {
			continue
		}
		out = append(out, e)
	}

	primary := comparator[T](spec.Key)
	cmp := primary
	if spec.Key == KeyType {
		cmp = func(a, b T) int {
			if c := primary(a, b); c != 0 {
				return c
			}
			return compareNames(a.SortName(), b.SortName())
		}
	}
	slices.SortStableFunc(out, cmp)

	if spec.Direction == Descending {
		out = reverseGroups(out, primary)
	}
	return out, nil
}

func comparator[T Item](key Key) func(a, b T) int {
	switch key {
	case KeySize:
		return func(a, b T) int {
			x, y := a.SortSize(), b.SortSize()
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case KeyName:
		return func(a, b T) int { return compareNames(a.SortName(), b.SortName()) }
	case KeyModified:
		return func(a, b T) int { return a.SortModified().Compare(b.SortModified()) }
	default:
		return func(a, b T) int {
			ra, la := a.SortType()
			rb, lb := b.SortType()
			if ra != rb {
				return ra - rb
			}
			return strings.Compare(la, lb)
		}
	}
}

func compareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// reverseGroups reverses the sequence of runs of equal keys in a sorted
// slice, keeping each run in place.
func reverseGroups[T any](sorted []T, cmp func(a, b T) int) []T {
	var runs [][]T
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && cmp(sorted[start], sorted[end]) == 0 {
			end++
		}
		runs = append(runs, sorted[start:end])
		start = end
	}

	out := make([]T, 0, len(sorted))
	for i := len(runs) - 1; i >= 0; i-- {
		out = append(out, runs[i]...)
	}
	return out
}
