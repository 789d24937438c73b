// Package ordering implements the list reconciliation engine shared by the
// external-links and FAQ subsystems.
//
// The editing UI holds an ordered list that is either flat ("single" mode)
// or bucketed into named groups ("group" mode), and autosaves the entire
// tree. This package computes the normalized rows that replace the persisted
// state: placeholder rows are dropped and display indexes are reassigned
// contiguously from 0. It is pure; callers persist the output inside a
// transaction.
package ordering

import "fmt"

// Positioned is a surviving row of a flat list with its assigned display
// index.
type Positioned[T any] struct {
	Value T
	Index int
}

// ReconcileSingle normalizes a single-mode payload: rows reported empty are
// dropped, the rest keep payload order and get Index = 0..k-1.
func ReconcileSingle[T any](items []T, empty func(T) bool) []Positioned[T] {
	out := make([]Positioned[T], 0, len(items))
	for _, it := range items {
		if empty(it) {
			continue
		}
		out = append(out, Positioned[T]{Value: it, Index: len(out)})
	}
	return out
}

// GroupEntry is one payload row inside a group. GroupIndex is the optional
// explicit in-group position; when nil the reconciler assigns one.
type GroupEntry[T any] struct {
	Value      T
	GroupIndex *int
}

// Group is one group of a group-mode payload. Name nil means the caller
// didn't title the group and a default is generated.
type Group[T any] struct {
	Name  *string
	Items []GroupEntry[T]
}

// GroupedRow is a surviving row of a group with both ordering fields
// resolved. Index is the legacy fallback order, GroupIndex the authoritative
// in-group order.
type GroupedRow[T any] struct {
	Value      T
	Index      int
	GroupIndex int
}

// ReconciledGroup is a group ready to persist: named, positioned among its
// siblings, with normalized member rows.
type ReconciledGroup[T any] struct {
	Name  string
	Index int
	Items []GroupedRow[T]
}

// ReconcileGroups normalizes a group-mode payload. Groups keep payload order
// (Index = position) and get a default name when untitled. Within each
// group, empty rows are dropped and survivors get Index = 0..m-1; GroupIndex
// is the payload's explicit value when present, otherwise the same running
// position, so defaulted orderings come out contiguous.
func ReconcileGroups[T any](groups []Group[T], empty func(T) bool) []ReconciledGroup[T] {
	out := make([]ReconciledGroup[T], 0, len(groups))
	for gi, g := range groups {
		rg := ReconciledGroup[T]{
			Name:  GroupName(g.Name, gi+1),
			Index: gi,
			Items: make([]GroupedRow[T], 0, len(g.Items)),
		}
		for _, entry := range g.Items {
			if empty(entry.Value) {
				continue
			}
			row := GroupedRow[T]{
				Value:      entry.Value,
				Index:      len(rg.Items),
				GroupIndex: len(rg.Items),
			}
			if entry.GroupIndex != nil {
				row.GroupIndex = *entry.GroupIndex
			}
			rg.Items = append(rg.Items, row)
		}
		out = append(out, rg)
	}
	return out
}

// GroupName resolves a group's display name, falling back to "Group {n}"
// when the payload carries none.
func GroupName(name *string, n int) string {
	if name != nil {
		return *name
	}
	return fmt.Sprintf("Group %d", n)
}
