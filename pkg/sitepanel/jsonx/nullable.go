// Package jsonx holds small JSON helpers for partial-update payloads.
package jsonx

import "encoding/json"

// Nullable is a tri-state JSON field for PATCH-style requests: absent,
// explicit null, or a value. A plain pointer cannot tell absent from null,
// and the distinction matters — e.g. {"group_id": null} moves an item out of
// its group while omitting the key leaves it untouched.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
