package dto

import "encoding/json"

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// A field that is missing from the payload keeps Set == false; a field
// supplied as null gets Set == true and Null == true. This distinction
// drives patch semantics (an explicit null clears the stored value, an
// absent key leaves it unchanged).
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what makes presence detection work.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON round-trips the tri-state back to JSON. Absent fields
// marshal as null; encoding/json cannot omit non-pointer structs, so
// responses use dedicated response DTOs instead of Optional fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether the field was supplied with a non-null value
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}
