package domain

import "encoding/json"

// Field is a tri-state JSON value for partial updates: it distinguishes a
// field that was absent from the request body, one explicitly set to null,
// and one carrying a value. The merge helpers treat an explicit null the
// same as an absent field, matching the reference "supplied ?? existing"
// behavior, but callers that want to support explicit nulling later can
// branch on Set && !Valid.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// FieldOf returns a Field carrying the given value.
func FieldOf[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the body, so Set is always true here; absent keys leave the
// zero Field.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// Get returns the supplied value, or prev when the field was absent or null.
func (f Field[T]) Get(prev T) T {
	if f.Set && f.Valid {
		return f.Value
	}
	return prev
}

// GetPtr is Get for optional fields stored as pointers.
func (f Field[T]) GetPtr(prev *T) *T {
	if f.Set && f.Valid {
		v := f.Value
		return &v
	}
	return prev
}
