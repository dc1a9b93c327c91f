package domain

import "encoding/json"

// Optional wraps a patch field so that "key absent" and "key present with a
// null/zero value" stay distinguishable after JSON decoding. UnmarshalJSON is
// only invoked for keys that appear in the payload, so Set doubles as the
// presence marker. Nullable reference columns use Optional[*int64]: present
// with a nil value means "set the column to NULL".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some builds a present Optional, mostly for tests and internal callers.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
