package record

import "encoding/json"

// Opt is an optional field value. The zero Opt is absent, which is
// different from a present empty string.
type Opt[T any] struct {
	V     T
	Valid bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{V: v, Valid: true}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.V, o.Valid
}

// Or returns the value, or def when absent.
func (o Opt[T]) Or(def T) T {
	if !o.Valid {
		return def
	}
	return o.V
}

// IsZero reports absence; it backs the `omitzero` JSON option.
func (o Opt[T]) IsZero() bool {
	return !o.Valid
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.V)
}
