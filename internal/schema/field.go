package schema

import (
	"bytes"
	"encoding/json"
)

// Optional is an update field for a NOT NULL column. It records whether the
// field was present in the input at all, so "leave unchanged" and "change"
// stay distinguishable. An explicit JSON null is recorded and later rejected
// by validation.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a present Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// IsSet reports whether the field appeared in the input, null included.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// IsZero lets `omitzero` drop absent fields when encoding.
func (o Optional[T]) IsZero() bool { return !o.set }

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.value, o.null = zero, true
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.value)
}

// validationValue is what struct-tag rules see: the value when present, a
// nil *T otherwise so that `omitnil` skips the rules.
func (o Optional[T]) validationValue() any {
	if v, ok := o.Get(); ok {
		return v
	}
	var none *T
	return none
}

func (o Optional[T]) nullAllowed() bool { return false }

// Nullable is an update field for a nullable column: absent leaves the column
// alone, null clears it, a value sets it.
type Nullable[T any] struct {
	Optional[T]
}

// NullableOf returns a present Nullable holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Of(v)}
}

// Null returns a Nullable that explicitly clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Optional[T]{set: true, null: true}}
}

// Ptr returns nil when the field is absent or null.
func (n Nullable[T]) Ptr() *T {
	if v, ok := n.Get(); ok {
		return &v
	}
	return nil
}

func (n Nullable[T]) nullAllowed() bool { return true }

type presenceField interface {
	IsNull() bool
	nullAllowed() bool
	validationValue() any
}
