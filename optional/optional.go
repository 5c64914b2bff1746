// Package optional provides a value that may be absent.
package optional

// Value holds either nothing or a single value of type T.
type Value[T any] struct {
	value T
	ok    bool
}

// Some returns a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Of returns Some(v) when ok is true and None otherwise.
func Of[T any](v T, ok bool) Value[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

func (v Value[T]) IsPresent() bool {
	return v.ok
}

// Get returns the held value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.ok
}

// OrElse returns the held value or def if absent.
func (v Value[T]) OrElse(def T) T {
	if !v.ok {
		return def
	}
	return v.value
}

// Map applies f to a present value.
func Map[T, U any](v Value[T], f func(T) U) Value[U] {
	if !v.ok {
		return None[U]()
	}
	return Some(f(v.value))
}

// Equal reports whether a and b are both absent, or both present with
// values that eq considers equal.
func Equal[T any](a, b Value[T], eq func(T, T) bool) bool {
	if a.ok != b.ok {
		return false
	}
	if !a.ok {
		return true
	}
	return eq(a.value, b.value)
}
