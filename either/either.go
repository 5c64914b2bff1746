// Package either implements a right-biased disjoint union of two types.
package either

// Either holds exactly one of a left value of type L or a right value of
// type R. Map and FlatMap operate on the right case.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left returns an Either holding l.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right returns an Either holding r.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// LeftValue returns the left value and true if e is a left.
func (e Either[L, R]) LeftValue() (L, bool) {
	return e.left, !e.isRight
}

// RightValue returns the right value and true if e is a right.
func (e Either[L, R]) RightValue() (R, bool) {
	return e.right, e.isRight
}

// Map applies f to the right value. A left passes through unchanged.
func Map[L, R, T any](e Either[L, R], f func(R) T) Either[L, T] {
	if !e.isRight {
		return Left[L, T](e.left)
	}
	return Right[L](f(e.right))
}

// FlatMap applies f to the right value and returns its result. A left
// passes through unchanged.
func FlatMap[L, R, T any](e Either[L, R], f func(R) Either[L, T]) Either[L, T] {
	if !e.isRight {
		return Left[L, T](e.left)
	}
	return f(e.right)
}

// LeftMap applies f to the left value. A right passes through unchanged.
func LeftMap[L, R, T any](e Either[L, R], f func(L) T) Either[T, R] {
	if e.isRight {
		return Right[T](e.right)
	}
	return Left[T, R](f(e.left))
}

// Fold returns lf applied to the left value or rf applied to the right one.
func Fold[L, R, T any](e Either[L, R], lf func(L) T, rf func(R) T) T {
	if e.isRight {
		return rf(e.right)
	}
	return lf(e.left)
}

// Equal reports whether a and b are on the same side with equal payloads.
func Equal[L, R any](a, b Either[L, R], leq func(L, L) bool, req func(R, R) bool) bool {
	if a.isRight != b.isRight {
		return false
	}
	if a.isRight {
		return req(a.right, b.right)
	}
	return leq(a.left, b.left)
}
