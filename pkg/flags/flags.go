// Package flags provides typed bit sets over fixed-width wire integers.
//
// GATT characteristics prefix their payload with a flags field whose bits
// gate the presence of later fields. Bit positions are declared next to each
// message; this package only provides the set operations.
package flags

// Bits is the set of integer widths a flags field can occupy.
type Bits interface {
	~uint8 | ~uint16 | ~uint32
}

// Set is an immutable set of bits backed by a raw wire integer.
// Two sets are equal (==) when their raw values are equal.
type Set[T Bits] struct {
	raw T
}

// FromRaw returns the set whose bits are v.
func FromRaw[T Bits](v T) Set[T] {
	return Set[T]{raw: v}
}

// Bit returns the mask with only bit n set.
func Bit[T Bits](n uint) T {
	return T(1) << n
}

// Raw returns the wire value.
func (s Set[T]) Raw() T { return s.raw }

// Contains reports whether every bit in mask is set.
func (s Set[T]) Contains(mask T) bool { return s.raw&mask == mask }

// With returns a copy of s with the bits in mask set.
func (s Set[T]) With(mask T) Set[T] { return Set[T]{raw: s.raw | mask} }

// Without returns a copy of s with the bits in mask cleared.
func (s Set[T]) Without(mask T) Set[T] { return Set[T]{raw: s.raw &^ mask} }

// IsEmpty reports whether no bit is set.
func (s Set[T]) IsEmpty() bool { return s.raw == 0 }

// Contains reports whether every bit of mask is set in v.
// It serves named bitmask enums such as provisioning OOB action sets.
func Contains[T Bits](v, mask T) bool {
	return v&mask == mask
}

// Toggle returns v with the bits in mask set when on is true, cleared otherwise.
func Toggle[T Bits](v, mask T, on bool) T {
	if on {
		return v | mask
	}
	return v &^ mask
}
