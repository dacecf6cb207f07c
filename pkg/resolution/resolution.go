// Package resolution converts between fixed-point wire integers and real values.
//
// A Resolution is the divisor that maps a wire integer to its real value:
// a field with 0.01 m/s resolution uses OneHundredth, so raw 1234 decodes to
// 12.34 m/s and 12.34 m/s encodes back to 1234.
package resolution

import (
	"math"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Resolution is the number of wire units per real unit.
type Resolution float64

// Named resolutions used by GATT characteristics.
const (
	One           Resolution = 1
	Two           Resolution = 2 // 0.5 per step
	OneTenth      Resolution = 10
	OneHundredth  Resolution = 100
	OneThousandth Resolution = 1000
)

// snapEpsilon absorbs float noise such as 0.29*100 = 28.999999999999996.
const snapEpsilon = 1e-6

// Integer is the set of wire integer types a scaled field can use.
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

// Step returns the real value of one wire unit.
func (r Resolution) Step() float64 { return 1 / float64(r) }

// Remove converts a raw wire integer to its real value.
func Remove[T Integer](raw T, r Resolution) float64 {
	return float64(raw) / float64(r)
}

// Add scales a real value into wire units before the integer cast.
func Add(v float64, r Resolution) float64 {
	return v * float64(r)
}

// ToWire scales v by r and converts it to T.
//
// Scaled values within 1e-6 of an integer snap to that integer; otherwise the
// value is truncated toward zero. If the result does not fit T an
// out-of-bounds encode error carrying T's range and the unit label is returned.
func ToWire[T Integer](field string, v float64, r Resolution, unit string) (T, error) {
	lo, hi := bounds[T]()
	n, err := ToWireRange(field, v, r, wire.Range{Min: lo, Max: hi}, unit)
	if err != nil {
		return 0, err
	}
	return T(n), nil
}

// ToWireRange scales v by r and checks the result against valid.
// It serves widths without a native Go type, such as UInt24, and fields with
// a documented range narrower than their wire width.
func ToWireRange(field string, v float64, r Resolution, valid wire.Range, unit string) (int64, error) {
	scaled := Add(v, r)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0, wire.OutOfBounds(field, valid, unit)
	}

	n := math.Round(scaled)
	if math.Abs(scaled-n) > snapEpsilon {
		n = math.Trunc(scaled)
	}
	if n < float64(valid.Min) || n > float64(valid.Max) {
		return 0, wire.OutOfBounds(field, valid, unit)
	}
	return int64(n), nil
}

// bounds returns the inclusive range of T, derived from its width and sign.
func bounds[T Integer]() (int64, int64) {
	if hi := T(0) - 1; hi > 0 {
		return 0, int64(hi)
	}
	bits := 8
	for bits < 32 && T(1)<<(bits-1) > 0 {
		bits *= 2
	}
	return -1 << (bits - 1), 1<<(bits-1) - 1
}
