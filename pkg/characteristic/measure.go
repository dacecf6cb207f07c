package characteristic

import (
	"math"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// toWire converts m to the field's wire unit and scales it into T.
func toWire[T resolution.Integer](field string, m units.Measurement, unit units.Unit, r resolution.Resolution) (T, error) {
	conv, err := m.Convert(unit)
	if err != nil {
		return 0, wire.InvalidEncodeValue(field, "unit "+m.Unit.Symbol(), err)
	}
	return resolution.ToWire[T](field, conv.Value, r, unit.Symbol())
}

// toWireRange is toWire for widths without a native type and for narrowed ranges.
func toWireRange(field string, m units.Measurement, unit units.Unit, r resolution.Resolution, valid wire.Range, label string) (int64, error) {
	conv, err := m.Convert(unit)
	if err != nil {
		return 0, wire.InvalidEncodeValue(field, "unit "+m.Unit.Symbol(), err)
	}
	return resolution.ToWireRange(field, conv.Value, r, valid, label)
}

func measurement[T resolution.Integer](raw T, r resolution.Resolution, u units.Unit) units.Measurement {
	return units.New(resolution.Remove(raw, r), u)
}

func optMeasurement[T resolution.Integer](raw T, r resolution.Resolution, u units.Unit) *units.Measurement {
	m := measurement(raw, r, u)
	return &m
}

func equalMeasurement(a, b *units.Measurement) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Abs(*a-*b) <= 1e-9*math.Max(1, math.Abs(*a))
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ptr[T any](v T) *T { return &v }
