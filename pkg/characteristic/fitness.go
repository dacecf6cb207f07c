package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Fitness Machine "data not available" markers for the expended energy fields.
const (
	energyNotAvailable16 = 0xFFFF
	energyNotAvailable8  = 0xFF
)

// Energy is the Fitness Machine expended energy block.
// A nil field was either absent or reported as not available.
type Energy struct {
	Total     *units.Measurement `json:"total,omitempty"`      // kcal
	PerHour   *units.Measurement `json:"per_hour,omitempty"`   // kcal per hour
	PerMinute *units.Measurement `json:"per_minute,omitempty"` // kcal per minute
}

// Equal compares every field with unit-aware equality.
func (e Energy) Equal(o Energy) bool {
	return equalMeasurement(e.Total, o.Total) &&
		equalMeasurement(e.PerHour, o.PerHour) &&
		equalMeasurement(e.PerMinute, o.PerMinute)
}

// decodeEnergy reads total (u16), per hour (u16) and per minute (u8).
func decodeEnergy(c *wire.Cursor) (Energy, error) {
	total, err := c.ReadUint16()
	if err != nil {
		return Energy{}, err
	}
	perHour, err := c.ReadUint16()
	if err != nil {
		return Energy{}, err
	}
	perMinute, err := c.ReadUint8()
	if err != nil {
		return Energy{}, err
	}

	var e Energy
	if total != energyNotAvailable16 {
		e.Total = optMeasurement(total, resolution.One, units.Kilocalories)
	}
	if perHour != energyNotAvailable16 {
		e.PerHour = optMeasurement(perHour, resolution.One, units.Kilocalories)
	}
	if perMinute != energyNotAvailable8 {
		e.PerMinute = optMeasurement(perMinute, resolution.One, units.Kilocalories)
	}
	return e, nil
}

// Time is the Fitness Machine elapsed and remaining time pair, in seconds.
type Time struct {
	Elapsed   *units.Measurement `json:"elapsed,omitempty"`
	Remaining *units.Measurement `json:"remaining,omitempty"`
}

// Equal compares both durations.
func (t Time) Equal(o Time) bool {
	return equalMeasurement(t.Elapsed, o.Elapsed) && equalMeasurement(t.Remaining, o.Remaining)
}

// The read*If helpers return nil without consuming input when present is false.

func readUint8If(c *wire.Cursor, present bool, r resolution.Resolution, u units.Unit) (*units.Measurement, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	return optMeasurement(v, r, u), nil
}

func readUint16If(c *wire.Cursor, present bool, r resolution.Resolution, u units.Unit) (*units.Measurement, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	return optMeasurement(v, r, u), nil
}

func readInt16If(c *wire.Cursor, present bool, r resolution.Resolution, u units.Unit) (*units.Measurement, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadInt16()
	if err != nil {
		return nil, err
	}
	return optMeasurement(v, r, u), nil
}

func readUint24If(c *wire.Cursor, present bool, u units.Unit) (*units.Measurement, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadUint24()
	if err != nil {
		return nil, err
	}
	return optMeasurement(v, resolution.One, u), nil
}

func readScalarUint8If(c *wire.Cursor, present bool, r resolution.Resolution) (*float64, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	return ptr(resolution.Remove(v, r)), nil
}

func readScalarInt16If(c *wire.Cursor, present bool, r resolution.Resolution) (*float64, error) {
	if !present {
		return nil, nil
	}
	v, err := c.ReadInt16()
	if err != nil {
		return nil, err
	}
	return ptr(resolution.Remove(v, r)), nil
}

func readEnergyIf(c *wire.Cursor, present bool) (Energy, error) {
	if !present {
		return Energy{}, nil
	}
	return decodeEnergy(c)
}

func readTime(c *wire.Cursor, elapsed, remaining bool) (Time, error) {
	e, err := readUint16If(c, elapsed, resolution.One, units.Seconds)
	if err != nil {
		return Time{}, err
	}
	r, err := readUint16If(c, remaining, resolution.One, units.Seconds)
	if err != nil {
		return Time{}, err
	}
	return Time{Elapsed: e, Remaining: r}, nil
}
