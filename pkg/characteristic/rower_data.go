package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/flags"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Rower Data flag bits, as assigned by the Fitness Machine Service.
const (
	// rowerMoreData is inverted: stroke rate and stroke count are present when the bit is CLEAR.
	rowerMoreData            uint16 = 1 << 0
	rowerAverageStrokeRate   uint16 = 1 << 1
	rowerTotalDistance       uint16 = 1 << 2
	rowerInstantaneousPace   uint16 = 1 << 3
	rowerAveragePace         uint16 = 1 << 4
	rowerInstantaneousPower  uint16 = 1 << 5
	rowerAveragePower        uint16 = 1 << 6
	rowerResistanceLevel     uint16 = 1 << 7
	rowerExpendedEnergy      uint16 = 1 << 8
	rowerHeartRate           uint16 = 1 << 9
	rowerMetabolicEquivalent uint16 = 1 << 10
	rowerElapsedTime         uint16 = 1 << 11
	rowerRemainingTime       uint16 = 1 << 12
)

// RowerData is the Fitness Machine Rower Data characteristic (0x2AD1).
// It is notify-only. Absent fields are nil. Pace is seconds per 500 m.
type RowerData struct {
	StrokeRate          *units.Measurement `json:"stroke_rate,omitempty"`
	StrokeCount         *uint16            `json:"stroke_count,omitempty"`
	AverageStrokeRate   *units.Measurement `json:"average_stroke_rate,omitempty"`
	TotalDistance       *units.Measurement `json:"total_distance,omitempty"`
	InstantaneousPace   *units.Measurement `json:"instantaneous_pace,omitempty"`
	AveragePace         *units.Measurement `json:"average_pace,omitempty"`
	InstantaneousPower  *units.Measurement `json:"instantaneous_power,omitempty"`
	AveragePower        *units.Measurement `json:"average_power,omitempty"`
	ResistanceLevel     *float64           `json:"resistance_level,omitempty"`
	Energy              Energy             `json:"energy"`
	HeartRate           *units.Measurement `json:"heart_rate,omitempty"`
	MetabolicEquivalent *float64           `json:"metabolic_equivalent,omitempty"`
	Time                Time               `json:"time"`
}

var rowerDataUUID = gatt.UUID16(0x2AD1)

// Name returns "Rower Data".
func (d *RowerData) Name() string { return "Rower Data" }

// UUID returns 2AD1.
func (d *RowerData) UUID() gatt.UUID { return rowerDataUUID }

// DecodeRowerData decodes a Rower Data notification.
func DecodeRowerData(data []byte) (*RowerData, error) {
	c := wire.NewCursor(data)
	raw, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	f := flags.FromRaw(raw)

	var d RowerData
	if !f.Contains(rowerMoreData) {
		rate, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		count, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		d.StrokeRate = optMeasurement(rate, resolution.Two, units.StrokesPerMinute)
		d.StrokeCount = &count
	}
	if d.AverageStrokeRate, err = readUint8If(c, f.Contains(rowerAverageStrokeRate), resolution.Two, units.StrokesPerMinute); err != nil {
		return nil, err
	}
	if d.TotalDistance, err = readUint24If(c, f.Contains(rowerTotalDistance), units.Meters); err != nil {
		return nil, err
	}
	if d.InstantaneousPace, err = readUint16If(c, f.Contains(rowerInstantaneousPace), resolution.One, units.Seconds); err != nil {
		return nil, err
	}
	if d.AveragePace, err = readUint16If(c, f.Contains(rowerAveragePace), resolution.One, units.Seconds); err != nil {
		return nil, err
	}
	if d.InstantaneousPower, err = readInt16If(c, f.Contains(rowerInstantaneousPower), resolution.One, units.Watts); err != nil {
		return nil, err
	}
	if d.AveragePower, err = readInt16If(c, f.Contains(rowerAveragePower), resolution.One, units.Watts); err != nil {
		return nil, err
	}
	if d.ResistanceLevel, err = readScalarInt16If(c, f.Contains(rowerResistanceLevel), resolution.OneTenth); err != nil {
		return nil, err
	}
	if d.Energy, err = readEnergyIf(c, f.Contains(rowerExpendedEnergy)); err != nil {
		return nil, err
	}
	if d.HeartRate, err = readUint8If(c, f.Contains(rowerHeartRate), resolution.One, units.BeatsPerMinute); err != nil {
		return nil, err
	}
	if d.MetabolicEquivalent, err = readScalarUint8If(c, f.Contains(rowerMetabolicEquivalent), resolution.OneTenth); err != nil {
		return nil, err
	}
	if d.Time, err = readTime(c, f.Contains(rowerElapsedTime), f.Contains(rowerRemainingTime)); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode is not supported: Rower Data is notify-only.
func (d *RowerData) Encode() ([]byte, error) {
	return nil, wire.Unsupported(d.Name())
}

// Equal compares every field with unit-aware equality.
func (d *RowerData) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*RowerData)
	if !ok {
		return false
	}
	return equalMeasurement(d.StrokeRate, o.StrokeRate) &&
		equalPtr(d.StrokeCount, o.StrokeCount) &&
		equalMeasurement(d.AverageStrokeRate, o.AverageStrokeRate) &&
		equalMeasurement(d.TotalDistance, o.TotalDistance) &&
		equalMeasurement(d.InstantaneousPace, o.InstantaneousPace) &&
		equalMeasurement(d.AveragePace, o.AveragePace) &&
		equalMeasurement(d.InstantaneousPower, o.InstantaneousPower) &&
		equalMeasurement(d.AveragePower, o.AveragePower) &&
		equalFloat(d.ResistanceLevel, o.ResistanceLevel) &&
		d.Energy.Equal(o.Energy) &&
		equalMeasurement(d.HeartRate, o.HeartRate) &&
		equalFloat(d.MetabolicEquivalent, o.MetabolicEquivalent) &&
		d.Time.Equal(o.Time)
}
