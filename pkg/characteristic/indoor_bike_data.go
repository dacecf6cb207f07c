package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/flags"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Indoor Bike Data flag bits.
const (
	// bikeMoreData is inverted: instantaneous speed is present when the bit is CLEAR.
	bikeMoreData             uint16 = 1 << 0
	bikeAverageSpeed         uint16 = 1 << 1
	bikeInstantaneousCadence uint16 = 1 << 2
	bikeAverageCadence       uint16 = 1 << 3
	bikeTotalDistance        uint16 = 1 << 4
	bikeResistanceLevel      uint16 = 1 << 5
	bikeInstantaneousPower   uint16 = 1 << 6
	bikeAveragePower         uint16 = 1 << 7
	bikeExpendedEnergy       uint16 = 1 << 8
	bikeHeartRate            uint16 = 1 << 9
	bikeMetabolicEquivalent  uint16 = 1 << 10
	bikeElapsedTime          uint16 = 1 << 11
	bikeRemainingTime        uint16 = 1 << 12
)

// IndoorBikeData is the Fitness Machine Indoor Bike Data characteristic (0x2AD2).
// It is notify-only. Absent fields are nil.
type IndoorBikeData struct {
	InstantaneousSpeed   *units.Measurement `json:"instantaneous_speed,omitempty"`
	AverageSpeed         *units.Measurement `json:"average_speed,omitempty"`
	InstantaneousCadence *units.Measurement `json:"instantaneous_cadence,omitempty"`
	AverageCadence       *units.Measurement `json:"average_cadence,omitempty"`
	TotalDistance        *units.Measurement `json:"total_distance,omitempty"`
	ResistanceLevel      *int16             `json:"resistance_level,omitempty"`
	InstantaneousPower   *units.Measurement `json:"instantaneous_power,omitempty"`
	AveragePower         *units.Measurement `json:"average_power,omitempty"`
	Energy               Energy             `json:"energy"`
	HeartRate            *units.Measurement `json:"heart_rate,omitempty"`
	MetabolicEquivalent  *float64           `json:"metabolic_equivalent,omitempty"`
	Time                 Time               `json:"time"`
}

var indoorBikeDataUUID = gatt.UUID16(0x2AD2)

// Name returns "Indoor Bike Data".
func (d *IndoorBikeData) Name() string { return "Indoor Bike Data" }

// UUID returns 2AD2.
func (d *IndoorBikeData) UUID() gatt.UUID { return indoorBikeDataUUID }

// DecodeIndoorBikeData decodes an Indoor Bike Data notification.
func DecodeIndoorBikeData(data []byte) (*IndoorBikeData, error) {
	c := wire.NewCursor(data)
	raw, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	f := flags.FromRaw(raw)

	var d IndoorBikeData
	if d.InstantaneousSpeed, err = readUint16If(c, !f.Contains(bikeMoreData), resolution.OneHundredth, units.KilometersPerHour); err != nil {
		return nil, err
	}
	if d.AverageSpeed, err = readUint16If(c, f.Contains(bikeAverageSpeed), resolution.OneHundredth, units.KilometersPerHour); err != nil {
		return nil, err
	}
	if d.InstantaneousCadence, err = readUint16If(c, f.Contains(bikeInstantaneousCadence), resolution.Two, units.RevolutionsPerMinute); err != nil {
		return nil, err
	}
	if d.AverageCadence, err = readUint16If(c, f.Contains(bikeAverageCadence), resolution.Two, units.RevolutionsPerMinute); err != nil {
		return nil, err
	}
	if d.TotalDistance, err = readUint24If(c, f.Contains(bikeTotalDistance), units.Meters); err != nil {
		return nil, err
	}
	if f.Contains(bikeResistanceLevel) {
		v, err := c.ReadInt16()
		if err != nil {
			return nil, err
		}
		d.ResistanceLevel = &v
	}
	if d.InstantaneousPower, err = readInt16If(c, f.Contains(bikeInstantaneousPower), resolution.One, units.Watts); err != nil {
		return nil, err
	}
	if d.AveragePower, err = readInt16If(c, f.Contains(bikeAveragePower), resolution.One, units.Watts); err != nil {
		return nil, err
	}
	if d.Energy, err = readEnergyIf(c, f.Contains(bikeExpendedEnergy)); err != nil {
		return nil, err
	}
	if d.HeartRate, err = readUint8If(c, f.Contains(bikeHeartRate), resolution.One, units.BeatsPerMinute); err != nil {
		return nil, err
	}
	if d.MetabolicEquivalent, err = readScalarUint8If(c, f.Contains(bikeMetabolicEquivalent), resolution.OneTenth); err != nil {
		return nil, err
	}
	if d.Time, err = readTime(c, f.Contains(bikeElapsedTime), f.Contains(bikeRemainingTime)); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode is not supported: Indoor Bike Data is notify-only.
func (d *IndoorBikeData) Encode() ([]byte, error) {
	return nil, wire.Unsupported(d.Name())
}

// Equal compares every field with unit-aware equality.
func (d *IndoorBikeData) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*IndoorBikeData)
	if !ok {
		return false
	}
	return equalMeasurement(d.InstantaneousSpeed, o.InstantaneousSpeed) &&
		equalMeasurement(d.AverageSpeed, o.AverageSpeed) &&
		equalMeasurement(d.InstantaneousCadence, o.InstantaneousCadence) &&
		equalMeasurement(d.AverageCadence, o.AverageCadence) &&
		equalMeasurement(d.TotalDistance, o.TotalDistance) &&
		equalPtr(d.ResistanceLevel, o.ResistanceLevel) &&
		equalMeasurement(d.InstantaneousPower, o.InstantaneousPower) &&
		equalMeasurement(d.AveragePower, o.AveragePower) &&
		d.Energy.Equal(o.Energy) &&
		equalMeasurement(d.HeartRate, o.HeartRate) &&
		equalFloat(d.MetabolicEquivalent, o.MetabolicEquivalent) &&
		d.Time.Equal(o.Time)
}
