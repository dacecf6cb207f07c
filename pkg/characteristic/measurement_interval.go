package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// MeasurementIntervalRange is the inclusive range accepted on encode, in seconds.
var MeasurementIntervalRange = wire.Range{Min: 1, Max: 65535}

// MeasurementInterval is the Measurement Interval characteristic (0x2A21):
// uint16 seconds between periodic measurements.
type MeasurementInterval struct {
	Interval units.Measurement `json:"interval"`
}

var measurementIntervalUUID = gatt.UUID16(0x2A21)

// Name returns "Measurement Interval".
func (m *MeasurementInterval) Name() string { return "Measurement Interval" }

// UUID returns 2A21.
func (m *MeasurementInterval) UUID() gatt.UUID { return measurementIntervalUUID }

// DecodeMeasurementInterval decodes a Measurement Interval value.
func DecodeMeasurementInterval(data []byte) (*MeasurementInterval, error) {
	v, err := wire.NewCursor(data).ReadUint16()
	if err != nil {
		return nil, err
	}
	return &MeasurementInterval{Interval: measurement(v, resolution.One, units.Seconds)}, nil
}

// Encode writes the interval in seconds. Values outside 1...65535 seconds fail.
func (m *MeasurementInterval) Encode() ([]byte, error) {
	if m == nil {
		return nil, wire.InvalidEncodeValue(m.Name(), "nil value", nil)
	}
	v, err := toWireRange("measurement interval", m.Interval, units.Seconds, resolution.One,
		MeasurementIntervalRange, "seconds")
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(2)
	w.PutUint16(uint16(v))
	return w.Bytes(), nil
}

// Equal reports whether other is a Measurement Interval with the same duration.
func (m *MeasurementInterval) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*MeasurementInterval)
	return ok && o.Interval.Equal(m.Interval)
}
