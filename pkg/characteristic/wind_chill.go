package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// WindChill is the Wind Chill characteristic (0x2A79): sint8 in °C.
type WindChill struct {
	Temperature units.Measurement `json:"temperature"`
}

var windChillUUID = gatt.UUID16(0x2A79)

// Name returns "Wind Chill".
func (w *WindChill) Name() string { return "Wind Chill" }

// UUID returns 2A79.
func (w *WindChill) UUID() gatt.UUID { return windChillUUID }

// DecodeWindChill decodes a Wind Chill value.
func DecodeWindChill(data []byte) (*WindChill, error) {
	v, err := wire.NewCursor(data).ReadInt8()
	if err != nil {
		return nil, err
	}
	return &WindChill{Temperature: measurement(v, resolution.One, units.Celsius)}, nil
}

// Encode converts the temperature to whole degrees Celsius.
func (w *WindChill) Encode() ([]byte, error) {
	if w == nil {
		return nil, wire.InvalidEncodeValue(w.Name(), "nil value", nil)
	}
	v, err := toWire[int8]("wind chill", w.Temperature, units.Celsius, resolution.One)
	if err != nil {
		return nil, err
	}
	return []byte{byte(v)}, nil
}

// Equal reports whether other is a Wind Chill with the same temperature.
func (w *WindChill) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*WindChill)
	return ok && o.Temperature.Equal(w.Temperature)
}
