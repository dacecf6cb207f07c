package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// ApparentWindSpeed is the Apparent Wind Speed characteristic (0x2A72):
// uint16 with 0.01 m/s resolution.
type ApparentWindSpeed struct {
	Speed units.Measurement `json:"speed"`
}

var apparentWindSpeedUUID = gatt.UUID16(0x2A72)

// Name returns "Apparent Wind Speed".
func (a *ApparentWindSpeed) Name() string { return "Apparent Wind Speed" }

// UUID returns 2A72.
func (a *ApparentWindSpeed) UUID() gatt.UUID { return apparentWindSpeedUUID }

// DecodeApparentWindSpeed decodes an Apparent Wind Speed value.
func DecodeApparentWindSpeed(data []byte) (*ApparentWindSpeed, error) {
	v, err := wire.NewCursor(data).ReadUint16()
	if err != nil {
		return nil, err
	}
	return &ApparentWindSpeed{Speed: measurement(v, resolution.OneHundredth, units.MetersPerSecond)}, nil
}

// Encode converts the speed to m/s and scales it to 0.01 m/s steps.
func (a *ApparentWindSpeed) Encode() ([]byte, error) {
	if a == nil {
		return nil, wire.InvalidEncodeValue(a.Name(), "nil value", nil)
	}
	v, err := toWire[uint16]("apparent wind speed", a.Speed, units.MetersPerSecond, resolution.OneHundredth)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(2)
	w.PutUint16(v)
	return w.Bytes(), nil
}

// Equal reports whether other is an Apparent Wind Speed with the same speed.
func (a *ApparentWindSpeed) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*ApparentWindSpeed)
	return ok && o.Speed.Equal(a.Speed)
}
