package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Rainfall is the Rainfall characteristic (0x2A78): uint16 millimeters.
type Rainfall struct {
	Rainfall units.Measurement `json:"rainfall"`
}

var rainfallUUID = gatt.UUID16(0x2A78)

// Name returns "Rainfall".
func (r *Rainfall) Name() string { return "Rainfall" }

// UUID returns 2A78.
func (r *Rainfall) UUID() gatt.UUID { return rainfallUUID }

// DecodeRainfall decodes a Rainfall value.
func DecodeRainfall(data []byte) (*Rainfall, error) {
	v, err := wire.NewCursor(data).ReadUint16()
	if err != nil {
		return nil, err
	}
	return &Rainfall{Rainfall: measurement(v, resolution.One, units.Millimeters)}, nil
}

// Encode converts the rainfall to whole millimeters.
func (r *Rainfall) Encode() ([]byte, error) {
	if r == nil {
		return nil, wire.InvalidEncodeValue(r.Name(), "nil value", nil)
	}
	v, err := toWire[uint16]("rainfall", r.Rainfall, units.Millimeters, resolution.One)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(2)
	w.PutUint16(v)
	return w.Bytes(), nil
}

// Equal reports whether other is a Rainfall with the same amount.
func (r *Rainfall) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*Rainfall)
	return ok && o.Rainfall.Equal(r.Rainfall)
}
