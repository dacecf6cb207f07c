package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// coordinateScale converts raw WGS84 coordinates (1e-7 degrees) to degrees.
const coordinateScale = 1e7

// Position2D is the Position 2D characteristic (0x2AAF): raw WGS84 latitude
// and longitude in units of 1e-7 degrees.
type Position2D struct {
	Latitude  int32 `json:"latitude"`
	Longitude int32 `json:"longitude"`
}

var position2DUUID = gatt.UUID16(0x2AAF)

// Name returns "Position 2D".
func (p *Position2D) Name() string { return "Position 2D" }

// UUID returns 2AAF.
func (p *Position2D) UUID() gatt.UUID { return position2DUUID }

// LatitudeDegrees returns the latitude in degrees.
func (p *Position2D) LatitudeDegrees() float64 { return float64(p.Latitude) / coordinateScale }

// LongitudeDegrees returns the longitude in degrees.
func (p *Position2D) LongitudeDegrees() float64 { return float64(p.Longitude) / coordinateScale }

// DecodePosition2D decodes a Position 2D value.
func DecodePosition2D(data []byte) (*Position2D, error) {
	c := wire.NewCursor(data)
	lat, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	lon, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	return &Position2D{Latitude: lat, Longitude: lon}, nil
}

// Encode writes latitude then longitude.
func (p *Position2D) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	w := wire.NewWriter(8)
	w.PutInt32(p.Latitude)
	w.PutInt32(p.Longitude)
	return w.Bytes(), nil
}

// Equal reports whether other is a Position 2D with the same coordinates.
func (p *Position2D) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*Position2D)
	return ok && *o == *p
}
