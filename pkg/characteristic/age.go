package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Age is the Age characteristic (0x2A80): age of the user in years.
type Age struct {
	Years uint8 `json:"years"`
}

var ageUUID = gatt.UUID16(0x2A80)

// Name returns "Age".
func (a *Age) Name() string { return "Age" }

// UUID returns 2A80.
func (a *Age) UUID() gatt.UUID { return ageUUID }

// DecodeAge decodes an Age value.
func DecodeAge(data []byte) (*Age, error) {
	v, err := wire.NewCursor(data).ReadUint8()
	if err != nil {
		return nil, err
	}
	return &Age{Years: v}, nil
}

// Encode returns the single-byte wire form.
func (a *Age) Encode() ([]byte, error) {
	if a == nil {
		return nil, wire.InvalidEncodeValue(a.Name(), "nil value", nil)
	}
	return []byte{a.Years}, nil
}

// Equal reports whether other is an Age with the same value.
func (a *Age) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*Age)
	return ok && o.Years == a.Years
}
