package characteristic

import (
	"unicode/utf8"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// EmailAddress is the Email Address characteristic (0x2A87): a UTF-8 string
// filling the whole value.
type EmailAddress struct {
	Address string `json:"address"`
}

var emailAddressUUID = gatt.UUID16(0x2A87)

// Name returns "Email Address".
func (e *EmailAddress) Name() string { return "Email Address" }

// UUID returns 2A87.
func (e *EmailAddress) UUID() gatt.UUID { return emailAddressUUID }

// DecodeEmailAddress decodes an Email Address value.
func DecodeEmailAddress(data []byte) (*EmailAddress, error) {
	s, err := wire.NewCursor(data).ReadString()
	if err != nil {
		return nil, wire.InvalidString("email address")
	}
	return &EmailAddress{Address: s}, nil
}

// Encode writes the address bytes without a terminator.
func (e *EmailAddress) Encode() ([]byte, error) {
	if e == nil {
		return nil, wire.InvalidEncodeValue(e.Name(), "nil value", nil)
	}
	if !utf8.ValidString(e.Address) {
		return nil, wire.InvalidEncodeValue("email address", "not valid UTF-8", nil)
	}
	w := wire.NewWriter(len(e.Address))
	w.PutString(e.Address)
	return w.Bytes(), nil
}

// Equal reports whether other is an Email Address with the same string.
func (e *EmailAddress) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*EmailAddress)
	return ok && o.Address == e.Address
}
