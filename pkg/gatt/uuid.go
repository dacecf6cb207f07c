package gatt

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// baseUUID is the Bluetooth Base UUID, 00000000-0000-1000-8000-00805F9B34FB.
var baseUUID = uuid.UUID{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0x80, 0x5F, 0x9B, 0x34, 0xFB,
}

// UUID identifies a GATT service or characteristic.
//
// 16-bit and 32-bit assigned numbers are expanded onto the Bluetooth Base UUID.
// The zero value is the nil UUID and matches no registered definition.
type UUID struct {
	u uuid.UUID
}

// UUID16 expands a 16-bit assigned number onto the Bluetooth Base UUID.
func UUID16(v uint16) UUID {
	return UUID32(uint32(v))
}

// UUID32 expands a 32-bit assigned number onto the Bluetooth Base UUID.
func UUID32(v uint32) UUID {
	u := baseUUID
	binary.BigEndian.PutUint32(u[0:4], v)
	return UUID{u: u}
}

// FromUUID wraps a 128-bit uuid.UUID.
func FromUUID(u uuid.UUID) UUID {
	return UUID{u: u}
}

// ParseUUID parses a UUID in 4-hex short, 8-hex 32-bit or full 128-bit form.
// An optional "0x" prefix is accepted on the short forms.
func ParseUUID(s string) (UUID, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	switch len(t) {
	case 4, 8:
		b, err := hex.DecodeString(t)
		if err != nil {
			return UUID{}, fmt.Errorf("invalid UUID %q: %w", s, err)
		}
		if len(b) == 2 {
			return UUID16(binary.BigEndian.Uint16(b)), nil
		}
		return UUID32(binary.BigEndian.Uint32(b)), nil
	}
	u, err := uuid.Parse(t)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return UUID{u: u}, nil
}

// MustParseUUID is like ParseUUID but panics on error.
// It is intended for package-level UUID literals.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsBase reports whether u is derived from the Bluetooth Base UUID.
func (u UUID) IsBase() bool {
	return [12]byte(u.u[4:]) == [12]byte(baseUUID[4:])
}

// Is16Bit reports whether u is a 16-bit assigned number.
func (u UUID) Is16Bit() bool {
	return u.IsBase() && u.u[0] == 0 && u.u[1] == 0
}

// Short returns the 16-bit assigned number when u is one.
func (u UUID) Short() (uint16, bool) {
	if !u.Is16Bit() {
		return 0, false
	}
	return binary.BigEndian.Uint16(u.u[2:4]), true
}

// UUID returns the full 128-bit form.
func (u UUID) UUID() uuid.UUID { return u.u }

// Compare orders UUIDs by their 128-bit big-endian value.
func (u UUID) Compare(other UUID) int {
	for i := range u.u {
		switch {
		case u.u[i] < other.u[i]:
			return -1
		case u.u[i] > other.u[i]:
			return 1
		}
	}
	return 0
}

// String returns the upper-case short form for base-derived UUIDs and the
// upper-case canonical form otherwise.
func (u UUID) String() string {
	if u.IsBase() {
		if v, ok := u.Short(); ok {
			return fmt.Sprintf("%04X", v)
		}
		return fmt.Sprintf("%08X", binary.BigEndian.Uint32(u.u[0:4]))
	}
	return strings.ToUpper(u.u.String())
}

// MarshalText encodes the UUID in its String form.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses any form accepted by ParseUUID.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := ParseUUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
