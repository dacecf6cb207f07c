package provisioning

import (
	"fmt"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// AuthMethod is the authentication method selected in a Start PDU.
type AuthMethod uint8

// Authentication methods. Values from 0x04 are prohibited.
const (
	AuthNoOOB     AuthMethod = 0x00
	AuthStaticOOB AuthMethod = 0x01
	AuthOutputOOB AuthMethod = 0x02
	AuthInputOOB  AuthMethod = 0x03
)

// String returns the method name.
func (m AuthMethod) String() string {
	switch m {
	case AuthNoOOB:
		return "NO_OOB"
	case AuthStaticOOB:
		return "STATIC_OOB"
	case AuthOutputOOB:
		return "OUTPUT_OOB"
	case AuthInputOOB:
		return "INPUT_OOB"
	default:
		return fmt.Sprintf("PROHIBITED(0x%02X)", uint8(m))
	}
}

// OOB size limits for output and input authentication.
const (
	MinOOBSize = 1
	MaxOOBSize = 8
)

var oobSizeRange = wire.Range{Min: MinOOBSize, Max: MaxOOBSize}

// Authentication is the method, action and size triple of a Start PDU.
// Action and Size must be zero for NoOOB and StaticOOB.
type Authentication struct {
	Method AuthMethod `json:"method"`
	Action uint8      `json:"action"`
	Size   uint8      `json:"size"`
}

// NoOOBAuth returns authentication without OOB data.
func NoOOBAuth() Authentication { return Authentication{Method: AuthNoOOB} }

// StaticOOBAuth returns static OOB authentication.
func StaticOOBAuth() Authentication { return Authentication{Method: AuthStaticOOB} }

// OutputOOBAuth returns output OOB authentication with the given action and size.
func OutputOOBAuth(action OutputAction, size uint8) Authentication {
	return Authentication{Method: AuthOutputOOB, Action: uint8(action), Size: size}
}

// InputOOBAuth returns input OOB authentication with the given action and size.
func InputOOBAuth(action InputAction, size uint8) Authentication {
	return Authentication{Method: AuthInputOOB, Action: uint8(action), Size: size}
}

// String formats the triple, such as "OUTPUT_OOB(BLINK, 4)".
func (a Authentication) String() string {
	switch a.Method {
	case AuthOutputOOB:
		return fmt.Sprintf("%s(%s, %d)", a.Method, OutputAction(a.Action), a.Size)
	case AuthInputOOB:
		return fmt.Sprintf("%s(%s, %d)", a.Method, InputAction(a.Action), a.Size)
	default:
		return a.Method.String()
	}
}

// validateForEncode checks the triple and returns an *wire.EncodeError.
func (a Authentication) validateForEncode() error {
	switch a.Method {
	case AuthNoOOB, AuthStaticOOB:
		if a.Action != 0 || a.Size != 0 {
			return wire.InvalidEncodeValue("authentication", a.Method.String()+" requires action and size 0", nil)
		}
	case AuthOutputOOB:
		if !OutputAction(a.Action).Valid() {
			return wire.OutOfBounds("output OOB action", wire.Range{Min: int64(Blink), Max: int64(OutputAlphanumeric)}, "")
		}
		if !oobSizeRange.Contains(int64(a.Size)) {
			return wire.OutOfBounds("output OOB size", oobSizeRange, "")
		}
	case AuthInputOOB:
		if !InputAction(a.Action).Valid() {
			return wire.OutOfBounds("input OOB action", wire.Range{Min: int64(Push), Max: int64(InputAlphanumeric)}, "")
		}
		if !oobSizeRange.Contains(int64(a.Size)) {
			return wire.OutOfBounds("input OOB size", oobSizeRange, "")
		}
	default:
		return wire.InvalidEncodeValue("authentication method", a.Method.String(), nil)
	}
	return nil
}

// validateForDecode checks the triple and returns an *wire.DecodeError.
func (a Authentication) validateForDecode() error {
	switch a.Method {
	case AuthNoOOB, AuthStaticOOB:
		if a.Action != 0 || a.Size != 0 {
			return wire.InvalidValue("authentication", "%s with action %d size %d", a.Method, a.Action, a.Size)
		}
	case AuthOutputOOB:
		if !OutputAction(a.Action).Valid() {
			return wire.InvalidValue("output OOB action", "RFU value %d", a.Action)
		}
		if !oobSizeRange.Contains(int64(a.Size)) {
			return wire.InvalidValue("output OOB size", "%d outside %s", a.Size, oobSizeRange)
		}
	case AuthInputOOB:
		if !InputAction(a.Action).Valid() {
			return wire.InvalidValue("input OOB action", "RFU value %d", a.Action)
		}
		if !oobSizeRange.Contains(int64(a.Size)) {
			return wire.InvalidValue("input OOB size", "%d outside %s", a.Size, oobSizeRange)
		}
	default:
		return wire.InvalidValue("authentication method", "prohibited value %d", uint8(a.Method))
	}
	return nil
}
