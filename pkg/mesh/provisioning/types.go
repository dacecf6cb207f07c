package provisioning

import "fmt"

// Type is the provisioning PDU type tag.
type Type uint8

// PDU types.
const (
	TypeInvite        Type = 0x00
	TypeCapabilities  Type = 0x01
	TypeStart         Type = 0x02
	TypePublicKey     Type = 0x03
	TypeInputComplete Type = 0x04
	TypeConfirmation  Type = 0x05
	TypeRandom        Type = 0x06
	TypeData          Type = 0x07
	TypeComplete      Type = 0x08
	TypeFailed        Type = 0x09
)

// String returns the PDU name.
func (t Type) String() string {
	switch t {
	case TypeInvite:
		return "Provisioning Invite"
	case TypeCapabilities:
		return "Provisioning Capabilities"
	case TypeStart:
		return "Provisioning Start"
	case TypePublicKey:
		return "Provisioning Public Key"
	case TypeInputComplete:
		return "Provisioning Input Complete"
	case TypeConfirmation:
		return "Provisioning Confirmation"
	case TypeRandom:
		return "Provisioning Random"
	case TypeData:
		return "Provisioning Data"
	case TypeComplete:
		return "Provisioning Complete"
	case TypeFailed:
		return "Provisioning Failed"
	default:
		return fmt.Sprintf("Type(0x%02X)", uint8(t))
	}
}

// Block sizes.
const (
	PublicKeyCoordinateSize = 32
	ConfirmationSize        = 16
	RandomSize              = 16
	EncryptedDataSize       = 25
	MICSize                 = 8
)

// ErrorType is the reason carried by a Provisioning Failed PDU.
type ErrorType uint8

// Error types. Values from 0x09 are reserved for future use.
const (
	ErrorProhibited            ErrorType = 0x00
	ErrorInvalidPDU            ErrorType = 0x01
	ErrorInvalidFormat         ErrorType = 0x02
	ErrorUnexpectedPDU         ErrorType = 0x03
	ErrorConfirmationFailed    ErrorType = 0x04
	ErrorOutOfResources        ErrorType = 0x05
	ErrorDecryptionFailed      ErrorType = 0x06
	ErrorUnexpectedError       ErrorType = 0x07
	ErrorCannotAssignAddresses ErrorType = 0x08
)

// Valid reports whether e is a defined error type.
func (e ErrorType) Valid() bool {
	return e <= ErrorCannotAssignAddresses
}

// String returns the error type name.
func (e ErrorType) String() string {
	switch e {
	case ErrorProhibited:
		return "PROHIBITED"
	case ErrorInvalidPDU:
		return "INVALID_PDU"
	case ErrorInvalidFormat:
		return "INVALID_FORMAT"
	case ErrorUnexpectedPDU:
		return "UNEXPECTED_PDU"
	case ErrorConfirmationFailed:
		return "CONFIRMATION_FAILED"
	case ErrorOutOfResources:
		return "OUT_OF_RESOURCES"
	case ErrorDecryptionFailed:
		return "DECRYPTION_FAILED"
	case ErrorUnexpectedError:
		return "UNEXPECTED_ERROR"
	case ErrorCannotAssignAddresses:
		return "CANNOT_ASSIGN_ADDRESSES"
	default:
		return fmt.Sprintf("RFU(0x%02X)", uint8(e))
	}
}

// Algorithm selects the provisioning algorithm in a Start PDU.
type Algorithm uint8

// Algorithms. Values from 0x01 are reserved for future use.
const (
	FIPSP256 Algorithm = 0x00
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	if a == FIPSP256 {
		return "FIPS_P256"
	}
	return fmt.Sprintf("RFU(0x%02X)", uint8(a))
}

// PublicKeyMethod selects how the device public key is obtained in a Start PDU.
type PublicKeyMethod uint8

// Public key methods. Values from 0x02 are prohibited.
const (
	NoOOBPublicKey PublicKeyMethod = 0x00
	OOBPublicKey   PublicKeyMethod = 0x01
)

// String returns the method name.
func (m PublicKeyMethod) String() string {
	switch m {
	case NoOOBPublicKey:
		return "NO_OOB"
	case OOBPublicKey:
		return "OOB"
	default:
		return fmt.Sprintf("PROHIBITED(0x%02X)", uint8(m))
	}
}
