package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PeerID identifies the remote device (address or application label).
	PeerID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Frame   *FrameEvent     `cbor:"10,keyasint,omitempty"` // Raw bytes
	Message *MessageEvent   `cbor:"11,keyasint,omitempty"` // Decoded value
	Error   *ErrorEventData `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates bytes received from a peer and decoded.
	DirectionIn Direction = 0
	// DirectionOut indicates a value encoded for sending to a peer.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses a direction name as returned by String.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "IN", "in":
		return DirectionIn, true
	case "OUT", "out":
		return DirectionOut, true
	default:
		return 0, false
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerGATT is the characteristic value layer.
	LayerGATT Layer = 0
	// LayerProvisioning is the Mesh Provisioning PDU layer.
	LayerProvisioning Layer = 1
	// LayerProxy is the PB-GATT proxy segmentation layer.
	LayerProxy Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerGATT:
		return "GATT"
	case LayerProvisioning:
		return "PROVISIONING"
	case LayerProxy:
		return "PROXY"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer parses a layer name as returned by String.
func ParseLayer(s string) (Layer, bool) {
	switch s {
	case "GATT", "gatt":
		return LayerGATT, true
	case "PROVISIONING", "provisioning":
		return LayerProvisioning, true
	case "PROXY", "proxy":
		return LayerProxy, true
	default:
		return 0, false
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a frame or decoded message.
	CategoryMessage Category = 0
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as returned by String.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "MESSAGE", "message":
		return CategoryMessage, true
	case "ERROR", "error":
		return CategoryError, true
	default:
		return 0, false
	}
}

// FrameEvent captures raw bytes as they cross the codec boundary.
type FrameEvent struct {
	// Size is the frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MaxFrameDataSize is the maximum frame data size included in events.
const MaxFrameDataSize = 4096

// NewFrameEvent returns a FrameEvent for data, truncating large frames.
func NewFrameEvent(data []byte) *FrameEvent {
	frame := &FrameEvent{Size: len(data), Data: data}
	if len(data) > MaxFrameDataSize {
		frame.Data = data[:MaxFrameDataSize]
		frame.Truncated = true
	}
	return frame
}

// MessageEvent captures a decoded message.
type MessageEvent struct {
	// Kind distinguishes characteristic values, provisioning PDUs and proxy messages.
	Kind MessageKind `cbor:"1,keyasint"`

	// Identifier is the characteristic UUID or the PDU/message type tag.
	Identifier string `cbor:"2,keyasint"`

	// Name is the human-readable message name.
	Name string `cbor:"3,keyasint,omitempty"`

	// Decoded payload (CBOR-compatible representation).
	Payload any `cbor:"4,keyasint,omitempty"`
}

// MessageKind distinguishes the message families.
type MessageKind uint8

const (
	// MessageKindCharacteristic indicates a GATT characteristic value.
	MessageKindCharacteristic MessageKind = 0
	// MessageKindProvisioningPDU indicates a Mesh Provisioning PDU.
	MessageKindProvisioningPDU MessageKind = 1
	// MessageKindProxyPDU indicates a reassembled proxy message.
	MessageKindProxyPDU MessageKind = 2
)

// String returns the message kind name.
func (m MessageKind) String() string {
	switch m {
	case MessageKindCharacteristic:
		return "CHARACTERISTIC"
	case MessageKindProvisioningPDU:
		return "PROVISIONING_PDU"
	case MessageKindProxyPDU:
		return "PROXY_PDU"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind is the error classification, such as TRUNCATED (if applicable).
	Kind string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
