package proxy

import (
	"errors"
	"fmt"
	"time"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/provisioning"
)

// Framing constants.
const (
	// HeaderSize is the size of the Proxy PDU header in bytes.
	HeaderSize = 1

	// ATTHeaderSize is the ATT opcode and handle overhead of a write or
	// notification, subtracted from the MTU.
	ATTHeaderSize = 3

	// DefaultMTU is the default ATT MTU.
	DefaultMTU = 23

	// MinMTU is the smallest MTU that leaves room for one payload byte.
	MinMTU = ATTHeaderSize + HeaderSize + 1

	// DefaultMaxMessageSize bounds a reassembled message.
	DefaultMaxMessageSize = 1024
)

// Framing errors.
var (
	// ErrUnexpectedSegment indicates a segment arrived out of SAR order.
	ErrUnexpectedSegment = errors.New("proxy: unexpected segment")

	// ErrMessageTypeMismatch indicates a segment changed message type mid-message.
	ErrMessageTypeMismatch = errors.New("proxy: message type mismatch")

	// ErrMessageTooLarge indicates the message exceeds the maximum size.
	ErrMessageTooLarge = errors.New("proxy: message too large")

	// ErrMessageEmpty indicates a segment or message without payload.
	ErrMessageEmpty = errors.New("proxy: message is empty")

	// ErrFrameTruncated indicates a frame without a header byte.
	ErrFrameTruncated = errors.New("proxy: frame truncated")

	// ErrUnknownMessageType indicates a reserved message type.
	ErrUnknownMessageType = errors.New("proxy: unknown message type")

	// ErrInvalidMTU indicates an MTU too small to carry a segment.
	ErrInvalidMTU = errors.New("proxy: invalid MTU")
)

// MessageType is the six-bit Proxy PDU message type.
type MessageType uint8

// Message types.
const (
	NetworkPDU         MessageType = 0x00
	MeshBeacon         MessageType = 0x01
	ProxyConfiguration MessageType = 0x02
	ProvisioningPDU    MessageType = 0x03
)

// Valid reports whether t is a defined message type.
func (t MessageType) Valid() bool { return t <= ProvisioningPDU }

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case NetworkPDU:
		return "NETWORK_PDU"
	case MeshBeacon:
		return "MESH_BEACON"
	case ProxyConfiguration:
		return "PROXY_CONFIGURATION"
	case ProvisioningPDU:
		return "PROVISIONING_PDU"
	default:
		return fmt.Sprintf("RFU(0x%02X)", uint8(t))
	}
}

// SAR is the segmentation state carried in the header's two high bits.
type SAR uint8

// SAR states.
const (
	Complete     SAR = 0b00
	First        SAR = 0b01
	Continuation SAR = 0b10
	Last         SAR = 0b11
)

// String returns the SAR state name.
func (s SAR) String() string {
	switch s {
	case Complete:
		return "COMPLETE"
	case First:
		return "FIRST"
	case Continuation:
		return "CONTINUATION"
	case Last:
		return "LAST"
	default:
		return "UNKNOWN"
	}
}

// Header builds a Proxy PDU header byte.
func Header(sar SAR, t MessageType) byte {
	return byte(sar&0x03)<<6 | byte(t&0x3F)
}

// ParseHeader splits a header byte into its SAR state and message type.
func ParseHeader(b byte) (SAR, MessageType) {
	return SAR(b >> 6), MessageType(b & 0x3F)
}

// Message is a complete, reassembled proxy message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload []byte      `json:"payload"`
}

// ProvisioningPDU decodes the payload of a ProvisioningPDU message.
func (m Message) ProvisioningPDU() (provisioning.PDU, error) {
	if m.Type != ProvisioningPDU {
		return nil, fmt.Errorf("%w: %s is not a provisioning message", ErrMessageTypeMismatch, m.Type)
	}
	return provisioning.Decode(m.Payload)
}

// MaxSegmentPayload returns the payload bytes one Proxy PDU carries at mtu.
func MaxSegmentPayload(mtu int) int {
	return mtu - ATTHeaderSize - HeaderSize
}

// Segment splits payload into Proxy PDUs no larger than mtu minus the ATT
// header. A payload that fits is sent as a single Complete PDU.
func Segment(t MessageType, payload []byte, mtu int) ([][]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, t)
	}
	if len(payload) == 0 {
		return nil, ErrMessageEmpty
	}
	if mtu < MinMTU {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidMTU, mtu, MinMTU)
	}

	size := MaxSegmentPayload(mtu)
	if len(payload) <= size {
		return [][]byte{frame(Complete, t, payload)}, nil
	}

	frames := make([][]byte, 0, (len(payload)+size-1)/size)
	for off := 0; off < len(payload); off += size {
		end := min(off+size, len(payload))
		sar := Continuation
		switch {
		case off == 0:
			sar = First
		case end == len(payload):
			sar = Last
		}
		frames = append(frames, frame(sar, t, payload[off:end]))
	}
	return frames, nil
}

func frame(sar SAR, t MessageType, chunk []byte) []byte {
	b := make([]byte, 0, HeaderSize+len(chunk))
	b = append(b, Header(sar, t))
	return append(b, chunk...)
}

// Segmenter segments outgoing messages at a fixed MTU and logs each frame.
type Segmenter struct {
	mtu int

	// Logging support (optional)
	logger log.Logger
	peerID string
}

// NewSegmenter creates a Segmenter for the given MTU.
func NewSegmenter(mtu int) (*Segmenter, error) {
	if mtu < MinMTU {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidMTU, mtu, MinMTU)
	}
	return &Segmenter{mtu: mtu}, nil
}

// SetLogger configures logging for this segmenter.
// Pass nil to disable logging.
func (s *Segmenter) SetLogger(logger log.Logger, peerID string) {
	s.logger = logger
	s.peerID = peerID
}

// MTU returns the configured MTU.
func (s *Segmenter) MTU() int { return s.mtu }

// Segment splits payload into frames, see Segment.
func (s *Segmenter) Segment(t MessageType, payload []byte) ([][]byte, error) {
	frames, err := Segment(t, payload, s.mtu)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		for _, f := range frames {
			s.logger.Log(makeFrameEvent(f, log.DirectionOut, s.peerID))
		}
	}
	return frames, nil
}

// Reassembler rebuilds messages from Proxy PDUs received on one bearer
// direction. It is not safe for concurrent use.
type Reassembler struct {
	maxMessageSize int

	inProgress bool
	msgType    MessageType
	buf        []byte

	// Logging support (optional)
	logger log.Logger
	peerID string
}

// NewReassembler creates a reassembler with DefaultMaxMessageSize.
func NewReassembler() *Reassembler {
	return NewReassemblerWithMaxSize(DefaultMaxMessageSize)
}

// NewReassemblerWithMaxSize creates a reassembler with a custom max size.
func NewReassemblerWithMaxSize(maxSize int) *Reassembler {
	return &Reassembler{maxMessageSize: maxSize}
}

// SetLogger configures logging for this reassembler.
// Pass nil to disable logging.
func (r *Reassembler) SetLogger(logger log.Logger, peerID string) {
	r.logger = logger
	r.peerID = peerID
}

// InProgress reports whether a segmented message is partially received.
func (r *Reassembler) InProgress() bool { return r.inProgress }

// Reset discards any partially received message.
func (r *Reassembler) Reset() {
	r.inProgress = false
	r.msgType = 0
	r.buf = nil
}

// Push consumes one Proxy PDU. It returns done=true with the message once
// a Complete or Last segment finishes it. On error the partial message is
// discarded so the next First or Complete segment starts cleanly.
func (r *Reassembler) Push(f []byte) (Message, bool, error) {
	if r.logger != nil {
		r.logger.Log(makeFrameEvent(f, log.DirectionIn, r.peerID))
	}

	msg, done, err := r.push(f)
	if err != nil {
		r.Reset()
		if r.logger != nil {
			r.logger.Log(r.makeErrorEvent(err))
		}
		return Message{}, false, err
	}
	return msg, done, nil
}

func (r *Reassembler) push(f []byte) (Message, bool, error) {
	if len(f) < HeaderSize {
		return Message{}, false, ErrFrameTruncated
	}
	sar, t := ParseHeader(f[0])
	chunk := f[HeaderSize:]

	if !t.Valid() {
		return Message{}, false, fmt.Errorf("%w: %s", ErrUnknownMessageType, t)
	}
	if len(chunk) == 0 {
		return Message{}, false, fmt.Errorf("%w: %s segment", ErrMessageEmpty, sar)
	}

	switch sar {
	case Complete, First:
		if r.inProgress {
			return Message{}, false, fmt.Errorf("%w: %s while reassembling %s", ErrUnexpectedSegment, sar, r.msgType)
		}
	case Continuation, Last:
		if !r.inProgress {
			return Message{}, false, fmt.Errorf("%w: %s without FIRST", ErrUnexpectedSegment, sar)
		}
		if t != r.msgType {
			return Message{}, false, fmt.Errorf("%w: got %s, want %s", ErrMessageTypeMismatch, t, r.msgType)
		}
	}

	if len(r.buf)+len(chunk) > r.maxMessageSize {
		return Message{}, false, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(r.buf)+len(chunk), r.maxMessageSize)
	}

	switch sar {
	case Complete:
		return Message{Type: t, Payload: append([]byte(nil), chunk...)}, true, nil
	case First:
		r.inProgress = true
		r.msgType = t
		r.buf = append(make([]byte, 0, len(chunk)*2), chunk...)
		return Message{}, false, nil
	case Continuation:
		r.buf = append(r.buf, chunk...)
		return Message{}, false, nil
	default:
		msg := Message{Type: t, Payload: append(r.buf, chunk...)}
		r.inProgress = false
		r.msgType = 0
		r.buf = nil
		return msg, true, nil
	}
}

func (r *Reassembler) makeErrorEvent(err error) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		PeerID:    r.peerID,
		Direction: log.DirectionIn,
		Layer:     log.LayerProxy,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerProxy,
			Message: err.Error(),
			Kind:    errorKind(err),
			Context: "reassemble",
		},
	}
}

// makeFrameEvent creates a log event for a Proxy PDU.
func makeFrameEvent(data []byte, direction log.Direction, peerID string) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		PeerID:    peerID,
		Direction: direction,
		Layer:     log.LayerProxy,
		Category:  log.CategoryMessage,
		Frame:     log.NewFrameEvent(data),
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnexpectedSegment):
		return "UNEXPECTED_SEGMENT"
	case errors.Is(err, ErrMessageTypeMismatch):
		return "MESSAGE_TYPE_MISMATCH"
	case errors.Is(err, ErrMessageTooLarge):
		return "MESSAGE_TOO_LARGE"
	case errors.Is(err, ErrMessageEmpty):
		return "MESSAGE_EMPTY"
	case errors.Is(err, ErrFrameTruncated):
		return "TRUNCATED"
	case errors.Is(err, ErrUnknownMessageType):
		return "UNKNOWN_MESSAGE_TYPE"
	default:
		return ""
	}
}
