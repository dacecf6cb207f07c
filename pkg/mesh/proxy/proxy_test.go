package proxy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/provisioning"
)

type recordingLogger struct {
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) { r.events = append(r.events, e) }

func payload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestHeader(t *testing.T) {
	assert.Equal(t, byte(0x03), Header(Complete, ProvisioningPDU))
	assert.Equal(t, byte(0x43), Header(First, ProvisioningPDU))
	assert.Equal(t, byte(0x83), Header(Continuation, ProvisioningPDU))
	assert.Equal(t, byte(0xC3), Header(Last, ProvisioningPDU))
	assert.Equal(t, byte(0x41), Header(First, MeshBeacon))

	sar, typ := ParseHeader(0xC2)
	assert.Equal(t, Last, sar)
	assert.Equal(t, ProxyConfiguration, typ)
}

func TestSegmentSingle(t *testing.T) {
	frames, err := Segment(ProvisioningPDU, []byte{0x00, 0x05}, DefaultMTU)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x03, 0x00, 0x05}}, frames)
}

func TestSegmentBoundaries(t *testing.T) {
	limit := MaxSegmentPayload(DefaultMTU)
	require.Equal(t, 19, limit)

	tests := []struct {
		name   string
		size   int
		frames int
		sars   []SAR
	}{
		{"exactly one", limit, 1, []SAR{Complete}},
		{"one over", limit + 1, 2, []SAR{First, Last}},
		{"two full", 2 * limit, 2, []SAR{First, Last}},
		{"public key pdu", 65, 4, []SAR{First, Continuation, Continuation, Last}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Segment(ProvisioningPDU, payload(tt.size), DefaultMTU)
			require.NoError(t, err)
			require.Len(t, frames, tt.frames)

			var joined []byte
			for i, f := range frames {
				assert.LessOrEqual(t, len(f), DefaultMTU-ATTHeaderSize)
				sar, typ := ParseHeader(f[0])
				assert.Equal(t, tt.sars[i], sar, "frame %d", i)
				assert.Equal(t, ProvisioningPDU, typ)
				joined = append(joined, f[1:]...)
			}
			assert.Equal(t, payload(tt.size), joined)
		})
	}
}

func TestSegmentErrors(t *testing.T) {
	_, err := Segment(ProvisioningPDU, nil, DefaultMTU)
	assert.ErrorIs(t, err, ErrMessageEmpty)

	_, err = Segment(MessageType(0x3F), []byte{1}, DefaultMTU)
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	_, err = Segment(ProvisioningPDU, []byte{1}, MinMTU-1)
	assert.ErrorIs(t, err, ErrInvalidMTU)

	frames, err := Segment(NetworkPDU, []byte{1, 2, 3}, MinMTU)
	require.NoError(t, err)
	assert.Len(t, frames, 3)
}

func TestReassembleRoundTrip(t *testing.T) {
	for _, mtu := range []int{MinMTU, DefaultMTU, 69, 185} {
		for _, size := range []int{1, 18, 19, 20, 65, 300} {
			frames, err := Segment(ProvisioningPDU, payload(size), mtu)
			require.NoError(t, err)

			r := NewReassembler()
			for i, f := range frames {
				msg, done, err := r.Push(f)
				require.NoError(t, err)
				if i < len(frames)-1 {
					assert.False(t, done)
					assert.True(t, r.InProgress())
					continue
				}
				require.True(t, done, "mtu %d size %d", mtu, size)
				assert.Equal(t, ProvisioningPDU, msg.Type)
				assert.Equal(t, payload(size), msg.Payload)
				assert.False(t, r.InProgress())
			}
		}
	}
}

func TestReassembleErrors(t *testing.T) {
	first := []byte{Header(First, ProvisioningPDU), 0x01}
	cont := []byte{Header(Continuation, ProvisioningPDU), 0x02}
	last := []byte{Header(Last, ProvisioningPDU), 0x03}
	complete := []byte{Header(Complete, ProvisioningPDU), 0x04}

	tests := []struct {
		name   string
		frames [][]byte
		want   error
	}{
		{"empty frame", [][]byte{{}}, ErrFrameTruncated},
		{"header only", [][]byte{{0x03}}, ErrMessageEmpty},
		{"reserved type", [][]byte{{0x04, 0x00}}, ErrUnknownMessageType},
		{"continuation first", [][]byte{cont}, ErrUnexpectedSegment},
		{"last first", [][]byte{last}, ErrUnexpectedSegment},
		{"first twice", [][]byte{first, first}, ErrUnexpectedSegment},
		{"complete mid message", [][]byte{first, complete}, ErrUnexpectedSegment},
		{"type change", [][]byte{first, {Header(Last, NetworkPDU), 0x05}}, ErrMessageTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReassembler()
			var err error
			for _, f := range tt.frames {
				if _, _, err = r.Push(f); err != nil {
					break
				}
			}
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, r.InProgress(), "state must reset after an error")
		})
	}
}

func TestReassembleRecoversAfterError(t *testing.T) {
	r := NewReassembler()
	_, _, err := r.Push([]byte{Header(Last, ProvisioningPDU), 0x01})
	require.ErrorIs(t, err, ErrUnexpectedSegment)

	msg, done, err := r.Push([]byte{Header(Complete, ProvisioningPDU), 0x08})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []byte{0x08}, msg.Payload)
}

func TestReassembleTooLarge(t *testing.T) {
	r := NewReassemblerWithMaxSize(4)
	_, _, err := r.Push([]byte{Header(First, NetworkPDU), 1, 2, 3})
	require.NoError(t, err)
	_, _, err = r.Push([]byte{Header(Last, NetworkPDU), 4, 5})
	assert.ErrorIs(t, err, ErrMessageTooLarge)
	assert.False(t, r.InProgress())
}

func TestReassembleReset(t *testing.T) {
	r := NewReassembler()
	_, _, err := r.Push([]byte{Header(First, MeshBeacon), 1})
	require.NoError(t, err)
	r.Reset()
	assert.False(t, r.InProgress())

	_, _, err = r.Push([]byte{Header(Last, MeshBeacon), 2})
	assert.ErrorIs(t, err, ErrUnexpectedSegment)
}

func TestMessageDoesNotAliasFrame(t *testing.T) {
	f := []byte{Header(Complete, NetworkPDU), 0xAA}
	msg, _, err := NewReassembler().Push(f)
	require.NoError(t, err)
	f[1] = 0xBB
	assert.Equal(t, []byte{0xAA}, msg.Payload)
}

func TestMessageProvisioningPDU(t *testing.T) {
	pdu, err := (&provisioning.PublicKey{X: bytes.Repeat([]byte{1}, 32), Y: bytes.Repeat([]byte{2}, 32)}).Encode()
	require.NoError(t, err)

	frames, err := Segment(ProvisioningPDU, pdu, DefaultMTU)
	require.NoError(t, err)

	r := NewReassembler()
	var msg Message
	for _, f := range frames {
		var done bool
		msg, done, err = r.Push(f)
		require.NoError(t, err)
		if done {
			break
		}
	}

	decoded, err := msg.ProvisioningPDU()
	require.NoError(t, err)
	assert.Equal(t, provisioning.TypePublicKey, decoded.Type())

	_, err = Message{Type: NetworkPDU, Payload: pdu}.ProvisioningPDU()
	assert.ErrorIs(t, err, ErrMessageTypeMismatch)
}

func TestSegmenterAndReassemblerLogFrames(t *testing.T) {
	logger := &recordingLogger{}

	s, err := NewSegmenter(DefaultMTU)
	require.NoError(t, err)
	s.SetLogger(logger, "peer-1")
	frames, err := s.Segment(ProvisioningPDU, payload(40))
	require.NoError(t, err)
	require.Len(t, logger.events, len(frames))
	for i, e := range logger.events {
		assert.Equal(t, log.DirectionOut, e.Direction)
		assert.Equal(t, log.LayerProxy, e.Layer)
		assert.Equal(t, "peer-1", e.PeerID)
		assert.Equal(t, frames[i], e.Frame.Data)
	}

	logger.events = nil
	r := NewReassembler()
	r.SetLogger(logger, "peer-1")
	_, _, err = r.Push(frames[1])
	require.Error(t, err)
	require.Len(t, logger.events, 2)
	assert.Equal(t, log.DirectionIn, logger.events[0].Direction)
	assert.NotNil(t, logger.events[0].Frame)
	assert.Equal(t, log.CategoryError, logger.events[1].Category)
	assert.Equal(t, "UNEXPECTED_SEGMENT", logger.events[1].Error.Kind)
}

func TestNewSegmenterInvalidMTU(t *testing.T) {
	_, err := NewSegmenter(4)
	assert.ErrorIs(t, err, ErrInvalidMTU)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "PROVISIONING_PDU", ProvisioningPDU.String())
	assert.Equal(t, "RFU(0x3F)", MessageType(0x3F).String())
	assert.Equal(t, "CONTINUATION", Continuation.String())
}
