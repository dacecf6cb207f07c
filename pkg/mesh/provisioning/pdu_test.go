package provisioning

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

func seq(n int, start byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func TestPDURoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pdu  PDU
		size int
	}{
		{"invite", &Invite{AttentionDuration: 5}, 2},
		{"capabilities", &Capabilities{
			Elements:      2,
			Algorithms:    SupportsFIPSP256,
			PublicKeyType: PublicKeyOOBAvailable,
			StaticOOBType: StaticOOBAvailable,
			OutputOOBSize: 4,
			OutputActions: NewOutputActions(Blink, OutputNumeric),
			InputOOBSize:  8,
			InputActions:  NewInputActions(Push, InputAlphanumeric),
		}, 12},
		{"start no oob", &Start{Algorithm: FIPSP256, PublicKey: NoOOBPublicKey, Authentication: NoOOBAuth()}, 6},
		{"start static", &Start{Algorithm: FIPSP256, PublicKey: OOBPublicKey, Authentication: StaticOOBAuth()}, 6},
		{"start output", &Start{Algorithm: FIPSP256, Authentication: OutputOOBAuth(Vibrate, 6)}, 6},
		{"start input", &Start{Algorithm: FIPSP256, Authentication: InputOOBAuth(Twist, 1)}, 6},
		{"public key", &PublicKey{X: seq(32, 0), Y: seq(32, 100)}, 65},
		{"input complete", &InputComplete{}, 1},
		{"confirmation", &Confirmation{Confirmation: seq(16, 1)}, 17},
		{"random", &Random{Random: seq(16, 50)}, 17},
		{"data", &Data{EncryptedData: seq(25, 0), MIC: seq(8, 200)}, 34},
		{"complete", &Complete{}, 1},
		{"failed", &Failed{Reason: ErrorDecryptionFailed}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.pdu.Encode()
			require.NoError(t, err)
			assert.Len(t, data, tt.size)
			assert.Equal(t, byte(tt.pdu.Type()), data[0])

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.pdu, got)
			assert.Equal(t, tt.pdu.Name(), got.Name())
		})
	}
}

func TestCapabilitiesWireLayout(t *testing.T) {
	p := &Capabilities{
		Elements:      1,
		Algorithms:    SupportsFIPSP256,
		PublicKeyType: 0,
		StaticOOBType: StaticOOBAvailable,
		OutputOOBSize: 2,
		OutputActions: NewOutputActions(Beep, OutputAlphanumeric),
		InputOOBSize:  3,
		InputActions:  NewInputActions(InputNumeric),
	}
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x01,       // type
		0x01,       // elements
		0x01, 0x00, // algorithms
		0x00,       // public key type
		0x01,       // static OOB
		0x02,       // output OOB size
		0x12, 0x00, // output actions: beep | alphanumeric
		0x03,       // input OOB size
		0x04, 0x00, // input actions: numeric
	}, data)
}

func TestPublicKeyFixedLength(t *testing.T) {
	_, err := (&PublicKey{X: seq(31, 0), Y: seq(32, 0)}).Encode()
	require.ErrorIs(t, err, wire.ErrFixedLength)

	var ee *wire.EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 32, ee.Expected)
	assert.Equal(t, 31, ee.Actual)

	_, err = (&PublicKey{X: seq(32, 0), Y: seq(33, 0)}).Encode()
	assert.ErrorIs(t, err, wire.ErrFixedLength)

	_, err = (&PublicKey{X: seq(32, 0), Y: seq(32, 0)}).Encode()
	assert.NoError(t, err)
}

func TestFixedLengthBlocks(t *testing.T) {
	tests := []struct {
		name string
		pdu  PDU
	}{
		{"confirmation short", &Confirmation{Confirmation: seq(15, 0)}},
		{"random long", &Random{Random: seq(17, 0)}},
		{"random nil", &Random{}},
		{"data short", &Data{EncryptedData: seq(24, 0), MIC: seq(8, 0)}},
		{"mic short", &Data{EncryptedData: seq(25, 0), MIC: seq(4, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.pdu.Encode()
			assert.ErrorIs(t, err, wire.ErrFixedLength)
			assert.Nil(t, data)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	full, err := (&PublicKey{X: seq(32, 0), Y: seq(32, 0)}).Encode()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, wire.ErrTruncated},
		{"unknown tag", []byte{0x0A}, wire.ErrInvalidTag},
		{"tag 0xFF", []byte{0xFF, 0x00}, wire.ErrInvalidTag},
		{"invite short", []byte{0x00}, wire.ErrTruncated},
		{"capabilities short", []byte{0x01, 0x01, 0x01}, wire.ErrTruncated},
		{"start short", []byte{0x02, 0x00, 0x00}, wire.ErrTruncated},
		{"public key short", full[:64], wire.ErrTruncated},
		{"public key trailing", append(bytes.Clone(full), 0x00), wire.ErrInvalidValue},
		{"input complete trailing", []byte{0x04, 0x00}, wire.ErrInvalidValue},
		{"confirmation short", append([]byte{0x05}, seq(15, 0)...), wire.ErrTruncated},
		{"random trailing", append([]byte{0x06}, seq(17, 0)...), wire.ErrInvalidValue},
		{"data short", append([]byte{0x07}, seq(32, 0)...), wire.ErrTruncated},
		{"complete trailing", []byte{0x08, 0x01}, wire.ErrInvalidValue},
		{"failed short", []byte{0x09}, wire.ErrTruncated},
		{"failed RFU reason", []byte{0x09, 0x09}, wire.ErrInvalidValue},
		{"capabilities zero elements", []byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, wire.ErrInvalidValue},
		{"capabilities output size 9", []byte{0x01, 0x01, 0x01, 0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x00, 0x00}, wire.ErrInvalidValue},
		{"start RFU algorithm", []byte{0x02, 0x01, 0x00, 0x00, 0x00, 0x00}, wire.ErrInvalidValue},
		{"start prohibited public key", []byte{0x02, 0x00, 0x02, 0x00, 0x00, 0x00}, wire.ErrInvalidValue},
		{"start prohibited method", []byte{0x02, 0x00, 0x00, 0x04, 0x00, 0x00}, wire.ErrInvalidValue},
		{"start no oob with size", []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}, wire.ErrInvalidValue},
		{"start output RFU action", []byte{0x02, 0x00, 0x00, 0x02, 0x05, 0x01}, wire.ErrInvalidValue},
		{"start output size 0", []byte{0x02, 0x00, 0x00, 0x02, 0x00, 0x00}, wire.ErrInvalidValue},
		{"start input size 9", []byte{0x02, 0x00, 0x00, 0x03, 0x00, 0x09}, wire.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdu, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, pdu)
		})
	}
}

func TestEncodeValidation(t *testing.T) {
	tests := []struct {
		name string
		pdu  PDU
		want error
	}{
		{"zero elements", &Capabilities{Elements: 0}, wire.ErrOutOfBounds},
		{"output size 9", &Capabilities{Elements: 1, OutputOOBSize: 9}, wire.ErrOutOfBounds},
		{"input size 9", &Capabilities{Elements: 1, InputOOBSize: 9}, wire.ErrOutOfBounds},
		{"RFU algorithm", &Start{Algorithm: 1}, wire.ErrInvalidValue},
		{"prohibited public key", &Start{PublicKey: 2}, wire.ErrInvalidValue},
		{"static with action", &Start{Authentication: Authentication{Method: AuthStaticOOB, Action: 1}}, wire.ErrInvalidValue},
		{"output size 0", &Start{Authentication: OutputOOBAuth(Blink, 0)}, wire.ErrOutOfBounds},
		{"output RFU action", &Start{Authentication: Authentication{Method: AuthOutputOOB, Action: 5, Size: 1}}, wire.ErrOutOfBounds},
		{"input size 9", &Start{Authentication: InputOOBAuth(Push, 9)}, wire.ErrOutOfBounds},
		{"input RFU action", &Start{Authentication: Authentication{Method: AuthInputOOB, Action: 4, Size: 1}}, wire.ErrOutOfBounds},
		{"prohibited method", &Start{Authentication: Authentication{Method: 7}}, wire.ErrInvalidValue},
		{"RFU error type", &Failed{Reason: 9}, wire.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.pdu.Encode()
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, data)
		})
	}
}

func TestEncodeNilReceiver(t *testing.T) {
	for _, p := range []PDU{
		(*Invite)(nil),
		(*Capabilities)(nil),
		(*Start)(nil),
		(*PublicKey)(nil),
		(*Confirmation)(nil),
		(*Random)(nil),
		(*Data)(nil),
		(*Failed)(nil),
	} {
		data, err := p.Encode()
		assert.ErrorIs(t, err, wire.ErrInvalidValue, p.Name())
		assert.Nil(t, data)
	}
}

func TestCapabilitiesDecodeAllFields(t *testing.T) {
	p, err := Decode([]byte{0x01, 0x03, 0x01, 0x00, 0x01, 0x01, 0x08, 0x01, 0x00, 0x02, 0x02, 0x00})
	require.NoError(t, err)
	assert.Equal(t, &Capabilities{
		Elements:      3,
		Algorithms:    SupportsFIPSP256,
		PublicKeyType: PublicKeyOOBAvailable,
		StaticOOBType: StaticOOBAvailable,
		OutputOOBSize: 8,
		OutputActions: NewOutputActions(Blink),
		InputOOBSize:  2,
		InputActions:  NewInputActions(Twist),
	}, p)
}

func TestFailedEncodesTagAndReason(t *testing.T) {
	data, err := (&Failed{Reason: ErrorCannotAssignAddresses}).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x09, 0x08}, data)
}

func TestEveryErrorTypeRoundTrips(t *testing.T) {
	for e := ErrorProhibited; e <= ErrorCannotAssignAddresses; e++ {
		data, err := (&Failed{Reason: e}).Encode()
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, e, got.(*Failed).Reason)
		assert.NotContains(t, e.String(), "RFU")
	}
	assert.Equal(t, "RFU(0x09)", ErrorType(9).String())
}

func TestDecodedBlocksDoNotAlias(t *testing.T) {
	data := append([]byte{0x05}, seq(16, 0)...)
	pdu, err := Decode(data)
	require.NoError(t, err)

	data[1] = 0xEE
	assert.Equal(t, byte(0), pdu.(*Confirmation).Confirmation[0])
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Provisioning Public Key", TypePublicKey.String())
	assert.Equal(t, "Type(0x0A)", Type(0x0A).String())
}
