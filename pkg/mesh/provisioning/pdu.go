package provisioning

import (
	"fmt"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// PDU is a provisioning protocol data unit.
type PDU interface {
	Type() Type
	Name() string
	Encode() ([]byte, error)
}

// Compile-time interface checks.
var (
	_ PDU = (*Invite)(nil)
	_ PDU = (*Capabilities)(nil)
	_ PDU = (*Start)(nil)
	_ PDU = (*PublicKey)(nil)
	_ PDU = (*InputComplete)(nil)
	_ PDU = (*Confirmation)(nil)
	_ PDU = (*Random)(nil)
	_ PDU = (*Data)(nil)
	_ PDU = (*Complete)(nil)
	_ PDU = (*Failed)(nil)
)

// Decode decodes a provisioning PDU, dispatching on the type tag in byte 0.
//
// Each PDU has an exact length: a short buffer fails with wire.ErrTruncated
// and trailing bytes fail with wire.ErrInvalidValue. An unknown tag fails
// with wire.ErrInvalidTag.
func Decode(data []byte) (PDU, error) {
	c := wire.NewCursor(data)
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}

	var pdu PDU
	switch Type(tag) {
	case TypeInvite:
		pdu, err = decodeInvite(c)
	case TypeCapabilities:
		pdu, err = decodeCapabilities(c)
	case TypeStart:
		pdu, err = decodeStart(c)
	case TypePublicKey:
		pdu, err = decodePublicKey(c)
	case TypeInputComplete:
		pdu, err = &InputComplete{}, nil
	case TypeConfirmation:
		pdu, err = decodeConfirmation(c)
	case TypeRandom:
		pdu, err = decodeRandom(c)
	case TypeData:
		pdu, err = decodeData(c)
	case TypeComplete:
		pdu, err = &Complete{}, nil
	case TypeFailed:
		pdu, err = decodeFailed(c)
	default:
		return nil, wire.InvalidTag(fmt.Sprintf("provisioning PDU type 0x%02X", tag))
	}
	if err != nil {
		return nil, err
	}
	if err := c.ExpectEnd(Type(tag).String()); err != nil {
		return nil, err
	}
	return pdu, nil
}

func newWriter(t Type, size int) *wire.Writer {
	w := wire.NewWriter(1 + size)
	w.PutUint8(uint8(t))
	return w
}

// Invite is sent by a Provisioner to start provisioning a device.
type Invite struct {
	// AttentionDuration is the attention timer in seconds; 0 means off.
	AttentionDuration uint8 `json:"attention_duration"`
}

// Type returns TypeInvite.
func (p *Invite) Type() Type { return TypeInvite }

// Name returns the PDU name.
func (p *Invite) Name() string { return TypeInvite.String() }

// Encode serializes the PDU, type tag first.
func (p *Invite) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	w := newWriter(TypeInvite, 1)
	w.PutUint8(p.AttentionDuration)
	return w.Bytes(), nil
}

func decodeInvite(c *wire.Cursor) (*Invite, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	return &Invite{AttentionDuration: v}, nil
}

// Capabilities is sent by a device to advertise its provisioning capabilities.
type Capabilities struct {
	Elements      uint8          `json:"elements"`
	Algorithms    Algorithms     `json:"algorithms"`
	PublicKeyType PublicKeyTypes `json:"public_key_type"`
	StaticOOBType StaticOOBTypes `json:"static_oob_type"`
	OutputOOBSize uint8          `json:"output_oob_size"`
	OutputActions OutputActions  `json:"output_actions"`
	InputOOBSize  uint8          `json:"input_oob_size"`
	InputActions  InputActions   `json:"input_actions"`
}

const capabilitiesSize = 11

var (
	elementsRange   = wire.Range{Min: 1, Max: 255}
	maxOOBSizeRange = wire.Range{Min: 0, Max: MaxOOBSize}
)

// Type returns TypeCapabilities.
func (p *Capabilities) Type() Type { return TypeCapabilities }

// Name returns the PDU name.
func (p *Capabilities) Name() string { return TypeCapabilities.String() }

// Encode serializes the PDU, type tag first.
func (p *Capabilities) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	if !elementsRange.Contains(int64(p.Elements)) {
		return nil, wire.OutOfBounds("elements", elementsRange, "")
	}
	if !maxOOBSizeRange.Contains(int64(p.OutputOOBSize)) {
		return nil, wire.OutOfBounds("output OOB size", maxOOBSizeRange, "")
	}
	if !maxOOBSizeRange.Contains(int64(p.InputOOBSize)) {
		return nil, wire.OutOfBounds("input OOB size", maxOOBSizeRange, "")
	}

	w := newWriter(TypeCapabilities, capabilitiesSize)
	w.PutUint8(p.Elements)
	w.PutUint16(uint16(p.Algorithms))
	w.PutUint8(uint8(p.PublicKeyType))
	w.PutUint8(uint8(p.StaticOOBType))
	w.PutUint8(p.OutputOOBSize)
	w.PutUint16(uint16(p.OutputActions))
	w.PutUint8(p.InputOOBSize)
	w.PutUint16(uint16(p.InputActions))
	return w.Bytes(), nil
}

func decodeCapabilities(c *wire.Cursor) (*Capabilities, error) {
	if c.Remaining() < capabilitiesSize {
		return nil, wire.Truncated("capabilities", c.Offset(), capabilitiesSize, c.Remaining())
	}

	var (
		p                         Capabilities
		algorithms, output, input uint16
		publicKey, staticOOB      uint8
		err                       error
	)
	read8 := func(dst *uint8) {
		if err == nil {
			*dst, err = c.ReadUint8()
		}
	}
	read16 := func(dst *uint16) {
		if err == nil {
			*dst, err = c.ReadUint16()
		}
	}
	read8(&p.Elements)
	read16(&algorithms)
	read8(&publicKey)
	read8(&staticOOB)
	read8(&p.OutputOOBSize)
	read16(&output)
	read8(&p.InputOOBSize)
	read16(&input)
	if err != nil {
		return nil, err
	}

	p.Algorithms = Algorithms(algorithms)
	p.PublicKeyType = PublicKeyTypes(publicKey)
	p.StaticOOBType = StaticOOBTypes(staticOOB)
	p.OutputActions = OutputActions(output)
	p.InputActions = InputActions(input)

	if p.Elements == 0 {
		return nil, wire.InvalidValue("elements", "prohibited value 0")
	}
	if p.OutputOOBSize > MaxOOBSize {
		return nil, wire.InvalidValue("output OOB size", "RFU value %d", p.OutputOOBSize)
	}
	if p.InputOOBSize > MaxOOBSize {
		return nil, wire.InvalidValue("input OOB size", "RFU value %d", p.InputOOBSize)
	}
	return &p, nil
}

// Start is sent by a Provisioner to select the algorithm and authentication.
type Start struct {
	Algorithm      Algorithm       `json:"algorithm"`
	PublicKey      PublicKeyMethod `json:"public_key"`
	Authentication Authentication  `json:"authentication"`
}

// Type returns TypeStart.
func (p *Start) Type() Type { return TypeStart }

// Name returns the PDU name.
func (p *Start) Name() string { return TypeStart.String() }

// Encode serializes the PDU, type tag first.
func (p *Start) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	if p.Algorithm != FIPSP256 {
		return nil, wire.InvalidEncodeValue("algorithm", p.Algorithm.String(), nil)
	}
	if p.PublicKey > OOBPublicKey {
		return nil, wire.InvalidEncodeValue("public key", p.PublicKey.String(), nil)
	}
	if err := p.Authentication.validateForEncode(); err != nil {
		return nil, err
	}

	w := newWriter(TypeStart, 5)
	w.PutUint8(uint8(p.Algorithm))
	w.PutUint8(uint8(p.PublicKey))
	w.PutUint8(uint8(p.Authentication.Method))
	w.PutUint8(p.Authentication.Action)
	w.PutUint8(p.Authentication.Size)
	return w.Bytes(), nil
}

func decodeStart(c *wire.Cursor) (*Start, error) {
	b, err := c.ReadFixed(5)
	if err != nil {
		return nil, err
	}
	p := &Start{
		Algorithm: Algorithm(b[0]),
		PublicKey: PublicKeyMethod(b[1]),
		Authentication: Authentication{
			Method: AuthMethod(b[2]),
			Action: b[3],
			Size:   b[4],
		},
	}
	if p.Algorithm != FIPSP256 {
		return nil, wire.InvalidValue("algorithm", "RFU value %d", b[0])
	}
	if p.PublicKey > OOBPublicKey {
		return nil, wire.InvalidValue("public key", "prohibited value %d", b[1])
	}
	if err := p.Authentication.validateForDecode(); err != nil {
		return nil, err
	}
	return p, nil
}

// PublicKey carries the X and Y coordinates of a P-256 public key.
type PublicKey struct {
	X []byte `json:"x"`
	Y []byte `json:"y"`
}

// Type returns TypePublicKey.
func (p *PublicKey) Type() Type { return TypePublicKey }

// Name returns the PDU name.
func (p *PublicKey) Name() string { return TypePublicKey.String() }

// Encode serializes the PDU, type tag first.
func (p *PublicKey) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	if len(p.X) != PublicKeyCoordinateSize {
		return nil, wire.FixedLengthMismatch("public key X", PublicKeyCoordinateSize, len(p.X))
	}
	if len(p.Y) != PublicKeyCoordinateSize {
		return nil, wire.FixedLengthMismatch("public key Y", PublicKeyCoordinateSize, len(p.Y))
	}
	w := newWriter(TypePublicKey, 2*PublicKeyCoordinateSize)
	w.PutBytes(p.X)
	w.PutBytes(p.Y)
	return w.Bytes(), nil
}

func decodePublicKey(c *wire.Cursor) (*PublicKey, error) {
	x, err := c.ReadFixed(PublicKeyCoordinateSize)
	if err != nil {
		return nil, err
	}
	y, err := c.ReadFixed(PublicKeyCoordinateSize)
	if err != nil {
		return nil, err
	}
	return &PublicKey{X: x, Y: y}, nil
}

// InputComplete is sent by a device when the user completes input OOB entry.
type InputComplete struct{}

// Type returns TypeInputComplete.
func (p *InputComplete) Type() Type { return TypeInputComplete }

// Name returns the PDU name.
func (p *InputComplete) Name() string { return TypeInputComplete.String() }

// Encode serializes the PDU, type tag first.
func (p *InputComplete) Encode() ([]byte, error) {
	return []byte{uint8(TypeInputComplete)}, nil
}

// Confirmation carries a confirmation value.
type Confirmation struct {
	Confirmation []byte `json:"confirmation"`
}

// Type returns TypeConfirmation.
func (p *Confirmation) Type() Type { return TypeConfirmation }

// Name returns the PDU name.
func (p *Confirmation) Name() string { return TypeConfirmation.String() }

// Encode serializes the PDU, type tag first.
func (p *Confirmation) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	w := newWriter(TypeConfirmation, ConfirmationSize)
	if err := w.PutFixed("confirmation", p.Confirmation, ConfirmationSize); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decodeConfirmation(c *wire.Cursor) (*Confirmation, error) {
	b, err := c.ReadFixed(ConfirmationSize)
	if err != nil {
		return nil, err
	}
	return &Confirmation{Confirmation: b}, nil
}

// Random carries the random number used to compute a confirmation.
type Random struct {
	Random []byte `json:"random"`
}

// Type returns TypeRandom.
func (p *Random) Type() Type { return TypeRandom }

// Name returns the PDU name.
func (p *Random) Name() string { return TypeRandom.String() }

// Encode serializes the PDU, type tag first.
func (p *Random) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	w := newWriter(TypeRandom, RandomSize)
	if err := w.PutFixed("random", p.Random, RandomSize); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decodeRandom(c *wire.Cursor) (*Random, error) {
	b, err := c.ReadFixed(RandomSize)
	if err != nil {
		return nil, err
	}
	return &Random{Random: b}, nil
}

// Data carries the encrypted provisioning data and its MIC.
type Data struct {
	EncryptedData []byte `json:"encrypted_data"`
	MIC           []byte `json:"mic"`
}

// Type returns TypeData.
func (p *Data) Type() Type { return TypeData }

// Name returns the PDU name.
func (p *Data) Name() string { return TypeData.String() }

// Encode serializes the PDU, type tag first.
func (p *Data) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	if len(p.EncryptedData) != EncryptedDataSize {
		return nil, wire.FixedLengthMismatch("encrypted provisioning data", EncryptedDataSize, len(p.EncryptedData))
	}
	if len(p.MIC) != MICSize {
		return nil, wire.FixedLengthMismatch("provisioning data MIC", MICSize, len(p.MIC))
	}
	w := newWriter(TypeData, EncryptedDataSize+MICSize)
	w.PutBytes(p.EncryptedData)
	w.PutBytes(p.MIC)
	return w.Bytes(), nil
}

func decodeData(c *wire.Cursor) (*Data, error) {
	data, err := c.ReadFixed(EncryptedDataSize)
	if err != nil {
		return nil, err
	}
	mic, err := c.ReadFixed(MICSize)
	if err != nil {
		return nil, err
	}
	return &Data{EncryptedData: data, MIC: mic}, nil
}

// Complete is sent by a device when provisioning succeeded.
type Complete struct{}

// Type returns TypeComplete.
func (p *Complete) Type() Type { return TypeComplete }

// Name returns the PDU name.
func (p *Complete) Name() string { return TypeComplete.String() }

// Encode serializes the PDU, type tag first.
func (p *Complete) Encode() ([]byte, error) {
	return []byte{uint8(TypeComplete)}, nil
}

// Failed is sent by a device when provisioning failed.
type Failed struct {
	Reason ErrorType `json:"reason"`
}

// Type returns TypeFailed.
func (p *Failed) Type() Type { return TypeFailed }

// Name returns the PDU name.
func (p *Failed) Name() string { return TypeFailed.String() }

// Encode serializes the PDU, type tag first.
func (p *Failed) Encode() ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue(p.Name(), "nil value", nil)
	}
	if !p.Reason.Valid() {
		return nil, wire.InvalidEncodeValue("error type", p.Reason.String(), nil)
	}
	return []byte{uint8(TypeFailed), uint8(p.Reason)}, nil
}

func decodeFailed(c *wire.Cursor) (*Failed, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	reason := ErrorType(v)
	if !reason.Valid() {
		return nil, wire.InvalidValue("error type", "RFU value %d", v)
	}
	return &Failed{Reason: reason}, nil
}
