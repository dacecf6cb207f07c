package provisioning

import (
	"fmt"
	"strings"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/flags"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Provisioning data field sizes and limits.
const (
	NetworkKeySize       = 16
	ProvisioningDataSize = 25
	MaxKeyIndex          = 0x0FFF
)

var (
	keyIndexRange       = wire.Range{Min: 0, Max: MaxKeyIndex}
	unicastAddressRange = wire.Range{Min: 0x0001, Max: 0x7FFF}
)

// DataFlags are the provisioning data flags.
type DataFlags uint8

const (
	// KeyRefresh reports the network is in Key Refresh Phase 2.
	KeyRefresh DataFlags = 1 << 0

	// IVUpdate reports an IV Update is in progress.
	IVUpdate DataFlags = 1 << 1

	dataFlagsMask = KeyRefresh | IVUpdate
)

// Has reports whether f contains every bit of mask.
func (f DataFlags) Has(mask DataFlags) bool { return flags.Contains(f, mask) }

// String lists the set flags.
func (f DataFlags) String() string {
	var names []string
	if f.Has(KeyRefresh) {
		names = append(names, "KEY_REFRESH")
	}
	if f.Has(IVUpdate) {
		names = append(names, "IV_UPDATE")
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// ProvisioningData is the plaintext carried, once encrypted, by a Data PDU.
//
// Encryption with the session key is the caller's responsibility; the
// encoded form is exactly EncryptedDataSize bytes.
type ProvisioningData struct {
	NetworkKey     []byte    `json:"network_key"`
	KeyIndex       uint16    `json:"key_index"`
	Flags          DataFlags `json:"flags"`
	IVIndex        uint32    `json:"iv_index"`
	UnicastAddress uint16    `json:"unicast_address"`
}

// Encode validates and serializes the provisioning data.
func (d *ProvisioningData) Encode() ([]byte, error) {
	if len(d.NetworkKey) != NetworkKeySize {
		return nil, wire.FixedLengthMismatch("network key", NetworkKeySize, len(d.NetworkKey))
	}
	if !keyIndexRange.Contains(int64(d.KeyIndex)) {
		return nil, wire.OutOfBounds("key index", keyIndexRange, "")
	}
	if d.Flags&^dataFlagsMask != 0 {
		return nil, wire.InvalidEncodeValue("flags", fmt.Sprintf("RFU bits 0x%02X", uint8(d.Flags&^dataFlagsMask)), nil)
	}
	if !unicastAddressRange.Contains(int64(d.UnicastAddress)) {
		return nil, wire.OutOfBounds("unicast address", unicastAddressRange, "")
	}

	w := wire.NewWriter(ProvisioningDataSize)
	w.PutBytes(d.NetworkKey)
	w.PutUint16(d.KeyIndex)
	w.PutUint8(uint8(d.Flags))
	w.PutUint32(d.IVIndex)
	w.PutUint16(d.UnicastAddress)
	return w.Bytes(), nil
}

// DecodeProvisioningData parses decrypted provisioning data.
func DecodeProvisioningData(data []byte) (*ProvisioningData, error) {
	c := wire.NewCursor(data)
	key, err := c.ReadFixed(NetworkKeySize)
	if err != nil {
		return nil, err
	}
	keyIndex, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	f, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	ivIndex, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	addr, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	if err := c.ExpectEnd("provisioning data"); err != nil {
		return nil, err
	}

	if keyIndex > MaxKeyIndex {
		return nil, wire.InvalidValue("key index", "0x%04X exceeds 0x%04X", keyIndex, MaxKeyIndex)
	}
	if DataFlags(f)&^dataFlagsMask != 0 {
		return nil, wire.InvalidValue("flags", "RFU bits set in 0x%02X", f)
	}
	if !unicastAddressRange.Contains(int64(addr)) {
		return nil, wire.InvalidValue("unicast address", "0x%04X is not a unicast address", addr)
	}
	return &ProvisioningData{
		NetworkKey:     key,
		KeyIndex:       keyIndex,
		Flags:          DataFlags(f),
		IVIndex:        ivIndex,
		UnicastAddress: addr,
	}, nil
}
