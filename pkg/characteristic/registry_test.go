package characteristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

func TestRegistryIdentities(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		readOnly bool
		sample   []byte
	}{
		{"Age", "2A80", false, []byte{0x01}},
		{"Wind Chill", "2A79", false, []byte{0x01}},
		{"Measurement Interval", "2A21", false, []byte{0x01, 0x00}},
		{"Apparent Wind Speed", "2A72", false, []byte{0x01, 0x00}},
		{"Position 2D", "2AAF", false, make([]byte, 8)},
		{"Rainfall", "2A78", false, []byte{0x01, 0x00}},
		{"Email Address", "2A87", false, []byte("a@b.c")},
		{"Indoor Bike Data", "2AD2", true, []byte{0x01, 0x00}},
		{"Rower Data", "2AD1", true, []byte{0x01, 0x00}},
		{"AWE Workout Information", "4B486402-6E6F-7274-6870-6F6C65656E67", true, []byte{0x00}},
	}

	reg := Registry()
	assert.Equal(t, len(tests), reg.Len())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := gatt.MustParseUUID(tt.uuid)
			def, ok := reg.Lookup(u)
			require.True(t, ok)
			assert.Equal(t, tt.name, def.Name)
			assert.Equal(t, tt.readOnly, def.ReadOnly)

			c, err := def.Decode(tt.sample)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name())
			assert.Equal(t, u, c.UUID())

			_, err = c.Encode()
			if tt.readOnly {
				assert.ErrorIs(t, err, wire.ErrUnsupported)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryUnknownUUID(t *testing.T) {
	_, err := Registry().Decode(gatt.UUID16(0x2A00), []byte{0x00})
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
}

func TestRegistryConcurrentDecode(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c, err := Registry().Decode(gatt.UUID16(0x2A80), []byte{byte(j)})
				if err != nil || !c.Equal(&Age{Years: uint8(j)}) {
					t.Errorf("decode %d failed: %v", j, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
