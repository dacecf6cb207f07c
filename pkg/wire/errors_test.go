package wire

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorIs(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{Truncated("flags", 0, 2, 1), ErrTruncated},
		{InvalidString("email"), ErrInvalidString},
		{InvalidTag("0x0A"), ErrInvalidTag},
		{InvalidValue("reason", "RFU value %d", 9), ErrInvalidValue},
	}

	sentinels := []error{ErrTruncated, ErrInvalidString, ErrInvalidTag, ErrInvalidValue}
	for _, tt := range tests {
		t.Run(tt.want.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("decode: %w", tt.err)
			for _, s := range sentinels {
				assert.Equal(t, s == tt.want, errors.Is(wrapped, s), "sentinel %v", s)
			}
		})
	}
}

func TestEncodeErrorIs(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{Unsupported("Rower Data"), ErrUnsupported},
		{OutOfBounds("interval", Range{1, 65535}, "seconds"), ErrOutOfBounds},
		{FixedLengthMismatch("public key x", 32, 31), ErrFixedLength},
		{InvalidEncodeValue("speed", "incompatible unit", errors.New("boom")), ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.want.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestEncodeErrorUnwrap(t *testing.T) {
	cause := errors.New("units differ")
	err := InvalidEncodeValue("speed", "incompatible unit", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"wire: value out of bounds: interval must be between 1...65535 seconds",
		OutOfBounds("interval", Range{Min: 1, Max: 65535}, "seconds").Error())
	assert.Equal(t,
		"wire: fixed length mismatch: x must be 32 bytes, got 31",
		FixedLengthMismatch("x", 32, 31).Error())
	assert.Equal(t, "wire: invalid tag: 0x0A", InvalidTag("0x0A").Error())
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 1, Max: 65535}
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(65535))
	assert.False(t, r.Contains(0))
	assert.False(t, r.Contains(70000))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "TRUNCATED", DecodeTruncated.String())
	assert.Equal(t, "INVALID_TAG", DecodeInvalidTag.String())
	assert.Equal(t, "FIXED_LENGTH_MISMATCH", EncodeFixedLengthMismatch.String())
	assert.Equal(t, "UNKNOWN", DecodeErrorKind(99).String())
}
