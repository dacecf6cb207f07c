package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Cursor reads little-endian primitives from a borrowed byte slice.
//
// A Cursor is not safe for concurrent use. It never modifies the underlying
// slice; blobs returned by ReadFixed and ReadRest are copies.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

// take returns the next n bytes and advances, or a truncation error without advancing.
func (c *Cursor) take(field string, n int) ([]byte, error) {
	if n > c.Remaining() {
		return nil, Truncated(field, c.off, n, c.Remaining())
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// ReadUint8 reads one unsigned byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.take("uint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads one two's-complement byte.
func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.take("int8", 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take("uint16", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	b, err := c.take("int16", 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadUint24 reads three little-endian bytes, zero-extended into a uint32.
func (c *Cursor) ReadUint24() (uint32, error) {
	b, err := c.take("uint24", 3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// ReadInt24 reads three little-endian bytes, sign-extended into an int32.
func (c *Cursor) ReadInt24() (int32, error) {
	b, err := c.take("int24", 3)
	if err != nil {
		return 0, err
	}
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return int32(v<<8) >> 8, nil
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take("uint32", 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	b, err := c.take("int32", 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadFixed reads exactly n bytes and returns a copy.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	if n < 0 {
		return nil, InvalidValue("blob", "negative length %d", n)
	}
	b, err := c.take("blob", n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadRest consumes and returns a copy of every remaining byte.
// The result is empty, never nil, when nothing remains.
func (c *Cursor) ReadRest() []byte {
	out := make([]byte, c.Remaining())
	copy(out, c.data[c.off:])
	c.off = len(c.data)
	return out
}

// ReadString consumes the remaining bytes as a UTF-8 string.
// On invalid UTF-8 the offset is left unchanged.
func (c *Cursor) ReadString() (string, error) {
	rest := c.data[c.off:]
	if !utf8.Valid(rest) {
		return "", &DecodeError{Kind: DecodeInvalidString, Field: "string", Offset: c.off}
	}
	c.off = len(c.data)
	return string(rest), nil
}

// ExpectEnd returns an invalid-value error if unread bytes remain.
// Exact-length layouts call it after their last field.
func (c *Cursor) ExpectEnd(field string) error {
	if c.Remaining() != 0 {
		return &DecodeError{
			Kind:   DecodeInvalidValue,
			Field:  field,
			Offset: c.off,
			Detail: "unexpected trailing bytes",
		}
	}
	return nil
}
