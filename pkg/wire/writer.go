package wire

import "encoding/binary"

// MaxUint24 is the largest value representable in a UInt24 field.
const MaxUint24 = 1<<24 - 1

// Writer appends little-endian primitives to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// PutUint8 appends one byte.
func (w *Writer) PutUint8(v uint8) { w.buf = append(w.buf, v) }

// PutInt8 appends one two's-complement byte.
func (w *Writer) PutInt8(v int8) { w.buf = append(w.buf, byte(v)) }

// PutUint16 appends a little-endian uint16.
func (w *Writer) PutUint16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

// PutInt16 appends a little-endian int16.
func (w *Writer) PutInt16(v int16) { w.PutUint16(uint16(v)) }

// PutUint32 appends a little-endian uint32.
func (w *Writer) PutUint32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

// PutInt32 appends a little-endian int32.
func (w *Writer) PutInt32(v int32) { w.PutUint32(uint32(v)) }

// PutUint24 appends the low three bytes of v, little-endian.
// Values above MaxUint24 are rejected and nothing is written.
func (w *Writer) PutUint24(field string, v uint32) error {
	if v > MaxUint24 {
		return OutOfBounds(field, Range{Min: 0, Max: MaxUint24}, "")
	}
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16))
	return nil
}

// PutBytes appends b verbatim.
func (w *Writer) PutBytes(b []byte) { w.buf = append(w.buf, b...) }

// PutFixed appends b after checking it is exactly n bytes long.
func (w *Writer) PutFixed(field string, b []byte, n int) error {
	if len(b) != n {
		return FixedLengthMismatch(field, n, len(b))
	}
	w.buf = append(w.buf, b...)
	return nil
}

// PutString appends the UTF-8 bytes of s without a terminator.
func (w *Writer) PutString(s string) { w.buf = append(w.buf, s...) }
