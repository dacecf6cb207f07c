// Package wire provides the byte-level primitives shared by every Bluetooth
// message codec in this module.
//
// All multi-byte integers are little-endian, as required by the Bluetooth
// Core and GATT specifications. UInt24 fields are zero-extended into uint32
// and SInt24 fields are sign-extended into int32.
//
// # Cursor
//
// A Cursor reads primitives sequentially from a borrowed byte slice. Every
// read is bounds-checked: a read that needs more bytes than remain fails with
// a *DecodeError of kind DecodeTruncated and leaves the offset untouched.
//
//	c := wire.NewCursor(data)
//	flags, err := c.ReadUint16()
//	if err != nil {
//	    return nil, err
//	}
//
// # Writer
//
// A Writer appends primitives in the same order a decoder reads them.
// Fixed-length blobs are validated before anything is appended.
//
// # Errors
//
// Decode and encode failures are returned as *DecodeError and *EncodeError.
// Each carries a Kind from a closed set and matches the corresponding
// sentinel through errors.Is:
//
//	if errors.Is(err, wire.ErrTruncated) {
//	    // drop the notification
//	}
package wire
