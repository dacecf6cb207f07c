// Package characteristic implements codecs for a selection of GATT
// characteristics.
//
// Each type decodes from the exact bytes delivered by a read or notification
// and, where the characteristic is writable, encodes back to the same bytes.
// Values carrying a physical quantity are stored as units.Measurement and are
// converted to the field's wire unit on encode. Notify-only fitness machine
// types return an error matching wire.ErrUnsupported from Encode.
//
// Registry returns an immutable gatt.Registry containing every type in this
// package.
package characteristic
