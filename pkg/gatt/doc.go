// Package gatt defines the contract shared by every GATT characteristic codec.
//
// A characteristic type implements Characteristic and is described by a
// Definition that binds its UUID to a decoder. Definitions are collected into
// a Registry, which dispatches raw notification bytes to the right decoder:
//
//	reg, err := gatt.NewRegistry(defs...)
//	if err != nil {
//	    return err
//	}
//	c, err := reg.Decode(gatt.UUID16(0x2A80), []byte{0x2D})
//
// UUIDs are 128-bit values; 16-bit and 32-bit assigned numbers expand onto the
// Bluetooth Base UUID. The package also carries an embedded catalog of GATT
// service identities.
package gatt
