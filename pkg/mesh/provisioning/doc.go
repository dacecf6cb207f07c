// Package provisioning implements the Bluetooth Mesh Provisioning PDUs.
//
// Every PDU starts with a one-byte type tag followed by parameters of a
// fixed length. Decode peeks at the tag and returns the matching concrete
// type:
//
//	pdu, err := provisioning.Decode(data)
//	if err != nil {
//	    return err
//	}
//	switch p := pdu.(type) {
//	case *provisioning.Capabilities:
//	    // choose an authentication method
//	case *provisioning.Failed:
//	    return fmt.Errorf("provisioning failed: %s", p.Reason)
//	}
//
// Multi-byte parameters are little-endian. Key material, confirmation values
// and the encrypted provisioning data are carried as opaque blocks; this
// package performs no cryptography. Blocks are length-checked before any
// byte is written.
package provisioning
