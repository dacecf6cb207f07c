// Package proxy implements Proxy PDU segmentation and reassembly (SAR) as
// used by the PB-GATT provisioning bearer and the Mesh Proxy service.
//
// Each Proxy PDU starts with a one-byte header: the two most significant
// bits carry the SAR state and the low six bits the message type. A message
// larger than the ATT MTU allows is split into a First segment, zero or more
// Continuation segments and a Last segment.
//
//	frames, err := proxy.Segment(proxy.ProvisioningPDU, pdu, 23)
//
//	r := proxy.NewReassembler()
//	for _, f := range frames {
//	    msg, done, err := r.Push(f)
//	    ...
//	}
//
// The package only manipulates bytes; bearer and connection handling belong
// to the caller.
package proxy
