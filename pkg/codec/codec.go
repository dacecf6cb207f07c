// Package codec ties the characteristic registry, the provisioning PDU codec
// and proxy segmentation together behind one value that reports every
// conversion to an operational logger and a protocol logger.
package codec

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/characteristic"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/provisioning"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/proxy"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Config configures a Codec. The zero value is usable.
type Config struct {
	// Registry resolves characteristic UUIDs. Defaults to the built-in
	// characteristic registry.
	Registry *gatt.Registry

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives frame, message and error events.
	// If nil, protocol capture is disabled.
	ProtocolLogger log.Logger

	// PeerID labels protocol events with the remote device.
	PeerID string

	// MTU is the ATT MTU used for proxy segmentation. Defaults to proxy.DefaultMTU.
	MTU int
}

// Codec decodes and encodes characteristic values and provisioning PDUs.
// It holds only immutable configuration and is safe for concurrent use.
type Codec struct {
	registry       *gatt.Registry
	logger         *slog.Logger
	protocolLogger log.Logger
	peerID         string
	mtu            int
}

// New creates a Codec from cfg.
func New(cfg Config) *Codec {
	c := &Codec{
		registry:       cfg.Registry,
		logger:         cfg.Logger,
		protocolLogger: cfg.ProtocolLogger,
		peerID:         cfg.PeerID,
		mtu:            cfg.MTU,
	}
	if c.registry == nil {
		c.registry = characteristic.Registry()
	}
	if c.mtu == 0 {
		c.mtu = proxy.DefaultMTU
	}
	return c
}

// Registry returns the characteristic registry in use.
func (c *Codec) Registry() *gatt.Registry { return c.registry }

// DecodeCharacteristic decodes a value read or notified from characteristic u.
func (c *Codec) DecodeCharacteristic(u gatt.UUID, data []byte) (gatt.Characteristic, error) {
	c.logFrame(log.DirectionIn, log.LayerGATT, data)

	v, err := c.registry.Decode(u, data)
	if err != nil {
		c.logError(log.DirectionIn, log.LayerGATT, err, "decode "+u.String())
		return nil, err
	}

	c.logMessage(log.DirectionIn, log.LayerGATT, &log.MessageEvent{
		Kind:       log.MessageKindCharacteristic,
		Identifier: u.String(),
		Name:       v.Name(),
		Payload:    v,
	})
	c.debugLog("decoded characteristic", "uuid", u.String(), "name", v.Name(), "size", len(data))
	return v, nil
}

// EncodeCharacteristic encodes v for writing to its characteristic.
func (c *Codec) EncodeCharacteristic(v gatt.Characteristic) ([]byte, error) {
	if v == nil {
		return nil, wire.InvalidEncodeValue("characteristic", "nil value", nil)
	}
	id := v.UUID().String()

	data, err := v.Encode()
	if err != nil {
		c.logError(log.DirectionOut, log.LayerGATT, err, "encode "+id)
		return nil, err
	}

	c.logMessage(log.DirectionOut, log.LayerGATT, &log.MessageEvent{
		Kind:       log.MessageKindCharacteristic,
		Identifier: id,
		Name:       v.Name(),
		Payload:    v,
	})
	c.logFrame(log.DirectionOut, log.LayerGATT, data)
	c.debugLog("encoded characteristic", "uuid", id, "name", v.Name(), "size", len(data))
	return data, nil
}

// DecodePDU decodes a provisioning PDU.
func (c *Codec) DecodePDU(data []byte) (provisioning.PDU, error) {
	c.logFrame(log.DirectionIn, log.LayerProvisioning, data)

	pdu, err := provisioning.Decode(data)
	if err != nil {
		c.logError(log.DirectionIn, log.LayerProvisioning, err, "decode PDU")
		return nil, err
	}

	c.logMessage(log.DirectionIn, log.LayerProvisioning, pduMessage(pdu))
	c.debugLog("decoded PDU", "type", pdu.Name(), "size", len(data))
	return pdu, nil
}

// EncodePDU encodes a provisioning PDU.
func (c *Codec) EncodePDU(p provisioning.PDU) ([]byte, error) {
	if p == nil {
		return nil, wire.InvalidEncodeValue("PDU", "nil value", nil)
	}

	data, err := p.Encode()
	if err != nil {
		c.logError(log.DirectionOut, log.LayerProvisioning, err, "encode "+p.Name())
		return nil, err
	}

	c.logMessage(log.DirectionOut, log.LayerProvisioning, pduMessage(p))
	c.logFrame(log.DirectionOut, log.LayerProvisioning, data)
	c.debugLog("encoded PDU", "type", p.Name(), "size", len(data))
	return data, nil
}

// SegmentPDU encodes p and splits it into Proxy PDUs at the configured MTU.
func (c *Codec) SegmentPDU(p provisioning.PDU) ([][]byte, error) {
	return c.SegmentPDUWithMTU(p, c.mtu)
}

// SegmentPDUWithMTU encodes p and splits it into Proxy PDUs for the given
// ATT MTU. An invalid MTU fails before anything is encoded.
func (c *Codec) SegmentPDUWithMTU(p provisioning.PDU, mtu int) ([][]byte, error) {
	s, err := proxy.NewSegmenter(mtu)
	if err != nil {
		return nil, err
	}
	if c.protocolLogger != nil {
		s.SetLogger(c.protocolLogger, c.peerID)
	}

	data, err := c.EncodePDU(p)
	if err != nil {
		return nil, err
	}

	frames, err := s.Segment(proxy.ProvisioningPDU, data)
	if err != nil {
		c.logError(log.DirectionOut, log.LayerProxy, err, "segment "+p.Name())
		return nil, err
	}
	c.debugLog("segmented PDU", "type", p.Name(), "frames", len(frames), "mtu", mtu)
	return frames, nil
}

// NewReassembler returns a proxy reassembler wired to the protocol logger.
func (c *Codec) NewReassembler() *proxy.Reassembler {
	r := proxy.NewReassembler()
	if c.protocolLogger != nil {
		r.SetLogger(c.protocolLogger, c.peerID)
	}
	return r
}

// ReassemblePDU pushes one Proxy PDU into r and, once a provisioning message
// is complete, decodes it. It returns a nil PDU while segments are pending.
func (c *Codec) ReassemblePDU(r *proxy.Reassembler, frame []byte) (provisioning.PDU, error) {
	msg, done, err := r.Push(frame)
	if err != nil || !done {
		return nil, err
	}
	if msg.Type != proxy.ProvisioningPDU {
		err := fmt.Errorf("%w: %s", proxy.ErrMessageTypeMismatch, msg.Type)
		c.logError(log.DirectionIn, log.LayerProxy, err, "reassemble")
		return nil, err
	}
	return c.DecodePDU(msg.Payload)
}

func pduMessage(p provisioning.PDU) *log.MessageEvent {
	return &log.MessageEvent{
		Kind:       log.MessageKindProvisioningPDU,
		Identifier: fmt.Sprintf("0x%02X", uint8(p.Type())),
		Name:       p.Name(),
		Payload:    p,
	}
}

// debugLog logs a debug message if logging is enabled.
func (c *Codec) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Codec) logFrame(dir log.Direction, layer log.Layer, data []byte) {
	if c.protocolLogger == nil {
		return
	}
	c.protocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		PeerID:    c.peerID,
		Direction: dir,
		Layer:     layer,
		Category:  log.CategoryMessage,
		Frame:     log.NewFrameEvent(data),
	})
}

func (c *Codec) logMessage(dir log.Direction, layer log.Layer, msg *log.MessageEvent) {
	if c.protocolLogger == nil {
		return
	}
	c.protocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		PeerID:    c.peerID,
		Direction: dir,
		Layer:     layer,
		Category:  log.CategoryMessage,
		Message:   msg,
	})
}

func (c *Codec) logError(dir log.Direction, layer log.Layer, err error, context string) {
	c.debugLog("codec error", "layer", layer.String(), "context", context, "error", err)
	if c.protocolLogger == nil {
		return
	}
	c.protocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		PeerID:    c.peerID,
		Direction: dir,
		Layer:     layer,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Kind:    ErrorKind(err),
			Context: context,
		},
	})
}

// ErrorKind returns the classification of a wire error, such as TRUNCATED
// or OUT_OF_BOUNDS, or "" for other errors.
func ErrorKind(err error) string {
	var de *wire.DecodeError
	if errors.As(err, &de) {
		return de.Kind.String()
	}
	var ee *wire.EncodeError
	if errors.As(err, &ee) {
		return ee.Kind.String()
	}
	return ""
}
