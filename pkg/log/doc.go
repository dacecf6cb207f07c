// Package log provides structured protocol capture for the codec.
//
// This package defines the Logger interface and Event types for recording
// the bytes and values that cross the codec boundary at each layer (GATT
// characteristic values, Mesh Provisioning PDUs, proxy segmentation). It is
// separate from operational logging (slog): protocol capture is a
// machine-readable trace for debugging and replay.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For capture: write to a binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("session.bmplog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # Event Types
//
// Each event carries exactly one payload:
//   - Frame: raw bytes as received or produced (FrameEvent)
//   - Message: the decoded value (MessageEvent)
//   - Error: a decode or encode failure (ErrorEventData)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events using integer keys. The
// bmp CLI's "log" subcommand views and summarizes them.
package log
