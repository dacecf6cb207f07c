package log

// Logger receives protocol log events.
// A nil Logger disables capture wherever one is accepted.
type Logger interface {
	// Log records a protocol event. Implementations must be safe for
	// concurrent use and should not block.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
