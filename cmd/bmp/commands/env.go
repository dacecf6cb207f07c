package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/codec"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
)

// Env carries what every command needs: configuration, output streams and
// a codec wired to the configured loggers.
type Env struct {
	Config Config
	Logger *slog.Logger
	Codec  *codec.Codec
	Stdout io.Writer
	Stderr io.Writer

	fileLogger *log.FileLogger
}

// NewEnv builds the command environment from a validated config.
// Operational logs go to stderr.
func NewEnv(cfg Config, stdout, stderr io.Writer) (*Env, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	env := &Env{
		Config: cfg,
		Logger: logger,
		Stdout: stdout,
		Stderr: stderr,
	}

	var protocolLogger log.Logger
	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open protocol log: %w", err)
		}
		env.fileLogger = fl
		protocolLogger = fl
		logger.Debug("protocol capture enabled", "path", cfg.ProtocolLog)
	}
	if level <= slog.LevelDebug {
		protocolLogger = log.NewMultiLogger(protocolLogger, log.NewSlogAdapter(logger))
	}

	env.Codec = codec.New(codec.Config{
		Logger:         logger,
		ProtocolLogger: protocolLogger,
		PeerID:         cfg.PeerID,
		MTU:            cfg.MTU,
	})
	return env, nil
}

// Close flushes and closes the protocol log, if any.
func (e *Env) Close() error {
	if e.fileLogger == nil {
		return nil
	}
	return errors.Join(e.fileLogger.Err(), e.fileLogger.Close())
}
