// Command bmp decodes and encodes Bluetooth GATT characteristic values and
// Mesh Provisioning PDUs.
//
// Usage:
//
//	bmp [global flags] <command> [flags] [args]
//
// Global flags:
//
//	-config string        YAML configuration file
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Append protocol events to this CBOR log file
//
// Commands:
//
//	decode   Decode a characteristic value
//	pdu      Decode a provisioning PDU
//	segment  Split a provisioning PDU into Proxy PDUs
//	list     List registered characteristics and services
//	shell    Interactive decoder
//	log      View or summarize a protocol log file
//
// Examples:
//
//	# Decode an Age value
//	bmp decode 2A80 2D
//
//	# Decode a Provisioning Invite as JSON, capturing protocol events
//	bmp -protocol-log session.bmplog pdu -format json 0005
//
//	# Summarize a capture
//	bmp log stats session.bmplog
//
// The BMP_LOG_LEVEL environment variable overrides the configured log level;
// an explicit -log-level flag overrides both.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bluetooth-message-protocol/bmp-go/cmd/bmp/commands"
)

const usage = `bmp - Bluetooth GATT and Mesh Provisioning codec

Usage:
  bmp [global flags] <command> [flags] [args]

Commands:
  decode   Decode a characteristic value
  pdu      Decode a provisioning PDU
  segment  Split a provisioning PDU into Proxy PDUs
  list     List registered characteristics and services
  shell    Interactive decoder
  log      View or summarize a protocol log file

Global flags:
  -config        YAML configuration file
  -log-level     Log level: debug, info, warn, error
  -protocol-log  Append protocol events to this CBOR log file

Use "bmp <command> -help" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	configFile := fs.String("config", "", "YAML configuration file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	protocolLog := fs.String("protocol-log", "", "Append protocol events to this CBOR log file")

	if err := fs.Parse(args); err != nil {
		return commands.ExitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprint(stderr, usage)
		return commands.ExitCommandError
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]

	switch cmd {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return commands.ExitSuccess
	}

	cfg := commands.DefaultConfig()
	if *configFile != "" {
		if err := commands.LoadConfig(*configFile, &cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return commands.ExitCommandError
		}
	}
	commands.ApplyEnv(&cfg, os.LookupEnv)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *protocolLog != "" {
		cfg.ProtocolLog = *protocolLog
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return commands.ExitCommandError
	}

	env, err := commands.NewEnv(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return commands.ExitCommandError
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Fprintf(stderr, "Error: closing protocol log: %v\n", err)
		}
	}()

	switch cmd {
	case "decode":
		return commands.RunDecode(env, cmdArgs)
	case "pdu":
		return commands.RunPDU(env, cmdArgs)
	case "segment":
		return commands.RunSegment(env, cmdArgs)
	case "list":
		return commands.RunList(env, cmdArgs)
	case "shell":
		return commands.RunShell(env, cmdArgs)
	case "log":
		return commands.RunLog(env, cmdArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return commands.ExitCommandError
	}
}
