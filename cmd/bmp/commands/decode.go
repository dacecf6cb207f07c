package commands

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/mesh/proxy"
)

// RunDecode decodes a characteristic value: decode [-format f] <uuid> <hex>.
func RunDecode(env *Env, args []string) int {
	fs, format := newFormatFlagSet("decode", env)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, `Usage: bmp decode [-format text|json|yaml] <uuid> <hex>

Examples:
  bmp decode 2A80 2D
  bmp decode -format json 0x2A21 7800`)
	}
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return ExitCommandError
	}
	if err := validateFormat(*format); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return decodeCharacteristic(env, *format, fs.Arg(0), strings.Join(fs.Args()[1:], ""))
}

func decodeCharacteristic(env *Env, format, uuidArg, hexArg string) int {
	u, err := gatt.ParseUUID(uuidArg)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	data, err := ParseHex(hexArg)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}

	v, err := env.Codec.DecodeCharacteristic(u, data)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitDecodeError
	}
	if err := printOutput(env.Stdout, format, Output{Name: v.Name(), ID: u.String(), Value: v}); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return ExitSuccess
}

// RunPDU decodes a provisioning PDU: pdu [-format f] <hex>.
func RunPDU(env *Env, args []string) int {
	fs, format := newFormatFlagSet("pdu", env)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, `Usage: bmp pdu [-format text|json|yaml] <hex>

Examples:
  bmp pdu 0005
  bmp pdu -format yaml 09 03`)
	}
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return ExitCommandError
	}
	if err := validateFormat(*format); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return decodePDU(env, *format, strings.Join(fs.Args(), ""))
}

func decodePDU(env *Env, format, hexArg string) int {
	data, err := ParseHex(hexArg)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}

	pdu, err := env.Codec.DecodePDU(data)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitDecodeError
	}
	out := Output{Name: pdu.Name(), ID: fmt.Sprintf("0x%02X", uint8(pdu.Type())), Value: pdu}
	if err := printOutput(env.Stdout, format, out); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return ExitSuccess
}

// RunSegment splits a provisioning PDU into Proxy PDUs: segment [-mtu n] <hex>.
func RunSegment(env *Env, args []string) int {
	fs := flag.NewFlagSet("segment", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	mtu := fs.Int("mtu", env.Config.MTU, "ATT MTU")
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, `Usage: bmp segment [-mtu n] <hex>

Decodes the provisioning PDU and prints one Proxy PDU per line.`)
	}
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return ExitCommandError
	}
	return segmentPDU(env, *mtu, strings.Join(fs.Args(), ""))
}

func segmentPDU(env *Env, mtu int, hexArg string) int {
	data, err := ParseHex(hexArg)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	pdu, err := env.Codec.DecodePDU(data)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitDecodeError
	}
	frames, err := env.Codec.SegmentPDUWithMTU(pdu, mtu)
	if err != nil {
		writeError(env.Stderr, err)
		if errors.Is(err, proxy.ErrInvalidMTU) {
			return ExitCommandError
		}
		return ExitDecodeError
	}
	for _, f := range frames {
		sar, _ := proxy.ParseHeader(f[0])
		fmt.Fprintf(env.Stdout, "%-12s %s\n", sar, hex.EncodeToString(f))
	}
	return ExitSuccess
}

func newFormatFlagSet(name string, env *Env) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	format := fs.String("format", env.Config.Format, "Output format (text, json, yaml)")
	return fs, format
}

// writeError prints err to w in the CLI's error style.
func writeError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
