package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Shell is the interactive decoder.
type Shell struct {
	env *Env
	rl  *readline.Instance
}

// NewShell creates a readline-backed shell.
func NewShell(env *Env) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bmp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("decode"),
			readline.PcItem("pdu"),
			readline.PcItem("segment"),
			readline.PcItem("list"),
			readline.PcItem("format",
				readline.PcItem("text"),
				readline.PcItem("json"),
				readline.PcItem("yaml"),
			),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	// Route command output through readline so it does not clobber the prompt.
	shellEnv := *env
	shellEnv.Stdout = rl.Stdout()
	shellEnv.Stderr = rl.Stderr()
	return &Shell{env: &shellEnv, rl: rl}, nil
}

// Run reads commands until quit or EOF.
func (s *Shell) Run() {
	defer s.rl.Close()

	printShellHelp(s.env.Stdout)
	for {
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.env.Stdout, "Exiting...")
			return
		}
		if quit := execLine(s.env, line); quit {
			return
		}
	}
}

// RunShell starts the interactive shell.
func RunShell(env *Env, _ []string) int {
	sh, err := NewShell(env)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	sh.Run()
	return ExitSuccess
}

// execLine executes one shell line and reports whether the shell should exit.
func execLine(env *Env, line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printShellHelp(env.Stdout)

	case "decode", "d":
		if len(args) < 2 {
			fmt.Fprintln(env.Stderr, "Usage: decode <uuid> <hex>")
			return false
		}
		decodeCharacteristic(env, env.Config.Format, args[0], strings.Join(args[1:], ""))

	case "pdu", "p":
		if len(args) < 1 {
			fmt.Fprintln(env.Stderr, "Usage: pdu <hex>")
			return false
		}
		decodePDU(env, env.Config.Format, strings.Join(args, ""))

	case "segment", "s":
		if len(args) < 1 {
			fmt.Fprintln(env.Stderr, "Usage: segment <hex> [mtu]")
			return false
		}
		mtu := env.Config.MTU
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				writeError(env.Stderr, fmt.Errorf("invalid mtu: %s", args[1]))
				return false
			}
			mtu = n
		}
		segmentPDU(env, mtu, args[0])

	case "list", "ls":
		if err := printCatalog(env.Stdout, "text", buildCatalog(env.Codec.Registry())); err != nil {
			writeError(env.Stderr, err)
		}

	case "format":
		if len(args) < 1 {
			fmt.Fprintf(env.Stdout, "Format: %s\n", env.Config.Format)
			return false
		}
		if err := validateFormat(args[0]); err != nil {
			writeError(env.Stderr, err)
			return false
		}
		env.Config.Format = args[0]

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `Commands:
  decode <uuid> <hex>     Decode a characteristic value
  pdu <hex>               Decode a provisioning PDU
  segment <hex> [mtu]     Split a provisioning PDU into Proxy PDUs
  list                    List characteristics and services
  format [text|json|yaml] Show or set the output format
  help                    Show this help
  quit                    Exit the shell`)
}
