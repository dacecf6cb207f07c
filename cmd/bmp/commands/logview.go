package commands

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
)

// RunLog dispatches the log subcommands: view and stats.
func RunLog(env *Env, args []string) int {
	if len(args) < 1 {
		printLogUsage(env.Stderr)
		return ExitCommandError
	}
	switch args[0] {
	case "view":
		return runLogView(env, args[1:])
	case "stats":
		return runLogStats(env, args[1:])
	default:
		fmt.Fprintf(env.Stderr, "Unknown log command: %s\n", args[0])
		printLogUsage(env.Stderr)
		return ExitCommandError
	}
}

func printLogUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: bmp log <command> [flags] <file>

Commands:
  view     View protocol log in human-readable format
  stats    Show statistics about the protocol log`)
}

func runLogView(env *Env, args []string) int {
	fs := flag.NewFlagSet("log view", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	layer := fs.String("layer", "", "Filter by layer (gatt, provisioning, proxy)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, error)")
	peer := fs.String("peer", "", "Filter by peer ID")
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(env.Stderr, "Error: log file path required")
		return ExitCommandError
	}

	filter, err := buildFilter(*layer, *direction, *category, *peer)
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	if err := ViewLog(fs.Arg(0), filter, env.Stdout); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return ExitSuccess
}

func runLogStats(env *Env, args []string) int {
	fs := flag.NewFlagSet("log stats", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(env.Stderr, "Error: log file path required")
		return ExitCommandError
	}

	stats, err := CollectStats(fs.Arg(0))
	if err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	printStats(env.Stdout, stats)
	return ExitSuccess
}

func buildFilter(layer, direction, category, peer string) (log.Filter, error) {
	filter := log.Filter{PeerID: peer}
	if layer != "" {
		l, ok := log.ParseLayer(layer)
		if !ok {
			return filter, fmt.Errorf("invalid layer: %s (must be gatt, provisioning, or proxy)", layer)
		}
		filter.Layer = &l
	}
	if direction != "" {
		d, ok := log.ParseDirection(direction)
		if !ok {
			return filter, fmt.Errorf("invalid direction: %s (must be in or out)", direction)
		}
		filter.Direction = &d
	}
	if category != "" {
		c, ok := log.ParseCategory(category)
		if !ok {
			return filter, fmt.Errorf("invalid category: %s (must be message or error)", category)
		}
		filter.Category = &c
	}
	return filter, nil
}

// ViewLog writes every event of the log at path that matches filter.
func ViewLog(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = "Frame"
	case event.Message != nil:
		typeLabel = event.Message.Name
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	peer := event.PeerID
	if peer == "" {
		peer = "-"
	}
	fmt.Fprintf(w, "%s [peer:%s] %-3s %s %s\n", ts, peer, event.Direction, event.Layer, typeLabel)

	switch {
	case event.Frame != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(event.Frame.Data))
			if event.Frame.Truncated {
				fmt.Fprint(w, " (truncated)")
			}
			fmt.Fprintln(w)
		}
	case event.Message != nil:
		fmt.Fprintf(w, "  Kind: %s\n", event.Message.Kind)
		fmt.Fprintf(w, "  ID: %s\n", event.Message.Identifier)
		if event.Message.Payload != nil {
			if data, err := json.Marshal(event.Message.Payload); err == nil {
				fmt.Fprintf(w, "  Payload: %s\n", data)
			}
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Layer: %s\n", event.Error.Layer)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Kind != "" {
			fmt.Fprintf(w, "  Kind: %s\n", event.Error.Kind)
		}
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}
	fmt.Fprintln(w)
}

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Messages          map[string]int
	ErrorsByKind      map[string]int
	Peers             map[string]*PeerStats
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// PeerStats holds statistics for a single peer.
type PeerStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Errors    int
}

// CollectStats reads the log at path and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Messages:          make(map[string]int),
		ErrorsByKind:      make(map[string]int),
		Peers:             make(map[string]*PeerStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	peer, ok := s.Peers[event.PeerID]
	if !ok {
		peer = &PeerStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Peers[event.PeerID] = peer
	}
	peer.Events++
	if event.Timestamp.After(peer.LastSeen) {
		peer.LastSeen = event.Timestamp
	}

	if event.Message != nil {
		s.Messages[event.Message.Name]++
	}
	if event.Error != nil {
		peer.Errors++
		kind := event.Error.Kind
		if kind == "" {
			kind = "OTHER"
		}
		s.ErrorsByKind[kind]++
	}
}

// Errors returns the total number of error events.
func (s *Stats) Errors() int {
	return s.EventsByCategory[log.CategoryError]
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerGATT, log.LayerProvisioning, log.LayerProxy} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.Messages) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Messages:")
		for _, name := range sortedKeys(stats.Messages) {
			fmt.Fprintf(w, "  %-30s %d\n", name+":", stats.Messages[name])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Peers: %d\n", len(stats.Peers))
	ids := make([]string, 0, len(stats.Peers))
	for id := range stats.Peers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Peers[ids[i]].FirstSeen.Before(stats.Peers[ids[j]].FirstSeen)
	})
	for _, id := range ids {
		p := stats.Peers[id]
		label := id
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "  [%s] %d events, %d errors, duration %s\n",
			label, p.Events, p.Errors, p.LastSeen.Sub(p.FirstSeen).Round(time.Millisecond))
	}

	if n := stats.Errors(); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", n)
		for _, kind := range sortedKeys(stats.ErrorsByKind) {
			fmt.Fprintf(w, "  %-22s %d\n", kind+":", stats.ErrorsByKind[kind])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
