package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bmplog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close test log: %v", err)
	}
	return path
}

func sampleLog(t *testing.T) string {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	return createTestLogFile(t, []log.Event{
		{
			Timestamp: ts, PeerID: "peer-1", Direction: log.DirectionIn,
			Layer: log.LayerGATT, Category: log.CategoryMessage,
			Frame: log.NewFrameEvent([]byte{0x2D}),
		},
		{
			Timestamp: ts.Add(time.Millisecond), PeerID: "peer-1", Direction: log.DirectionIn,
			Layer: log.LayerGATT, Category: log.CategoryMessage,
			Message: &log.MessageEvent{
				Kind: log.MessageKindCharacteristic, Identifier: "2A80", Name: "Age",
				Payload: map[string]any{"years": 45},
			},
		},
		{
			Timestamp: ts.Add(2 * time.Millisecond), PeerID: "peer-2", Direction: log.DirectionOut,
			Layer: log.LayerProvisioning, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Kind: log.MessageKindProvisioningPDU, Identifier: "0x00", Name: "Provisioning Invite"},
		},
		{
			Timestamp: ts.Add(3 * time.Millisecond), PeerID: "peer-2", Direction: log.DirectionIn,
			Layer: log.LayerProxy, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerProxy, Message: "proxy: unexpected segment", Kind: "UNEXPECTED_SEGMENT", Context: "reassemble"},
		},
	})
}

func TestViewLogFormatsEvents(t *testing.T) {
	var buf bytes.Buffer
	if err := ViewLog(sampleLog(t), log.Filter{}, &buf); err != nil {
		t.Fatalf("ViewLog failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"2026-01-28T10:00:00.000000Z [peer:peer-1] IN  GATT Frame",
		"  Data: 2d",
		"IN  GATT Age",
		`  Payload: {"years":45}`,
		"OUT PROVISIONING Provisioning Invite",
		"  Kind: UNEXPECTED_SEGMENT",
		"  Context: reassemble",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestViewLogFilters(t *testing.T) {
	path := sampleLog(t)

	tests := []struct {
		name      string
		layer     string
		direction string
		category  string
		peer      string
		events    int
	}{
		{"all", "", "", "", "", 4},
		{"gatt", "gatt", "", "", "", 2},
		{"out", "", "out", "", "", 1},
		{"errors", "", "", "error", "", 1},
		{"peer", "", "", "", "peer-2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := buildFilter(tt.layer, tt.direction, tt.category, tt.peer)
			if err != nil {
				t.Fatalf("buildFilter failed: %v", err)
			}
			var buf bytes.Buffer
			if err := ViewLog(path, filter, &buf); err != nil {
				t.Fatalf("ViewLog failed: %v", err)
			}
			if got := strings.Count(buf.String(), "[peer:"); got != tt.events {
				t.Errorf("got %d events, want %d", got, tt.events)
			}
		})
	}
}

func TestBuildFilterRejectsUnknown(t *testing.T) {
	if _, err := buildFilter("wire", "", "", ""); err == nil {
		t.Error("expected error for unknown layer")
	}
	if _, err := buildFilter("", "up", "", ""); err == nil {
		t.Error("expected error for unknown direction")
	}
	if _, err := buildFilter("", "", "state", ""); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCollectStats(t *testing.T) {
	stats, err := CollectStats(sampleLog(t))
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 4 {
		t.Errorf("TotalEvents = %d, want 4", stats.TotalEvents)
	}
	if stats.EventsByLayer[log.LayerGATT] != 2 {
		t.Errorf("GATT events = %d, want 2", stats.EventsByLayer[log.LayerGATT])
	}
	if stats.Messages["Age"] != 1 || stats.Messages["Provisioning Invite"] != 1 {
		t.Errorf("Messages = %v", stats.Messages)
	}
	if stats.Errors() != 1 || stats.ErrorsByKind["UNEXPECTED_SEGMENT"] != 1 {
		t.Errorf("errors = %d %v", stats.Errors(), stats.ErrorsByKind)
	}
	if p := stats.Peers["peer-2"]; p == nil || p.Events != 2 || p.Errors != 1 {
		t.Errorf("peer-2 stats = %+v", p)
	}
	if d := stats.TimeRange.End.Sub(stats.TimeRange.Start); d != 3*time.Millisecond {
		t.Errorf("time range = %s, want 3ms", d)
	}
}

func TestPrintStats(t *testing.T) {
	stats, err := CollectStats(sampleLog(t))
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	out := buf.String()
	for _, want := range []string{"Total Events: 4", "GATT:", "PROXY:", "Peers: 2", "[peer-1] 2 events, 0 errors", "UNEXPECTED_SEGMENT:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunLogDispatch(t *testing.T) {
	path := sampleLog(t)

	env, stdout, _ := newTestEnv(t, DefaultConfig())
	if code := RunLog(env, []string{"stats", path}); code != ExitSuccess {
		t.Fatalf("stats exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Total Events: 4") {
		t.Errorf("stats output: %s", stdout.String())
	}

	stdout.Reset()
	if code := RunLog(env, []string{"view", "-layer", "proxy", path}); code != ExitSuccess {
		t.Fatalf("view exit code = %d", code)
	}
	if strings.Count(stdout.String(), "[peer:") != 1 {
		t.Errorf("view output: %s", stdout.String())
	}

	if code := RunLog(env, []string{"export", path}); code != ExitCommandError {
		t.Errorf("unknown subcommand exit code = %d", code)
	}
	if code := RunLog(env, []string{"view", filepath.Join(t.TempDir(), "missing")}); code != ExitCommandError {
		t.Errorf("missing file exit code = %d", code)
	}
}
