package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logThroughAdapter(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterLogsFrameEvent(t *testing.T) {
	entry := logThroughAdapter(t, Event{
		Timestamp: time.Now(),
		PeerID:    "peer-123",
		Direction: DirectionIn,
		Layer:     LayerProxy,
		Category:  CategoryMessage,
		Frame:     NewFrameEvent([]byte{0x03, 0x00, 0x05}),
	})

	want := map[string]any{
		"msg":        "protocol",
		"level":      "DEBUG",
		"peer":       "peer-123",
		"direction":  "IN",
		"layer":      "PROXY",
		"frame_size": float64(3),
		"frame":      "030005",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["truncated"]; ok {
		t.Error("truncated should be omitted for small frames")
	}
}

func TestSlogAdapterLogsMessageEvent(t *testing.T) {
	entry := logThroughAdapter(t, Event{
		Timestamp: time.Now(),
		Direction: DirectionOut,
		Layer:     LayerProvisioning,
		Category:  CategoryMessage,
		Message: &MessageEvent{
			Kind:       MessageKindProvisioningPDU,
			Identifier: "0x02",
			Name:       "Provisioning Start",
		},
	})

	if entry["kind"] != "PROVISIONING_PDU" {
		t.Errorf("kind: got %v", entry["kind"])
	}
	if entry["id"] != "0x02" {
		t.Errorf("id: got %v", entry["id"])
	}
	if entry["name"] != "Provisioning Start" {
		t.Errorf("name: got %v", entry["name"])
	}
	if _, ok := entry["peer"]; ok {
		t.Error("peer should be omitted when empty")
	}
}

func TestSlogAdapterLogsErrorEvent(t *testing.T) {
	entry := logThroughAdapter(t, Event{
		Timestamp: time.Now(),
		Layer:     LayerGATT,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Layer:   LayerGATT,
			Message: "wire: truncated input",
			Kind:    "TRUNCATED",
			Context: "decode 2A80",
		},
	})

	if entry["error_msg"] != "wire: truncated input" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if entry["error_kind"] != "TRUNCATED" {
		t.Errorf("error_kind: got %v", entry["error_kind"])
	}
	if entry["error_context"] != "decode 2A80" {
		t.Errorf("error_context: got %v", entry["error_context"])
	}
}
