package commands

import (
	"strings"
	"testing"
)

func TestExecLine(t *testing.T) {
	env, stdout, stderr := newTestEnv(t, DefaultConfig())

	if execLine(env, "decode 2A80 2D") {
		t.Fatal("decode should not quit")
	}
	if !strings.Contains(stdout.String(), "years: 45") {
		t.Errorf("decode output: %q", stdout.String())
	}

	stdout.Reset()
	execLine(env, "format json")
	if env.Config.Format != "json" {
		t.Errorf("Format = %q, want json", env.Config.Format)
	}
	execLine(env, "pdu 00 05")
	if !strings.Contains(stdout.String(), `"attention_duration": 5`) {
		t.Errorf("pdu output: %q", stdout.String())
	}

	stdout.Reset()
	execLine(env, "segment 0005 23")
	if !strings.Contains(stdout.String(), "COMPLETE") {
		t.Errorf("segment output: %q", stdout.String())
	}

	execLine(env, "format xml")
	execLine(env, "bogus")
	execLine(env, "decode 2A80")
	for _, want := range []string{"invalid format", "Unknown command: bogus", "Usage: decode"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q: %q", want, stderr.String())
		}
	}

	if execLine(env, "   ") {
		t.Error("blank line should not quit")
	}
	if !execLine(env, "quit") {
		t.Error("quit should quit")
	}
}
