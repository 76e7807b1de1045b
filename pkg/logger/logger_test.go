package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestInit_JSONWithServiceAndComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "bookstore"})

	l := Component("catalog")
	l.Debug().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "bookstore" || entry["component"] != "catalog" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["level"] != "debug" {
		t.Fatalf("expected debug level, got %v", entry["level"])
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level: %q", buf.String())
	}
	log.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Fatal("warn must be written")
	}
}

func TestComponent_BeforeInit(t *testing.T) {
	Reset()
	// Must not panic.
	l := Component("x")
	l.Info().Msg("ignored")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "trace",
		"DEBUG":   "debug",
		" warn ":  "warn",
		"warning": "warn",
		"error":   "error",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestInit_KeepsFirstLogger(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	l := Init(Options{Output: &second})
	l.Info().Msg("hi")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("second Init must reuse the first logger: first=%q second=%q", first.String(), second.String())
	}
}

func TestNew_DoesNotInstallSingleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	l.Info().Msg("standalone")
	if buf.Len() == 0 {
		t.Fatal("expected standalone output")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Get must panic before Init")
		}
	}()
	Get()
}
