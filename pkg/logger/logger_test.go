package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first, Service: "food-admin"})
	Init(Options{Level: "info", Output: &second})

	log := For("tracking")
	log.Info().Msg("hello")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the writer")
	}

	var entry map[string]any
	if err := json.Unmarshal(first.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if entry["service"] != "food-admin" {
		t.Errorf("expected service field, got %v", entry["service"])
	}
	if entry["component"] != "tracking" {
		t.Errorf("expected component field, got %v", entry["component"])
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = Get()
}

func TestReset_AllowsReinit(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	Reset()
	Init(Options{Level: "warn", Output: &second})

	log := Get()
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	if first.Len() != 0 {
		t.Fatalf("old writer received %q", first.String())
	}
	if !bytes.Contains(second.Bytes(), []byte(`"kept"`)) || bytes.Contains(second.Bytes(), []byte("dropped")) {
		t.Fatalf("unexpected output %q", second.String())
	}
}
