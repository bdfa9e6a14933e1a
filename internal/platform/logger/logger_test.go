package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		" INFO ":    zerolog.InfoLevel,
		"warn":      zerolog.WarnLevel,
		"warning":   zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.DebugLevel,
		"nonsense":  zerolog.DebugLevel,
		"panic":     zerolog.PanicLevel,
		"disabled":  zerolog.Disabled,
		"debug":     zerolog.DebugLevel,
		"  fatal  ": zerolog.FatalLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestBuild_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "reviewsentry-api",
		Component:    "predict",
		Writer:       &buf,
		StaticFields: map[string]string{"env": "test"},
	})
	l.Debug().Msg("dropped")
	l.Info().Int("n", 1).Msg("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("lines = %d", len(lines))
	}
	got := lines[0]
	if got["message"] != "kept" || got["service"] != "reviewsentry-api" || got["component"] != "predict" || got["env"] != "test" {
		t.Fatalf("fields = %v", got)
	}
}

func TestBuild_ConsoleAndSampling(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "debug", Format: "console", Writer: &buf, SampleEvery: 3, WithCaller: true})
	for range 6 {
		l.Info().Msg("sampled")
	}
	if n := strings.Count(buf.String(), "sampled"); n != 2 {
		t.Fatalf("sampled lines = %d", n)
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("console output expected: %q", buf.String())
	}
}

func TestWithRequestAndC(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-9", "dev-3")

	var buf bytes.Buffer
	l := C(ctx).Output(&buf)
	l.Info().Msg("scoped")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["request_id"] != "req-9" || lines[0]["device_id"] != "dev-3" {
		t.Fatalf("scoped = %v", lines)
	}

	if C(context.Background()) != Get() {
		t.Fatalf("bare context should use the root logger")
	}
}

func TestNamed(t *testing.T) {
	if Named("") != Get() {
		t.Fatalf("empty name should be the root logger")
	}
	var buf bytes.Buffer
	l := Named("archive").Output(&buf)
	l.Info().Msg("x")
	if !strings.Contains(buf.String(), `"component":"archive"`) {
		t.Fatalf("out = %q", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" || opt.Component != "" {
		t.Fatalf("opts = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("opts = %+v", opt)
	}
}
