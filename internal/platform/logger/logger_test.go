package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStdLogger_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "vet", Output: &buf})

	l.With(Fields{"request_id": "abc"}).Info("customer deleted", Fields{"id": 7, "err": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "vet" || entry["request_id"] != "abc" || entry["msg"] != "customer deleted" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry["err"] != "boom" {
		t.Fatalf("errors must be logged as strings, got %#v", entry["err"])
	}
}

func TestStdLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("FromContext must never return nil")
	}

	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	FromContext(WithContext(context.Background(), l)).Info("hi", nil)
	if !strings.Contains(buf.String(), "msg=hi") {
		t.Fatalf("expected logger from context to be used, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, "WARN": Warn, "warning": Warn, "error": Error, "": Info, "nope": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
