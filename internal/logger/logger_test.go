package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithWriter_Levels(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "debug", "json")
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", l.GetLevel())
	}
	l = NewWithWriter(&bytes.Buffer{}, "nonsense", "json")
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", l.GetLevel())
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf, "info", "text")
	l.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}

func TestLogError(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf, "info", "json")
	LogError(l, "service", "Checkout", "saving sale", map[string]int{"items": 2}, errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "boom" || entry["module"] != "service" || entry["funcName"] != "Checkout" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["level"] != "error" || entry["data"] == nil {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestLogError_NoData(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf, "info", "json")
	LogError(l, "repository", "load", "sales", nil, errors.New("bad"))
	if strings.Contains(buf.String(), "\"data\"") {
		t.Fatalf("data field must be omitted: %q", buf.String())
	}
}
