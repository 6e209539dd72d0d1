package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "appdeck.log")

	log, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.WithField("fetch_id", "abc").Info("fetch succeeded")
	log.Debug("fetch started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "level=info") || !strings.Contains(out, `msg="fetch succeeded"`) || !strings.Contains(out, "fetch_id=abc") {
		t.Fatalf("log output = %q, want info entry with fields", out)
	}
	if !strings.Contains(out, "level=debug") {
		t.Fatalf("log output = %q, want debug entry", out)
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	log, closer, err := New("", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", log.GetLevel())
	}
	log.Info("dropped")
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Fatalf("New returned nil error for invalid level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{" WARN ", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"trace", logrus.TraceLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	levels := Levels()
	if len(levels) != len(logrus.AllLevels) {
		t.Fatalf("Levels() = %v", levels)
	}
	if levels[len(levels)-1] != "trace" {
		t.Fatalf("last level = %q, want trace", levels[len(levels)-1])
	}
}
