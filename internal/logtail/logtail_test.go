package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read missing = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "logrus line with fields",
			input: `time="2026-10-15 09:30:00" level=info msg="fetch succeeded" fetch_id=abc gen=1 records=12`,
			want: Entry{
				Time:    "2026-10-15 09:30:00",
				Level:   "info",
				Message: "fetch succeeded",
				Fields: []Field{
					{Key: "fetch_id", Value: "abc"},
					{Key: "gen", Value: "1"},
					{Key: "records", Value: "12"},
				},
			},
		},
		{
			name:  "escaped quotes in error",
			input: `time="2026-10-15 09:30:01" level=warning msg="fetch failed" error="fetch apps: decode response: \"id\" missing" kind=decode`,
			want: Entry{
				Time:    "2026-10-15 09:30:01",
				Level:   "warning",
				Message: "fetch failed",
				Fields: []Field{
					{Key: "error", Value: `fetch apps: decode response: "id" missing`},
					{Key: "kind", Value: "decode"},
				},
			},
		},
		{
			name:  "plain text",
			input: "panic: something odd happened",
			want:  Entry{Message: "panic: something odd happened"},
		},
		{
			name:  "logfmt without level or msg",
			input: `status=ok count=3`,
			want:  Entry{Message: `status=ok count=3`},
		},
		{
			name:  "bare key keeps empty value",
			input: `level=error msg="fetch failed" retrying`,
			want: Entry{
				Level:   "error",
				Message: "fetch failed",
				Fields:  []Field{{Key: "retrying", Value: ""}},
			},
		},
		{
			name:  "unterminated quote",
			input: `level=info msg="oops`,
			want:  Entry{Message: `level=info msg="oops`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			tt.want.Raw = tt.input
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Level: "debug", Message: "d"},
		{Level: "info", Message: "i"},
		{Level: "warning", Message: "w"},
		{Level: "error", Message: "e"},
		{Message: "raw"},
	}

	got := Filter(entries, "warn")
	var msgs []string
	for _, e := range got {
		msgs = append(msgs, e.Message)
	}
	if !reflect.DeepEqual(msgs, []string{"w", "e", "raw"}) {
		t.Fatalf("Filter(warn) = %v, want [w e raw]", msgs)
	}

	if got := Filter(entries, "bogus"); len(got) != len(entries) {
		t.Fatalf("Filter(bogus) dropped entries: %v", got)
	}
}
