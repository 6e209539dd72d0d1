// Package logtail reads the end of appdeck's log file for the in-app log view.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines. maxLines <= 0 returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed logfmt line as written by logrus' text formatter.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  []Field
	Raw     string
}

// Field is a key=value pair other than time, level and msg.
type Field struct {
	Key   string
	Value string
}

// Parse decodes one logfmt line. Lines that do not decode, or that carry
// neither a level nor a msg key, come back with only Raw and Message set.
func Parse(line string) Entry {
	raw := Entry{Raw: line, Message: line}

	dec := logfmt.NewDecoder(strings.NewReader(line))
	if !dec.ScanRecord() {
		return raw
	}
	entry := Entry{Raw: line}
	structured := false
	for dec.ScanKeyval() {
		key, value := string(dec.Key()), string(dec.Value())
		switch key {
		case "time":
			entry.Time = value
		case "level":
			entry.Level = value
			structured = true
		case "msg":
			entry.Message = value
			structured = true
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if dec.Err() != nil || !structured {
		return raw
	}
	return entry
}

var severity = map[string]int{
	"trace":   0,
	"debug":   1,
	"info":    2,
	"warning": 3,
	"warn":    3,
	"error":   4,
	"fatal":   5,
	"panic":   6,
}

// Filter keeps entries at or above minLevel. Unparsed entries are kept.
func Filter(entries []Entry, minLevel string) []Entry {
	min, ok := severity[strings.ToLower(strings.TrimSpace(minLevel))]
	if !ok {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		rank, known := severity[e.Level]
		if known && rank < min {
			continue
		}
		out = append(out, e)
	}
	return out
}
