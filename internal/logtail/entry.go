package logtail

import (
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Field is one key=value pair from a log line.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed logrus text-format line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  []Field
	Raw     string
}

// Parsed reports whether the line carried a level.
func (e Entry) Parsed() bool {
	return e.Level != ""
}

// Parse decodes a logfmt line written by logrus' TextFormatter:
//
//	time="2025-11-27T09:30:00.000Z" level=info msg="counter saved" value=3
//
// Lines that do not look like that come back with only Raw set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	dec := logfmt.NewDecoder(strings.NewReader(line))
	if !dec.ScanRecord() {
		return entry
	}
	for dec.ScanKeyval() {
		key, value := string(dec.Key()), string(dec.Value())
		switch key {
		case "time":
			entry.Time = value
		case "level":
			entry.Level = strings.ToUpper(value)
		case "msg":
			entry.Message = value
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if dec.Err() != nil || entry.Level == "" {
		return Entry{Raw: line}
	}
	return entry
}

// ParseLines parses each line in order.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out
}
