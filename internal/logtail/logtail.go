package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
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
	count := 0
	idx := 0
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

// Entry is one decoded zap JSON record.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Caller  string
	Fields  map[string]any
}

// Keys written by the production zap encoder.
var reserved = map[string]bool{
	"ts": true, "level": true, "logger": true, "msg": true, "caller": true, "stacktrace": true,
}

// Parse decodes a JSON log line. ok is false for lines that are not records.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &raw); err != nil {
		return Entry{}, false
	}
	msg, hasMsg := raw["msg"].(string)
	levelName, hasLevel := raw["level"].(string)
	if !hasMsg || !hasLevel {
		return Entry{}, false
	}

	e := Entry{Message: msg, Fields: map[string]any{}}
	if err := e.Level.UnmarshalText([]byte(levelName)); err != nil {
		e.Level = zapcore.InfoLevel
	}
	if ts, ok := raw["ts"].(string); ok {
		for _, layout := range []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano} {
			if t, err := time.Parse(layout, ts); err == nil {
				e.Time = t
				break
			}
		}
	}
	e.Logger, _ = raw["logger"].(string)
	e.Caller, _ = raw["caller"].(string)
	for k, v := range raw {
		if !reserved[k] {
			e.Fields[k] = v
		}
	}
	return e, true
}

// Palette styles the parts of a formatted line.
type Palette struct {
	Time   lipgloss.Style
	Logger lipgloss.Style
	Key    lipgloss.Style
	Levels map[zapcore.Level]lipgloss.Style
}

// DefaultPalette colors levels the usual way: debug cyan, info green,
// warn yellow, error red.
func DefaultPalette() Palette {
	level := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
	}
	return Palette{
		Time:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Logger: lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
		Key:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Levels: map[zapcore.Level]lipgloss.Style{
			zapcore.DebugLevel: level("#87CEEB"),
			zapcore.InfoLevel:  level("#5FD75F"),
			zapcore.WarnLevel:  level("#FFD700"),
			zapcore.ErrorLevel: level("#FF6B6B"),
		},
	}
}

// PlainPalette renders without styling.
func PlainPalette() Palette {
	return Palette{}
}

// Format renders e on one line:
//
//	2025-10-08 21:01:05 INFO  [api] request finished method=GET status=200
func (p Palette) Format(e Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(p.Time.Render(e.Time.Local().Format("2006-01-02 15:04:05")))
		b.WriteString(" ")
	}
	levelStyle, ok := p.Levels[e.Level]
	if !ok {
		levelStyle = lipgloss.NewStyle()
	}
	b.WriteString(levelStyle.Render(fmt.Sprintf("%-5s", e.Level.CapitalString())))
	if e.Logger != "" {
		b.WriteString(" ")
		b.WriteString(p.Logger.Render("[" + e.Logger + "]"))
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(p.Key.Render(k + "="))
		b.WriteString(formatValue(e.Fields[k]))
	}
	return b.String()
}

// FormatLines formats every record at or above minLevel. Lines that are not
// records pass through unchanged.
func (p Palette) FormatLines(lines []string, minLevel zapcore.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		e, ok := Parse(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				out = append(out, line)
			}
			continue
		}
		if e.Level < minLevel {
			continue
		}
		out = append(out, p.Format(e))
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case nil:
		return "null"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
