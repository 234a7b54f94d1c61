package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the handful of colors the console encoder uses
type palette struct {
	time      string
	component string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var themes = map[string]palette{
	// Everforest Dark (natural forest greens)
	"everforest": {
		time:      "\x1b[38;5;107m",
		component: "\x1b[38;5;208m",
		key:       "\x1b[38;5;109m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		time:      "\x1b[38;5;108m",
		component: "\x1b[38;5;214m",
		key:       "\x1b[38;5;109m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
	// No escape codes at all (CI logs, redirected output)
	"plain": {},
}

var bufferPool = buffer.NewPool()

// Current active theme (set by SetTheme)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output.
// Unknown names are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// ThemeNames returns the known theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func colors() palette {
	return themes[currentTheme]
}

func paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + colorReset
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  WARN  watch  Regeneration failed  path=specs/Calc.md error=..."
//
// Every field is rendered as key=value; nothing is dropped.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder // context fields added via With()
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(paint(c.time, ent.Time.Format("15:04:05")))

	// Level: only show for WARN/ERROR and above
	if label := levelLabel(ent.Level, c); label != "" {
		final.AppendString("  ")
		final.AppendString(label)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(paint(c.component, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if rendered := enc.renderFields(fields, c); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// renderFields formats context fields (sorted by key) followed by entry
// fields (in call order) as key=value pairs
func (enc *minimalEncoder) renderFields(fields []zapcore.Field, c palette) string {
	var parts []string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, paint(c.key, k)+"="+fmt.Sprint(enc.Fields[k]))
	}

	for _, field := range fields {
		parts = append(parts, paint(c.key, field.Key)+"="+fieldValue(field))
	}

	return strings.Join(parts, " ")
}

// fieldValue extracts the value from a zap field regardless of its type
func fieldValue(field zapcore.Field) string {
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// levelLabel returns bold + colored + background for WARN/ERROR
func levelLabel(level zapcore.Level, c palette) string {
	switch level {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		return ""
	case zapcore.WarnLevel:
		if c.warn == "" {
			return "WARN"
		}
		return paint(colorBold+c.warnBg+c.warn, "WARN")
	default:
		if c.err == "" {
			return level.CapitalString()
		}
		return paint(colorBold+c.errBg+c.err, level.CapitalString())
	}
}
