package logger

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func encode(t *testing.T, enc zapcore.Encoder, ent zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(ent, fields)
	require.NoError(t, err)
	defer buf.Free()
	return stripANSI(buf.String())
}

// The encoder must never silently drop a field: every key shows up as key=value.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "testgen",
		Message:    "Generated unit",
	}

	out := encode(t, newMinimalEncoder(), entry,
		zap.String(FieldSpec, "Calc_Add"),
		zap.String(FieldPath, "out/Calc_AddTests.swift"),
		zap.Int(FieldTests, 3),
		zap.Bool("used_default", true),
		zap.Float64("ratio", 0.5),
		zap.Error(errors.New("disk full")),
	)

	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "testgen")
	assert.Contains(t, out, "Generated unit")
	for _, want := range []string{
		"spec=Calc_Add",
		"path=out/Calc_AddTests.swift",
		"tests=3",
		"used_default=true",
		"ratio=0.5",
		"error=disk full",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "INFO", "info level is implied")
}

func TestMinimalEncoderLevels(t *testing.T) {
	enc := newMinimalEncoder()
	base := zapcore.Entry{Time: time.Now(), Message: "m"}

	base.Level = zapcore.WarnLevel
	assert.Contains(t, encode(t, enc, base), "WARN")

	base.Level = zapcore.ErrorLevel
	assert.Contains(t, encode(t, enc, base), "ERROR")
}

func TestMinimalEncoderKeepsContextFields(t *testing.T) {
	enc := newMinimalEncoder()
	enc.AddString(FieldDialect, "swift3")

	clone := enc.Clone()
	clone.AddString(FieldSpec, "Calc_Add")

	out := encode(t, clone, zapcore.Entry{Time: time.Now(), Message: "emit"}, zap.Int(FieldCase, 0))
	assert.Contains(t, out, "dialect=swift3")
	assert.Contains(t, out, "spec=Calc_Add")
	assert.Contains(t, out, "case=0")

	// Clone must not leak fields back into the original
	out = encode(t, enc, zapcore.Entry{Time: time.Now(), Message: "emit"})
	assert.NotContains(t, out, "spec=Calc_Add")
}

func TestSetThemePlainEmitsNoEscapes(t *testing.T) {
	saved := currentTheme
	defer func() { currentTheme = saved }()

	SetTheme("plain")
	buf, err := newMinimalEncoder().EncodeEntry(zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Now(),
		Message: "unrecognized dialect",
	}, []zapcore.Field{zap.String("raw", "kotlin")})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\x1b[")

	SetTheme("does-not-exist")
	assert.Equal(t, "plain", currentTheme)
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"everforest", "gruvbox", "plain"}, ThemeNames())
	assert.True(t, HasTheme("gruvbox"))
	assert.False(t, HasTheme("solarized"))
}
