package sym

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	assert.Len(t, SymbolToCommand, len(CommandToSymbol))
	for cmd, symbol := range CommandToSymbol {
		assert.Equal(t, cmd, SymbolToCommand[symbol], "glyph %q", symbol)
	}
}

func TestCommandDescriptionsCoversAllCommands(t *testing.T) {
	for cmd := range CommandToSymbol {
		assert.NotEmpty(t, CommandDescriptions[cmd], "command %q has no description", cmd)
	}
}

func TestGlyphsAreSingleRunes(t *testing.T) {
	for _, glyph := range []string{AM, Generate, Check, Watch, OK, Fail, Warn} {
		assert.Equal(t, 1, utf8.RuneCountInString(glyph), "glyph %q", glyph)
	}
}

func TestShort(t *testing.T) {
	assert.Equal(t, "≡ Manage configuration", Short("am", "Manage configuration"))
	assert.Equal(t, "Show version", Short("version", "Show version"))
}
