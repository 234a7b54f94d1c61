// Package sym defines the glyphs amtool prints for commands and results.
// They are stable across help text, status lines and documentation.
package sym

// Command glyphs
const (
	AM       = "≡" // am: configuration
	Generate = "⎘" // generate: write test sources
	Check    = "⊨" // check: generated sources entail their specifications
	Watch    = "꩜" // watch: regenerate continuously
)

// Status markers
const (
	OK   = "✓"
	Fail = "✗"
	Warn = "!"
)

// CommandToSymbol maps command names to their glyphs.
var CommandToSymbol = map[string]string{
	"am":       AM,
	"generate": Generate,
	"check":    Check,
	"watch":    Watch,
}

// SymbolToCommand maps glyphs back to command names.
var SymbolToCommand = map[string]string{
	AM:       "am",
	Generate: "generate",
	Check:    "check",
	Watch:    "watch",
}

// CommandDescriptions are one-line explanations used in help output.
var CommandDescriptions = map[string]string{
	"am":       "Configuration: acceptmark.toml, AMTOOL_* and defaults",
	"generate": "Generate: one XCTest file per specification",
	"check":    "Check: generated sources match their specifications",
	"watch":    "Watch: regenerate on every document change",
}

// Short prefixes a command's short help with its glyph.
func Short(command, text string) string {
	if glyph, ok := CommandToSymbol[command]; ok {
		return glyph + " " + text
	}
	return text
}
