package vtcore

// Config holds construction-time settings that do not change for the life
// of a Terminal: word-selection delimiters, the initial cursor style, the
// default tab width, and the string returned for Device Attributes (DA1/DA2)
// queries. Default colors are not part of it; they are the package-level
// vars in colors.go. Passing it explicitly via [WithConfig] avoids hidden package
// level state; [DefaultConfig] mirrors a plain xterm.
type Config struct {
	// WordDelimiters lists the runes (beyond space) that end a
	// double-click/word selection. See [Selection].
	WordDelimiters string

	// CursorStyle is the cursor shape a freshly constructed Terminal starts
	// with, before any DECSCUSR sequence changes it.
	CursorStyle CursorStyle

	// TabWidth is the spacing, in columns, of the default tab stops
	// installed at construction and after a full reset.
	TabWidth int

	// TerminalID is the response sent for a Primary Device Attributes (DA1)
	// query. Defaults to a VT102 identification.
	TerminalID string
}

// DefaultConfig returns the configuration a plain xterm-compatible terminal
// starts with.
func DefaultConfig() Config {
	return Config{
		WordDelimiters: " \t\n,.;:!?()[]{}\"'`<>~|\\/$%^&*-+=",
		CursorStyle:    CursorStyleBlinkingBlock,
		TabWidth:       8,
		TerminalID:     "\x1b[?6c",
	}
}
