// Package vtcore provides a headless VT220/xterm-compatible terminal emulator.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: The main emulator that processes ANSI sequences
//   - [Buffer]: A 2D grid of cells with scrollback support
//   - [Cell]: A single character with colors and attributes
//   - [Cursor]: Tracks position and rendering style
//   - [Selection]: Tracks a user-driven text selection
//   - [Loop]: Drives a PTY into a Terminal and a Terminal's dirty state to a [Display]
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),           // 24 rows, 80 columns
//	    vtcore.WithScrollback(storage),    // Enable scrollback
//	    vtcore.WithResponse(ptyWriter),    // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Buffers
//
// Terminal maintains two buffers:
//
//   - Primary buffer: Normal mode with optional scrollback storage
//   - Alternate buffer: Used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch buffers via ANSI sequences (CSI ?1049h/l). Check which
// buffer is active:
//
//	if term.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// # Cells and Attributes
//
// Each cell stores a character with styling information:
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c\n", cell.Char)
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(vtcore.CellFlagBold))
//	    fmt.Printf("FG: %v\n", cell.Fg)
//	    fmt.Printf("BG: %v\n", cell.Bg)
//	}
//
// Cell flags include: Bold, Dim, Italic, Underline, Blink, Reverse, Hidden, Strike.
//
// # Colors
//
// Colors are stored using Go's [image/color] interface. The package supports:
//
//   - Named colors (indices 0-15 for standard ANSI colors)
//   - 256-color palette (indices 0-255)
//   - True color (24-bit RGB via [color.RGBA])
//
// The package exports no color resolver. [DefaultPalette], [DefaultForeground]
// and [DefaultBackground] hold the values that [Terminal.Snapshot] uses to
// report cell colors as hex strings.
//
// # Scrollback
//
// Lines scrolled off the top of the primary buffer can be stored for later access.
// Implement [ScrollbackProvider] and pass it with [WithScrollback]; the only
// built-in provider, [NoopScrollback], discards the lines:
//
//	// myScrollback is a caller-defined ScrollbackProvider
//	storage := newMyScrollback(10000)
//	term := vtcore.New(vtcore.WithScrollback(storage))
//
//	// Access scrollback
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // []Cell
//	}
//
// # Configuration
//
// [Config] holds construction-time settings (word-selection delimiters, initial
// cursor style, tab width, Device Attributes response string) that would
// otherwise live in hidden package state:
//
//	term := vtcore.New(vtcore.WithConfig(vtcore.Config{
//	    WordDelimiters: " \t,.;:",
//	    TabWidth:       4,
//	}))
//
// # Providers
//
// Providers handle terminal events and queries. All are optional with no-op defaults:
//
//   - [BellProvider]: Handles bell/beep events
//   - [TitleProvider]: Handles window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: Handles clipboard operations (OSC 52)
//   - [ScrollbackProvider]: Stores lines scrolled off screen
//   - [RecordingProvider]: Captures raw input for replay
//   - [APCProvider], [PMProvider], [SOSProvider]: Handle APC/PM/SOS string sequences
//
// Example with providers:
//
//	term := vtcore.New(
//	    vtcore.WithResponse(os.Stdout),
//	    vtcore.WithBell(&MyBellHandler{}),
//	    vtcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Middleware
//
// Middleware intercepts ANSI handler calls for custom behavior:
//
//	mw := &vtcore.Middleware{
//	    Input: func(r rune, next func(rune)) {
//	        log.Printf("Input: %c", r)
//	        next(r) // Call default handler
//	    },
//	    Bell: func(next func()) {
//	        log.Println("Bell!")
//	        // Don't call next() to suppress the bell
//	    },
//	}
//	term := vtcore.New(vtcore.WithMiddleware(mw))
//
// # Terminal Modes
//
// Various terminal behaviors are controlled by mode flags:
//
//	term.HasMode(vtcore.ModeLineWrap)       // Auto line wrap enabled?
//	term.HasMode(vtcore.ModeShowCursor)     // Cursor visible?
//	term.HasMode(vtcore.ModeBracketedPaste) // Bracketed paste enabled?
//
// See [TerminalMode] for all available modes.
//
// # Dirty Tracking
//
// Track which cells or rows changed for efficient rendering:
//
//	if term.HasDirty() {
//	    for _, pos := range term.DirtyCells() {
//	        // Redraw cell at pos.Row, pos.Col
//	    }
//	    term.ClearDirty()
//	}
//
// [Loop] consumes per-row dirty state (via [Buffer.DirtyRows]) for its own
// draw step; see below.
//
// # Selection
//
// Manage text selections for copy/paste, including word/line snapping and
// rectangular selection:
//
//	term.StartSelection(0, 0, vtcore.SnapWord, vtcore.SelectionRegular)
//	term.ExtendSelection(2, 10, vtcore.SelectionRegular, true)
//	text := term.GetSelectedText()
//	term.ClearSelection()
//
// # Search
//
// Find text in the visible screen or scrollback:
//
//	matches := term.Search("error")
//	for _, pos := range matches {
//	    fmt.Printf("Found at row %d, col %d\n", pos.Row, pos.Col)
//	}
//
//	// Search scrollback (returns negative row numbers)
//	scrollbackMatches := term.SearchScrollback("error")
//
// # Snapshots
//
// Capture the terminal state for serialization or rendering:
//
//	// Text only (smallest)
//	snap := term.Snapshot(vtcore.SnapshotDetailText)
//
//	// With style segments (good for HTML rendering)
//	snap := term.Snapshot(vtcore.SnapshotDetailStyled)
//
//	// Full cell data (complete state)
//	snap := term.Snapshot(vtcore.SnapshotDetailFull)
//
//	// Convert to JSON
//	data, _ := json.Marshal(snap)
//
// Snapshots include detailed attribute information:
//   - Underline styles: "single", "double", "curly", "dotted", "dashed"
//   - Blink types: "slow", "fast"
//   - Underline color (separate from foreground)
//
// # Driving a PTY
//
// [Loop] pairs a Terminal with a [PTY] and a [Display]: it drains PTY output
// into the Terminal, forwards keyboard input back to the PTY, and pushes
// dirty rows to the Display.
//
//	term := vtcore.New(vtcore.WithSize(24, 80))
//	loop := vtcore.NewLoop(term, pty, proc, display)
//	for loop.Update() == vtcore.LoopRunning {
//	    loop.Draw()
//	}
//
// # Auto-Resize Mode
//
// In auto-resize mode, the buffer grows instead of scrolling:
//
//	term := vtcore.New(vtcore.WithAutoResize())
//
//	// Capture complete output without truncation
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Buffer has grown to fit all output
//	fmt.Printf("Total rows: %d\n", term.Rows())
//
// # Thread Safety
//
// All Terminal methods are safe for concurrent use. The terminal uses internal
// locking to protect state. However, if you need to perform multiple operations
// atomically, you should use your own synchronization.
//
// # Supported ANSI Sequences
//
// The terminal supports a comprehensive set of ANSI escape sequences including:
//
//   - Cursor movement (CUU, CUD, CUF, CUB, CUP, HVP, etc.)
//   - Cursor save/restore (DECSC, DECRC)
//   - Erase commands (ED, EL, ECH)
//   - Insert/delete (ICH, DCH, IL, DL)
//   - Repeat last printable character (REP)
//   - Scrolling (SU, SD, DECSTBM)
//   - Character attributes (SGR) with full color support
//   - Terminal modes (DECSET, DECRST)
//   - Device status and attributes reports (DSR, DA1)
//   - Alternate screen buffer
//   - Bracketed paste mode
//   - Window title (OSC 0/1/2)
//   - Clipboard (OSC 52)
//   - Hyperlinks (OSC 8)
//   - Palette reset (OSC 104)
//
// Kitty/Sixel inline graphics, OSC 133 shell-integration marks, OSC 9/1337/7
// are not implemented.
//
// For the complete list of supported sequences, see the [go-ansicode] package
// documentation.
//
// [go-ansicode]: https://github.com/danielgatis/go-ansicode
package vtcore
