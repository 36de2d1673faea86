package vtcore

import "weak"

// Display is the contract a renderer implements to receive terminal output.
// A Terminal never owns a Display outright: [WithDisplay] wires it in through
// a [DisplayBridge], which holds a [weak.Pointer] so a Display can be torn
// down (window closed) without the Terminal, or constructed after the
// Terminal already exists, without either side needing to coordinate a
// teardown order. A [Loop] keeps an ordinary reference to its Display.
type Display interface {
	// Begin is called before a batch of draw calls for one frame.
	Begin()
	// End is called after the batch of draw calls for one frame.
	End()
	// DrawLine renders one row's cells, replacing whatever was drawn there before.
	DrawLine(row int, cells []Cell)
	// DrawCursor renders the cursor at (row, col) in the given style, or hides
	// it if visible is false.
	DrawCursor(row, col int, style CursorStyle, visible bool)
	// SetTitle updates the window title (OSC 0/2).
	SetTitle(title string)
	// SetIconTitle updates the icon/tab title (OSC 1).
	SetIconTitle(title string)
	// Bell is called on BEL.
	Bell()
	// SetMode is called whenever a mode relevant to rendering changes
	// (cursor visibility, alternate screen, bracketed paste, ...).
	SetMode(mode TerminalMode, enabled bool)
	// SetCursorStyle is called when the cursor shape changes (DECSCUSR).
	SetCursorStyle(style CursorStyle)
	// SetClipboard is called when the terminal writes to a clipboard (OSC 52).
	SetClipboard(clipboard byte, data []byte)
	// ResetColors is called when the whole palette is reset (OSC 104 with no parameter).
	ResetColors()
	// ResetColor is called when a single palette slot is reset (OSC 104 i).
	ResetColor(index int)
	// Attach is called once, when the Display is registered with a Loop.
	Attach()
	// Detach is called when the Loop terminates.
	Detach()
	// RedrawRequest asks the Display to schedule a full repaint, independent
	// of the dirty-row tracking a Loop otherwise relies on.
	RedrawRequest()
}

// DisplayBridge adapts a [Display] to the Terminal's granular provider
// interfaces ([BellProvider], [TitleProvider], [ClipboardProvider]) so a
// Display can be wired into a Terminal with [WithBell], [WithTitle], and
// [WithClipboard] without Terminal knowing about Display at all.
//
// The Terminal's construction-time providers only cover events that fire
// from inside the ANSI dispatch path (bell, title, clipboard). Cursor style,
// mode, and palette-reset notifications have no such hook, since they are
// plain state mutations. [Loop.Draw] passes the cursor's current style and
// visibility to DrawCursor each frame; nothing in the package calls a
// Display's SetCursorStyle, SetMode, ResetColors or ResetColor.
type DisplayBridge struct {
	display weak.Pointer[Display]
}

// NewDisplayBridge wraps a weak reference to *d. d must be a variable the
// caller keeps reachable for as long as the Display should stay attached
// (e.g. a field on the caller's window object); the bridge itself never
// keeps it alive. Once the caller drops its own reference and d is
// collected, [DisplayBridge.Get] starts returning nil. Attach/Detach are a
// [Loop]'s responsibility (see [NewLoop]), not the bridge's.
func NewDisplayBridge(d *Display) *DisplayBridge {
	return &DisplayBridge{display: weak.Make(d)}
}

// Get resolves the underlying Display, or nil if it has been garbage collected.
func (b *DisplayBridge) Get() Display {
	p := b.display.Value()
	if p == nil {
		return nil
	}
	return *p
}

// Ring implements [BellProvider].
func (b *DisplayBridge) Ring() {
	if d := b.Get(); d != nil {
		d.Bell()
	}
}

// SetTitle implements part of [TitleProvider].
func (b *DisplayBridge) SetTitle(title string) {
	if d := b.Get(); d != nil {
		d.SetTitle(title)
	}
}

// PushTitle implements part of [TitleProvider]. Title stacking is tracked by
// the Terminal itself; the Display only needs the resulting SetTitle calls.
func (b *DisplayBridge) PushTitle() {}

// PopTitle implements part of [TitleProvider].
func (b *DisplayBridge) PopTitle() {}

// Read implements part of [ClipboardProvider]. A DisplayBridge cannot source
// clipboard contents; callers needing OSC 52 read-back should compose a
// dedicated ClipboardProvider instead.
func (b *DisplayBridge) Read(clipboard byte) string { return "" }

// Write implements part of [ClipboardProvider].
func (b *DisplayBridge) Write(clipboard byte, data []byte) {
	if d := b.Get(); d != nil {
		d.SetClipboard(clipboard, data)
	}
}

var (
	_ BellProvider      = (*DisplayBridge)(nil)
	_ TitleProvider     = (*DisplayBridge)(nil)
	_ ClipboardProvider = (*DisplayBridge)(nil)
)
