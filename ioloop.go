package vtcore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// PTY is the minimal surface [Loop] needs from a pseudo-terminal: a
// non-blocking byte stream plus resize notification. [ptyfile.go] provides
// a concrete adapter over an *os.File; hosts may supply their own (e.g. one
// backed by a network-transported PTY).
type PTY interface {
	// Read behaves like io.Reader, but must not block indefinitely: an
	// implementation with no data ready should return (0, ErrWouldBlock)
	// rather than waiting.
	Read(p []byte) (int, error)
	// Write sends bytes to the PTY's input side (what the child process reads as stdin).
	io.Writer
	// Resize notifies the PTY (and the process attached to it) of a new size.
	Resize(rows, cols int) error
}

// ErrWouldBlock is returned by a [PTY.Read] implementation when no data is
// currently available, without having reached end of stream.
var ErrWouldBlock = errors.New("vtcore: read would block")

// Process represents the child process attached to a PTY. A Loop polls it
// once per Update to notice exit, and asks it to terminate on
// [Loop.Terminate].
type Process interface {
	// ExitCode returns the process's exit code and true once it has
	// exited; (0, false) while still running.
	ExitCode() (code int, exited bool)
	// Terminate asks the process to end (e.g. SIGTERM, then SIGKILL on a
	// host-defined grace period).
	Terminate() error
}

// LoopState is the lifecycle state of a [Loop].
type LoopState int

const (
	// LoopStarting is the state before the first Update call.
	LoopStarting LoopState = iota
	// LoopRunning is the state after the first Update call, while the
	// process is alive and the PTY has not reported EOF.
	LoopRunning
	// LoopTerminated is the terminal state: no further reads are attempted
	// and WriteInput/Update become no-ops.
	LoopTerminated
)

// MaxChunksPerUpdate is the default bound on non-blocking PTY reads
// performed by one [Loop.Update] call, preventing a single call from
// starving the host's render loop when the child produces output faster
// than it can be drawn.
const MaxChunksPerUpdate = 10

// LoopOption configures a Loop during construction, matching the Terminal's
// functional-options idiom.
type LoopOption func(*Loop)

// WithReadChunkSize sets the buffer size used for each PTY read. Defaults to 4096.
func WithReadChunkSize(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.chunkSize = n
		}
	}
}

// WithMaxChunksPerUpdate overrides [MaxChunksPerUpdate] for one Loop.
func WithMaxChunksPerUpdate(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.maxChunks = n
		}
	}
}

// WithCRLFMode forces WriteInput to rewrite a bare '\r' byte into "\r\n",
// regardless of the Terminal's own ModeLineFeedNewLine bit. By default
// WriteInput already rewrites when the Terminal reports that mode set (it
// toggles at runtime via CSI 20h/20l); this override is for hosts driving a
// Terminal that has no such mode state of its own to consult.
func WithCRLFMode() LoopOption {
	return func(l *Loop) {
		l.crlfMode = true
	}
}

// WithLocalEcho enables the Loop echoing input bytes to the Terminal itself
// before the PTY's own output reflects them, for PTYs run without terminal
// line-discipline echo. Off by default; a real PTY normally echoes for itself.
func WithLocalEcho() LoopOption {
	return func(l *Loop) {
		l.localEcho = true
	}
}

// Loop drains a [PTY] into a [Terminal], forwards input back to it, tracks
// [Process] exit, and renders dirty rows to a [Display]. It adds no
// goroutines of its own: a host calls Update/Draw from its own render-rate
// callback, per spec's single-threaded cooperative model.
type Loop struct {
	term    *Terminal
	pty     PTY
	process Process
	display Display

	state    LoopState
	exitCode int

	chunkSize int
	maxChunks int
	crlfMode  bool
	localEcho bool

	buf []byte
}

// NewLoop creates a Loop over term, pty, and process, rendering to display
// (which may be nil for a headless drive with no rendering). Unlike the
// Terminal's own provider hooks (see [DisplayBridge]), the Loop keeps a
// direct, strong reference to display: pushing frames to it every Draw call
// is the Loop's entire purpose, so there is no benefit to a weak reference
// here, and a weak one would risk the Display being collected between
// Update and Draw calls.
func NewLoop(term *Terminal, pty PTY, process Process, display Display, opts ...LoopOption) *Loop {
	l := &Loop{
		term:      term,
		pty:       pty,
		process:   process,
		display:   display,
		state:     LoopStarting,
		chunkSize: 4096,
		maxChunks: MaxChunksPerUpdate,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.buf = make([]byte, l.chunkSize)
	if l.display != nil {
		l.display.Attach()
	}
	return l
}

// State returns the Loop's current lifecycle state.
func (l *Loop) State() LoopState {
	return l.state
}

// ExitCode returns the exit code recorded when the Loop terminated, and
// true; (0, false) while it has not terminated. The code is 0 when the Loop
// terminated for a PTY error or short write, or at PTY EOF before the
// Process reported an exit.
func (l *Loop) ExitCode() (int, bool) {
	if l.state != LoopTerminated {
		return 0, false
	}
	return l.exitCode, true
}

// Update drains up to MaxChunksPerUpdate non-blocking reads from the PTY
// into the Terminal, and checks the Process for exit. It transitions
// LoopStarting to LoopRunning on its first call, and to LoopTerminated on
// PTY EOF, a fatal PTY read error, or process exit. Calling Update after
// termination is a no-op that returns the current state.
func (l *Loop) Update() LoopState {
	if l.state == LoopTerminated {
		return l.state
	}
	l.state = LoopRunning

	for i := 0; i < l.maxChunks; i++ {
		n, err := l.pty.Read(l.buf)
		if n > 0 {
			l.term.Write(l.buf[:n])
		}
		if err == nil {
			continue
		}
		if errors.Is(err, ErrWouldBlock) {
			break
		}
		if errors.Is(err, io.EOF) {
			code := 0
			if l.process != nil {
				if c, exited := l.process.ExitCode(); exited {
					code = c
				}
			}
			l.terminate(code)
			return l.state
		}
		l.terminate(0)
		return l.state
	}

	if l.process != nil {
		if code, exited := l.process.ExitCode(); exited {
			l.terminate(code)
		}
	}

	return l.state
}

// WriteInput sends b to the PTY's input side. A bare '\r' is rewritten to
// "\r\n" when the Terminal currently has ModeLineFeedNewLine set (the mode
// CSI 20h/20l toggle at runtime) or WithCRLFMode forced it on at
// construction. When mayEcho is true and local echo is enabled, the bytes
// are also written directly to the Terminal. A short write (fewer bytes
// accepted than given) is treated as fatal and terminates the Loop, matching
// a dropped or closed PTY.
func (l *Loop) WriteInput(b []byte, mayEcho bool) error {
	if l.state == LoopTerminated {
		return fmt.Errorf("vtcore: write to terminated loop")
	}

	out := b
	if (l.crlfMode || l.term.HasMode(ModeLineFeedNewLine)) && bytes.ContainsRune(b, '\r') {
		out = bytes.ReplaceAll(b, []byte{'\r'}, []byte{'\r', '\n'})
	}

	n, err := l.pty.Write(out)
	if err != nil {
		l.terminate(0)
		return fmt.Errorf("vtcore: pty write: %w", err)
	}
	if n != len(out) {
		l.terminate(0)
		return fmt.Errorf("vtcore: short write to pty: wrote %d of %d bytes", n, len(out))
	}

	if mayEcho && l.localEcho {
		l.term.Write(b)
	}

	return nil
}

// Draw pushes dirty rows and the cursor to the Loop's Display, then clears
// the Terminal's row-level dirty tracking. A nil Display makes Draw a no-op
// beyond that clear.
func (l *Loop) Draw() {
	rows := l.term.primaryBuffer.DirtyRows()
	if l.term.activeBuffer == l.term.alternateBuffer {
		rows = l.term.alternateBuffer.DirtyRows()
	}

	if l.display == nil {
		l.clearDirty()
		return
	}

	l.display.Begin()
	for _, row := range rows {
		cells := make([]Cell, l.term.cols)
		for col := 0; col < l.term.cols; col++ {
			if c := l.term.Cell(row, col); c != nil {
				cells[col] = *c
			}
		}
		l.display.DrawLine(row, cells)
	}

	cursorRow, cursorCol := l.term.CursorPos()
	if cell := l.term.Cell(cursorRow, cursorCol); cell != nil && cell.IsWideSpacer() && cursorCol > 0 {
		cursorCol--
	}
	l.display.DrawCursor(cursorRow, cursorCol, l.term.CursorStyle(), l.term.CursorVisible())

	l.display.End()
	l.clearDirty()
}

func (l *Loop) clearDirty() {
	l.term.primaryBuffer.ClearDirtyRows()
	l.term.alternateBuffer.ClearDirtyRows()
}

// Terminate asks the Process to end and transitions the Loop to
// LoopTerminated immediately; further Update/WriteInput calls become no-ops.
func (l *Loop) Terminate() error {
	if l.state == LoopTerminated {
		return nil
	}
	var err error
	if l.process != nil {
		err = l.process.Terminate()
	}
	l.terminate(0)
	return err
}

func (l *Loop) terminate(code int) {
	l.exitCode = code
	l.state = LoopTerminated
	if l.display != nil {
		l.display.Detach()
	}
}
