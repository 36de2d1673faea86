package vtcore

import (
	"errors"
	"os"
	"time"

	"github.com/creack/pty"
)

// FilePTY adapts an already-opened PTY file descriptor (as returned by
// [github.com/creack/pty]'s Start/Open) to the [PTY] interface. It does not
// spawn a process itself; process lifecycle stays a host responsibility.
//
// Reads are made non-blocking via a short read deadline: a real TTY device
// does not return io.EOF on an idle master, so FilePTY turns a deadline
// timeout into [ErrWouldBlock] rather than propagating it as an error.
type FilePTY struct {
	f            *os.File
	readDeadline time.Duration
}

// NewFilePTY wraps f. readDeadline controls how long each Read call may
// block before reporting ErrWouldBlock; 0 selects a 10ms default.
func NewFilePTY(f *os.File, readDeadline time.Duration) *FilePTY {
	if readDeadline <= 0 {
		readDeadline = 10 * time.Millisecond
	}
	return &FilePTY{f: f, readDeadline: readDeadline}
}

// Read implements [PTY.Read].
func (p *FilePTY) Read(b []byte) (int, error) {
	if err := p.f.SetReadDeadline(time.Now().Add(p.readDeadline)); err != nil {
		return p.f.Read(b)
	}

	n, err := p.f.Read(b)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return n, ErrWouldBlock
		}
	}
	return n, err
}

// Write implements [PTY.Write].
func (p *FilePTY) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

// Resize implements [PTY.Resize], setting the kernel's notion of the
// terminal window size so the child process sees SIGWINCH with the new
// dimensions.
func (p *FilePTY) Resize(rows, cols int) error {
	return pty.Setsize(p.f, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Close releases the underlying file descriptor.
func (p *FilePTY) Close() error {
	return p.f.Close()
}

var _ PTY = (*FilePTY)(nil)
