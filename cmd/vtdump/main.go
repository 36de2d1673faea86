// Command vtdump drains a real PTY running the user's shell through a
// headless vtcore.Terminal and prints the resulting screen to stdout once
// the shell exits. It exercises the public API end to end; it does no
// rendering of its own and is not a terminal emulator frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/oxcart-term/vtcore"
)

// cmdProcess adapts an *exec.Cmd to vtcore.Process.
type cmdProcess struct {
	cmd *exec.Cmd

	mu       sync.Mutex
	exited   bool
	exitCode int
}

func newCmdProcess(cmd *exec.Cmd) *cmdProcess {
	p := &cmdProcess{cmd: cmd}
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		defer p.mu.Unlock()
		p.exited = true
		if exitErr, ok := err.(*exec.ExitError); ok {
			p.exitCode = exitErr.ExitCode()
		}
	}()
	return p
}

func (p *cmdProcess) ExitCode() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, p.exited
}

func (p *cmdProcess) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func main() {
	rows := flag.Int("rows", 24, "terminal rows")
	cols := flag.Int("cols", 80, "terminal columns")
	timeout := flag.Duration("timeout", 0, "stop draining after this long (0 = run until the shell exits)")
	flag.Parse()

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	args := flag.Args()
	var cmd *exec.Cmd
	if len(args) > 0 {
		cmd = exec.Command(args[0], args[1:]...)
	} else {
		cmd = exec.Command(shell)
	}

	ptyFile, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(*rows), Cols: uint16(*cols)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtdump: start pty: %v\n", err)
		os.Exit(1)
	}
	defer ptyFile.Close()

	term := vtcore.New(
		vtcore.WithSize(*rows, *cols),
		vtcore.WithDiagnostics(vtcore.StdDiagnostics{}),
	)

	filePTY := vtcore.NewFilePTY(ptyFile, 0)
	proc := newCmdProcess(cmd)
	loop := vtcore.NewLoop(term, filePTY, proc, nil)

	deadline := time.Time{}
	if *timeout > 0 {
		deadline = time.Now().Add(*timeout)
	}

	for loop.Update() == vtcore.LoopRunning {
		if !deadline.IsZero() && time.Now().After(deadline) {
			loop.Terminate()
			break
		}
	}

	for row := 0; row < term.Rows(); row++ {
		fmt.Println(term.LineContent(row))
	}

	if code, exited := loop.ExitCode(); exited && code != 0 {
		os.Exit(code)
	}
}
