package apt

import (
	"bufio"
	"errors"
	"os"
	"os/exec"
	"syscall"
)

const maxLineLength = 1024 * 1024

// Process is a running mutation command.
// Lines must be drained before Wait can return.
type Process struct {
	lines    chan string
	done     chan struct{}
	exitCode int
	err      error

	cmd *exec.Cmd // nil for fake processes; set before the reader starts
}

// startProcess starts cmd with stdout and stderr sharing one pipe
func startProcess(cmd *exec.Cmd) (*Process, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, errors.Join(ErrCommand, err)
	}
	// The child holds its own copy of the write end
	w.Close()

	p := &Process{
		lines: make(chan string, 64),
		done:  make(chan struct{}),
		cmd:   cmd,
	}

	go func() {
		defer close(p.done)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineLength)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		close(p.lines)
		r.Close()

		p.exitCode, p.err = exitStatus(cmd.Wait())
	}()

	return p, nil
}

// exitStatus converts the result of cmd.Wait into an exit code.
// A non-zero exit is not an error; only failures to run or wait are.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Lines returns the output lines in the order they were written.
// The channel is closed when the process closes its output.
func (p *Process) Lines() <-chan string {
	return p.lines
}

// Wait blocks until the process exits and returns its exit code
func (p *Process) Wait() (int, error) {
	<-p.done
	return p.exitCode, p.err
}

// Exited reports whether the process has finished
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Terminate sends SIGTERM without waiting for the process to exit
func (p *Process) Terminate() {
	if p.Exited() {
		return
	}
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	_ = p.cmd.Process.Signal(syscall.SIGTERM)
}
