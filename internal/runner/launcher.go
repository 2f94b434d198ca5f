package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultShell interprets task commands.
const DefaultShell = "sh"

// waitDelay bounds how long Wait keeps the stderr pipe open after the shell
// exits or the context is cancelled. Grandchildren that inherited the pipe
// would otherwise hold Wait open until they exit.
const waitDelay = 2 * time.Second

// Process is a started child process.
type Process interface {
	// Stdout returns the child's standard output stream. It must be read to
	// EOF (or until it fails) before Wait is called.
	Stdout() io.Reader

	// Wait blocks until the child exits and its streams are released.
	Wait() error

	// Stderr returns everything the child wrote to standard error.
	// It is complete only after Wait returns.
	Stderr() string
}

// Launcher starts a shell command as a child process.
type Launcher interface {
	Start(ctx context.Context, command string) (Process, error)
}

// ShellLauncher starts commands with "<shell> -c <command>".
type ShellLauncher struct {
	// Shell is the interpreter path or name. Empty means DefaultShell.
	Shell string
}

// Start launches command through the shell with stdout piped and stderr captured.
// Stdin is inherited so interactive prompts (for example sudo) still work.
func (l ShellLauncher) Start(ctx context.Context, command string) (Process, error) {
	shell := l.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Env = os.Environ()
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, stdout: stdout}
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	// Unblock the stdout reader if the context ends while a grandchild still
	// holds the write side of the pipe.
	p.stopClose = context.AfterFunc(ctx, func() {
		stdout.Close()
	})

	return p, nil
}

type execProcess struct {
	cmd       *exec.Cmd
	stdout    io.ReadCloser
	stderr    bytes.Buffer
	stopClose func() bool
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }

func (p *execProcess) Wait() error {
	defer p.stopClose()
	return p.cmd.Wait()
}

func (p *execProcess) Stderr() string { return p.stderr.String() }
