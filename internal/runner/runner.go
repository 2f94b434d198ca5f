// Package runner executes a single maintenance command in a child shell,
// streaming its standard output live and classifying how it ended.
//
// Run never returns an error and never panics: every failure is reported
// on the output writer and folded into a model.Result with Succeeded=false.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"

	uncerrors "github.com/incredibit/unc/internal/errors"
	"github.com/incredibit/unc/internal/logging"
	"github.com/incredibit/unc/internal/model"
	"github.com/incredibit/unc/internal/output"
)

// Runner executes shell commands one at a time.
type Runner struct {
	launcher Launcher
	out      *output.Writer
	log      *zap.Logger
}

// New creates a Runner that launches commands with ShellLauncher.
// A nil logger disables diagnostic logging.
func New(out *output.Writer, log *zap.Logger) *Runner {
	return &Runner{
		launcher: ShellLauncher{},
		out:      out,
		log:      logging.OrNop(log).Named("runner"),
	}
}

// SetLauncher replaces the process launcher.
func (r *Runner) SetLauncher(l Launcher) {
	r.launcher = l
}

// Run executes task.Command, forwarding each stdout line to the output
// writer as soon as it is produced. Stderr is captured and printed only
// if the command fails. The child is reaped before Run returns.
func (r *Runner) Run(ctx context.Context, task model.Task) (res model.Result) {
	start := time.Now()
	command := strings.TrimSpace(task.Command)

	defer func() {
		if p := recover(); p != nil {
			res = r.unexpected(task, command, cerr.AssertionFailedf("panic while running command: %v", p))
		}
		res.Duration = time.Since(start)
		r.logResult(res)
	}()

	r.out.Executing(task.Label())

	if command == "" {
		return r.unexpected(task, command, cerr.New("empty command"))
	}

	r.log.Debug("starting command", zap.String("command", command))

	proc, err := r.launcher.Start(ctx, command)
	if err != nil {
		if isNotFoundErr(err) {
			return r.notFound(task, command, missingName(err, command), -1, "", err)
		}
		return r.unexpected(task, command, cerr.Wrap(err, "start command"))
	}

	streamErr := r.stream(proc.Stdout())
	waitErr := proc.Wait()

	if streamErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return r.unexpected(task, command, cerr.Wrap(ctxErr, "interrupted"))
		}
		return r.unexpected(task, command, cerr.Wrap(streamErr, "read command output"))
	}

	if waitErr == nil {
		r.out.CommandSucceeded(command)
		return model.Result{Task: task, Succeeded: true}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return r.unexpected(task, command, cerr.Wrap(ctxErr, "interrupted"))
	}

	var ec exitCoder
	if errors.As(waitErr, &ec) && ec.ExitCode() >= 0 {
		code, stderr := ec.ExitCode(), proc.Stderr()
		if code == shellNotFoundStatus {
			if name, ok := shellMissingName(stderr); ok {
				return r.notFound(task, command, name, code, stderr, nil)
			}
		}
		return r.executionFailure(task, command, code, stderr)
	}

	return r.unexpected(task, command, cerr.Wrap(waitErr, "wait for command"))
}

// stream copies r line by line to the output writer until EOF.
// On a read error the remainder is drained so the child never blocks on a
// full pipe while Wait is pending.
func (r *Runner) stream(src io.Reader) error {
	br := bufio.NewReader(src)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			r.out.StreamLine(strings.TrimRight(line, "\r\n"))
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		_, _ = io.Copy(io.Discard, src)
		return err
	}
}

func (r *Runner) executionFailure(task model.Task, command string, code int, stderr string) model.Result {
	r.out.CommandFailed(command, stderr)
	return model.Result{
		Task:       task,
		Diagnostic: stderr,
		ExitCode:   code,
		Err:        uncerrors.ExecutionFailure(command, code),
	}
}

// notFound reports a missing executable. shellMsg is the shell's own
// diagnostic when the lookup failed inside the shell.
func (r *Runner) notFound(task model.Task, command, name string, code int, shellMsg string, cause error) model.Result {
	r.out.CommandNotFound(name)
	diag := fmt.Sprintf("Command '%s' not found. Is it installed and in your PATH?", name)
	if shellMsg != "" {
		diag += "\n" + strings.TrimRight(shellMsg, "\n")
	}
	return model.Result{
		Task:       task,
		Diagnostic: diag,
		ExitCode:   code,
		Err:        uncerrors.NotFound(command, name, cause),
	}
}

func (r *Runner) unexpected(task model.Task, command string, cause error) model.Result {
	r.out.UnexpectedFault(command, cause.Error())
	return model.Result{
		Task:       task,
		Diagnostic: cause.Error(),
		ExitCode:   -1,
		Err:        uncerrors.Unexpected(command, cause),
	}
}

func (r *Runner) logResult(res model.Result) {
	fields := []zap.Field{
		zap.String("command", res.Task.Command),
		zap.Duration("duration", res.Duration),
	}
	if res.Succeeded {
		r.log.Debug("command succeeded", fields...)
		return
	}
	if kind, ok := uncerrors.KindOf(res.Err); ok {
		fields = append(fields, zap.Stringer("kind", kind))
	}
	fields = append(fields, zap.Int("exit_code", res.ExitCode), zap.Error(res.Err))
	r.log.Debug("command failed", fields...)
}
