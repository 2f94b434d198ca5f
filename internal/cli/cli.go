// Package cli provides the command-line entry point for unc.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/incredibit/unc/internal/config"
	"github.com/incredibit/unc/internal/errors"
	"github.com/incredibit/unc/internal/logging"
	"github.com/incredibit/unc/internal/model"
	"github.com/incredibit/unc/internal/output"
	"github.com/incredibit/unc/internal/runner"
	"github.com/incredibit/unc/internal/sequencer"
	"github.com/incredibit/unc/internal/version"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

const (
	bannerTitle    = "unc"
	bannerSubtitle = "Update and Clean Your System"
	authorTag      = "@incredibit"

	widthFlag = 14
)

// App holds the collaborators of one CLI invocation.
// Nil fields are filled with production defaults by Run.
type App struct {
	Out *output.Writer

	// LogOutput receives diagnostic logs. Defaults to os.Stderr.
	LogOutput io.Writer

	// Tasks loads the task list. Defaults to config.DefaultTasks.
	Tasks func() ([]model.Task, error)

	// Runner executes each task. Defaults to a runner.Runner on Out.
	Runner sequencer.CommandRunner

	// Pause is the delay between tasks.
	Pause time.Duration
}

// Options holds parsed flags.
type Options struct {
	Verbose bool
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{Pause: sequencer.DefaultPause}
	return app.Run(ctx, args)
}

// Run executes the CLI with the given arguments and returns an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	a.applyDefaults()

	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			a.printUsage()
			return errors.ExitSuccess
		case "--version", "version":
			a.Out.Println("unc %s", version.Resolve(Version))
			return errors.ExitSuccess
		}
	}

	opts, err := parseFlags(args)
	if err != nil {
		a.Out.ErrorPrefix("%v", err)
		a.Out.Errorln("Run 'unc --help' for usage.")
		return errors.GetExitCode(err)
	}

	log := logging.New(a.LogOutput, opts.Verbose)
	defer func() { _ = log.Sync() }()

	tasks, err := a.Tasks()
	if err != nil {
		if _, ok := errors.KindOf(err); !ok {
			err = errors.WrapConfig(err, "failed to load task catalog")
		}
		a.Out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	r := a.Runner
	if r == nil {
		r = runner.New(a.Out, log)
	}
	seq := sequencer.New(r, a.Out, log)
	seq.SetPause(a.Pause)

	a.Out.Banner(bannerTitle, bannerSubtitle)
	summary := seq.Run(ctx, tasks)
	a.Out.SignOff(authorTag)

	log.Debug("run finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("total", summary.Total),
		zap.Duration("duration", summary.TotalDuration))

	if !summary.AllSucceeded() {
		return errors.ExitTaskFailure
	}
	return errors.ExitSuccess
}

func (a *App) applyDefaults() {
	if a.Out == nil {
		a.Out = output.New()
	}
	if a.LogOutput == nil {
		a.LogOutput = os.Stderr
	}
	if a.Tasks == nil {
		a.Tasks = config.DefaultTasks
	}
}

// parseFlags manually parses flags from arguments.
// unc takes no positional arguments, so anything unrecognized is an error.
func parseFlags(args []string) (*Options, error) {
	opts := &Options{}
	for _, arg := range args {
		switch arg {
		case "-v", "--verbose":
			opts.Verbose = true
		case "-h", "--help", "help", "--version", "version":
			return nil, errors.Configf("%s must be the first argument", arg)
		default:
			return nil, errors.Configf("unknown argument %q", arg)
		}
	}
	return opts, nil
}

func (a *App) printUsage() {
	w := a.Out

	w.HelpTitle("unc - update and clean your system")

	w.HelpSection("Usage:")
	w.HelpText("unc [flags]   Run every maintenance task in order")

	w.HelpSection("Tasks:")
	if tasks, err := a.Tasks(); err != nil {
		w.HelpText(fmt.Sprintf("(task catalog unavailable: %v)", err))
	} else {
		for i, t := range tasks {
			w.HelpText(fmt.Sprintf("%d. %-40s %s", i+1, t.Label(), t.Command))
		}
	}

	w.HelpSection("Flags:")
	w.HelpFlag("-v, --verbose", "Log command details to stderr", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)
	w.HelpFlag("--version", "Show version", widthFlag)

	w.HelpSection("Exit status:")
	w.HelpText(fmt.Sprintf("%d  every task succeeded", errors.ExitSuccess))
	w.HelpText(fmt.Sprintf("%d  at least one task failed", errors.ExitTaskFailure))
	w.HelpText(fmt.Sprintf("%d  invalid arguments or task catalog", errors.ExitUsageError))
	w.Println("")
}
