// Package sequencer runs an ordered list of maintenance tasks one after
// another, reporting progress and tallying how many succeeded.
package sequencer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/incredibit/unc/internal/logging"
	"github.com/incredibit/unc/internal/model"
	"github.com/incredibit/unc/internal/output"
)

// DefaultPause is the delay between tasks used by the command-line tool.
const DefaultPause = 500 * time.Millisecond

// CommandRunner executes one task and reports its outcome.
// *runner.Runner satisfies it.
type CommandRunner interface {
	Run(ctx context.Context, task model.Task) model.Result
}

// Sequencer drives a CommandRunner over a task list.
type Sequencer struct {
	runner CommandRunner
	out    *output.Writer
	log    *zap.Logger
	pause  time.Duration
}

// New creates a Sequencer with no pause between tasks.
func New(r CommandRunner, out *output.Writer, log *zap.Logger) *Sequencer {
	return &Sequencer{
		runner: r,
		out:    out,
		log:    logging.OrNop(log).Named("sequencer"),
	}
}

// SetPause sets the delay inserted after each task except the last.
func (s *Sequencer) SetPause(d time.Duration) {
	s.pause = d
}

// Run executes tasks in order. A failing task never stops the run; every
// task is attempted exactly once. The returned summary covers only this call.
func (s *Sequencer) Run(ctx context.Context, tasks []model.Task) model.Summary {
	start := time.Now()
	total := len(tasks)
	summary := model.Summary{
		Results: make([]model.Result, 0, total),
		Total:   total,
	}

	s.out.SequenceStart()

	for i, task := range tasks {
		label := task.Label()
		s.out.TaskStart(i+1, total, label)
		s.out.Progress(i, total, label, "")

		res := s.runner.Run(ctx, task)
		summary.Results = append(summary.Results, res)
		if res.Succeeded {
			summary.Succeeded++
		}
		s.logResult(i+1, total, res)

		s.out.Progress(i+1, total, label, postfix(res, summary.Succeeded, total))

		if i < total-1 {
			s.wait(ctx)
		}
	}

	summary.TotalDuration = time.Since(start)
	s.report(summary)
	return summary
}

// postfix describes the task that just finished. A success after an
// earlier failure shows the tally again.
func postfix(res model.Result, succeeded, total int) string {
	if !res.Succeeded {
		return "Errors encountered!"
	}
	return fmt.Sprintf("Successful: %d/%d", succeeded, total)
}

func (s *Sequencer) wait(ctx context.Context) {
	if s.pause <= 0 {
		return
	}
	t := time.NewTimer(s.pause)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *Sequencer) report(summary model.Summary) {
	s.out.SequenceComplete()
	if summary.AllSucceeded() {
		s.out.AllClear(summary.Total)
		return
	}
	s.out.PartialSuccess(summary.Succeeded, summary.Total)

	s.out.Println("")
	s.out.SummarySectionLabel("Failed tasks:")
	for _, res := range summary.FailedResults() {
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
		}
		s.out.SummaryAction(output.TruncateLabel(res.Task.Label()), false, res.Duration, msg)
	}
}

func (s *Sequencer) logResult(num, total int, res model.Result) {
	fields := []zap.Field{
		zap.Int("task", num),
		zap.Int("total", total),
		zap.String("command", res.Task.Command),
		zap.Bool("succeeded", res.Succeeded),
		zap.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	s.log.Info("task finished", fields...)
}
