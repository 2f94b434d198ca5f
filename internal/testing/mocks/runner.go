// Package mocks provides shared test doubles for unc packages.
package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	uncerrors "github.com/incredibit/unc/internal/errors"
	"github.com/incredibit/unc/internal/model"
)

// Runner implements sequencer.CommandRunner for testing.
// Use NewRunner() to create instances with a fluent builder API.
// By default every task succeeds.
type Runner struct {
	failing map[string]int

	// RunFunc is called by Run when set. It overrides the failing set.
	RunFunc func(ctx context.Context, task model.Task) model.Result

	// Call tracking (thread-safe)
	runCount int32
	mu       sync.Mutex
	calls    []model.Task
}

// NewRunner creates a mock runner on which every task succeeds.
func NewRunner() *Runner {
	return &Runner{failing: make(map[string]int)}
}

// WithFailure makes tasks whose command equals command exit with status code.
func (m *Runner) WithFailure(command string, code int) *Runner {
	m.failing[command] = code
	return m
}

// WithRunFunc sets the function called by Run.
func (m *Runner) WithRunFunc(fn func(ctx context.Context, task model.Task) model.Result) *Runner {
	m.RunFunc = fn
	return m
}

// Run records the call and returns the configured outcome.
func (m *Runner) Run(ctx context.Context, task model.Task) model.Result {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.calls = append(m.calls, task)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, task)
	}
	if code, ok := m.failing[task.Command]; ok {
		return Failed(task, code)
	}
	return Succeeded(task)
}

// Test inspection methods

// RunCount returns the number of times Run was called.
func (m *Runner) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns the tasks passed to Run, in call order.
func (m *Runner) Calls() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Task, len(m.calls))
	copy(result, m.calls)
	return result
}

// Commands returns the commands passed to Run, in call order.
func (m *Runner) Commands() []string {
	calls := m.Calls()
	result := make([]string, len(calls))
	for i, c := range calls {
		result[i] = c.Command
	}
	return result
}

// Reset clears call tracking state.
func (m *Runner) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

// Succeeded builds a successful result for task.
func Succeeded(task model.Task) model.Result {
	return model.Result{Task: task, Succeeded: true}
}

// Failed builds the result of task exiting with a non-zero status.
func Failed(task model.Task, code int) model.Result {
	return model.Result{
		Task:       task,
		Diagnostic: "boom\n",
		ExitCode:   code,
		Err:        uncerrors.ExecutionFailure(task.Command, code),
	}
}
