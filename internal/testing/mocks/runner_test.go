package mocks

import (
	"context"
	"sync"
	"testing"

	uncerrors "github.com/incredibit/unc/internal/errors"
	"github.com/incredibit/unc/internal/model"
)

func TestRunner_DefaultSucceeds(t *testing.T) {
	t.Parallel()
	m := NewRunner()

	res := m.Run(context.Background(), model.Task{Command: "true"})
	if !res.Succeeded {
		t.Errorf("Succeeded = false, want true")
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	if res.Task.Command != "true" {
		t.Errorf("Task.Command = %q, want %q", res.Task.Command, "true")
	}
}

func TestRunner_WithFailure(t *testing.T) {
	t.Parallel()
	m := NewRunner().WithFailure("false", 3)

	res := m.Run(context.Background(), model.Task{Command: "false"})
	if res.Succeeded {
		t.Fatal("Succeeded = true, want false")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if kind, ok := uncerrors.KindOf(res.Err); !ok || kind != uncerrors.KindExecution {
		t.Errorf("KindOf(Err) = %v, %v; want %v, true", kind, ok, uncerrors.KindExecution)
	}

	if !m.Run(context.Background(), model.Task{Command: "true"}).Succeeded {
		t.Error("unlisted command should succeed")
	}
}

func TestRunner_WithRunFunc(t *testing.T) {
	t.Parallel()
	var got model.Task
	m := NewRunner().
		WithFailure("x", 1).
		WithRunFunc(func(_ context.Context, task model.Task) model.Result {
			got = task
			return Succeeded(task)
		})

	res := m.Run(context.Background(), model.Task{Command: "x"})
	if !res.Succeeded {
		t.Error("RunFunc should override the failing set")
	}
	if got.Command != "x" {
		t.Errorf("RunFunc saw %q, want %q", got.Command, "x")
	}
}

func TestRunner_CallTracking(t *testing.T) {
	t.Parallel()
	m := NewRunner()

	for _, c := range []string{"a", "b", "c"} {
		m.Run(context.Background(), model.Task{Command: c})
	}

	if m.RunCount() != 3 {
		t.Errorf("RunCount() = %d, want 3", m.RunCount())
	}
	cmds := m.Commands()
	if len(cmds) != 3 || cmds[0] != "a" || cmds[1] != "b" || cmds[2] != "c" {
		t.Errorf("Commands() = %v, want [a b c]", cmds)
	}

	m.Reset()
	if m.RunCount() != 0 {
		t.Errorf("RunCount() after Reset = %d, want 0", m.RunCount())
	}
	if len(m.Calls()) != 0 {
		t.Errorf("Calls() after Reset = %v, want empty", m.Calls())
	}
}

func TestRunner_CallsReturnsCopy(t *testing.T) {
	t.Parallel()
	m := NewRunner()
	m.Run(context.Background(), model.Task{Command: "a"})

	calls := m.Calls()
	calls[0].Command = "mutated"

	if m.Calls()[0].Command != "a" {
		t.Error("Calls() should return a copy")
	}
}

func TestRunner_ConcurrentRuns(t *testing.T) {
	t.Parallel()
	m := NewRunner()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Run(context.Background(), model.Task{Command: "true"})
		}()
	}
	wg.Wait()

	if m.RunCount() != 20 {
		t.Errorf("RunCount() = %d, want 20", m.RunCount())
	}
	if len(m.Calls()) != 20 {
		t.Errorf("len(Calls()) = %d, want 20", len(m.Calls()))
	}
}
