// Package model provides the data types shared by the runner, the sequencer
// and the output layer. It exists so those packages can exchange results
// without importing each other.
package model

import "time"

// Task is one unit of maintenance work: a shell command and the text shown
// to the user while it runs.
type Task struct {
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
}

// Label returns the description, or the command when no description is set.
func (t Task) Label() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Command
}

// Result is the outcome of running a single task.
type Result struct {
	Task      Task
	Succeeded bool
	// Diagnostic holds the text reported for a failure: captured stderr for
	// a non-zero exit, or a description of the fault otherwise.
	Diagnostic string
	ExitCode   int
	Duration   time.Duration
	// Err is nil on success and an *errors.UncError otherwise.
	Err error
}

// Summary aggregates the results of one pass over a task list.
type Summary struct {
	Results       []Result
	Succeeded     int
	Total         int
	TotalDuration time.Duration
}

// AllSucceeded reports whether every task in the run succeeded.
func (s *Summary) AllSucceeded() bool {
	return s.Succeeded == s.Total
}

// Failed returns the number of tasks that did not succeed.
func (s *Summary) Failed() int {
	return s.Total - s.Succeeded
}

// FailedResults returns the results of the tasks that did not succeed, in run order.
func (s *Summary) FailedResults() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.Succeeded {
			failed = append(failed, r)
		}
	}
	return failed
}
