// Package unc provides public constants for scripts and schedulers that
// invoke the unc maintenance CLI.
package unc

// Exit codes returned by the unc CLI.
// These constants allow wrappers (cron jobs, systemd units) to check the
// outcome of a maintenance run symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates every maintenance task completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates at least one maintenance task failed.
	ExitFailure = 1

	// ExitUsageError indicates invalid arguments or an invalid built-in task catalog.
	ExitUsageError = 2
)
