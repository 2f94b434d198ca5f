package runner

import (
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// shellNotFoundStatus is the exit status POSIX shells use when the command
// name cannot be found.
const shellNotFoundStatus = 127

// exitCoder is implemented by *exec.ExitError and by test doubles.
type exitCoder interface {
	ExitCode() int
}

// extractCommandName returns the executable a shell command line would run.
// For example, "sudo apt update" returns "sudo" and "LANG=C apt clean"
// returns "apt". Quoting is honored. Lines the word parser cannot handle
// (pipelines, command substitution) fall back to whitespace splitting.
func extractCommandName(command string) string {
	fields, err := shell.Fields(command, func(string) string { return "" })
	if err != nil {
		fields = strings.Fields(command)
	}
	for _, f := range fields {
		if isAssignment(f) {
			continue
		}
		return f
	}
	return ""
}

// isAssignment reports whether word is a leading NAME=value environment assignment.
func isAssignment(word string) bool {
	name, _, ok := strings.Cut(word, "=")
	return ok && syntax.ValidName(name)
}

// isNotFoundErr reports whether a start error means the executable is missing.
func isNotFoundErr(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// notFoundSuffixes end the diagnostic a shell prints for a missing command:
// "sh: 1: apt: not found" (dash, busybox) and
// "bash: line 1: apt: command not found" (bash).
var notFoundSuffixes = []string{": command not found", ": not found"}

// shellMissingName returns the command named in the last not-found diagnostic
// in a shell's stderr. A 127 exit without such a line did not come from a
// failed command lookup.
func shellMissingName(stderr string) (string, bool) {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		for _, suffix := range notFoundSuffixes {
			rest, ok := strings.CutSuffix(line, suffix)
			if !ok {
				continue
			}
			if idx := strings.LastIndex(rest, ": "); idx >= 0 {
				rest = rest[idx+2:]
			}
			if rest = strings.TrimSpace(rest); rest != "" {
				return rest, true
			}
		}
	}
	return "", false
}

// missingName picks the executable name to report for a start failure.
// Start errors name the shell itself, which is what is actually missing.
func missingName(err error, command string) string {
	var execErr *exec.Error
	if errors.As(err, &execErr) && execErr.Name != "" {
		return execErr.Name
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Path != "" {
		return pathErr.Path
	}
	return extractCommandName(command)
}
