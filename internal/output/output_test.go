package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := NewWithWriters(stdout, stderr, false)
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	assert.NotNil(t, w.out)
	assert.NotNil(t, w.err)
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	assert.Equal(t, "hello world\n", stdout.String())
}

func TestWriter_Errorln(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Errorln("error %d", 42)

	assert.Equal(t, "error 42\n", stderr.String())
}

func TestWriter_StreamLine_Verbatim(t *testing.T) {
	w, stdout, _ := newTestWriter()

	// Percent signs in child output must not be treated as format verbs.
	w.StreamLine("Progress: 100% [Working]")

	assert.Equal(t, "Progress: 100% [Working]\n", stdout.String())
}

func TestWriter_Banner(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Banner("unc", "Update and Clean Your System")

	lines := strings.Split(stdout.String(), "\n")
	assert.Equal(t, strings.Repeat(" ", 38)+"UNC", lines[0])
	assert.Equal(t, strings.Repeat(" ", 26)+"Update and Clean Your System", lines[1])
}

func TestWriter_TaskStart(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.TaskStart(2, 5, "Upgrading installed packages")

	assert.Equal(t, "\nRunning task 2 of 5: Upgrading installed packages\n", stdout.String())
}

func TestWriter_Progress(t *testing.T) {
	tests := []struct {
		name    string
		done    int
		total   int
		label   string
		postfix string
		want    string
	}{
		{"no postfix", 0, 5, "Updating package lists", "", "[0/5] Updating package lists\n"},
		{"with postfix", 3, 5, "Cleaning", "Successful: 3/5", "[3/5] Cleaning | Successful: 3/5\n"},
		{
			"long label truncated", 1, 5, "Cleaning up downloaded package files", "Errors encountered!",
			"[1/5] Cleaning up downloaded package... | Errors encountered!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.Progress(tt.done, tt.total, tt.label, tt.postfix)
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestWriter_Progress_Color(t *testing.T) {
	stdout := &bytes.Buffer{}
	w := NewWithWriters(stdout, &bytes.Buffer{}, true)

	w.Progress(2, 4, "Removing unused packages", "Successful: 2/4")

	got := stdout.String()
	assert.Contains(t, got, "2/4")
	assert.Contains(t, got, "Removing unused packages")
	assert.Contains(t, got, "Successful: 2/4")
}

func TestWriter_Progress_ZeroTotal(t *testing.T) {
	stdout := &bytes.Buffer{}
	w := NewWithWriters(stdout, &bytes.Buffer{}, true)

	assert.NotPanics(t, func() { w.Progress(0, 0, "nothing", "") })
}

func TestWriter_CommandMessages(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Executing("Updating package lists")
	w.CommandSucceeded("sudo apt update")
	w.CommandFailed("sudo apt clean", "E: Could not open lock file")
	w.CommandNotFound("nosuchtool")
	w.UnexpectedFault("sudo updatedb", "read |0: file already closed")

	assert.Equal(t,
		"\n--> Executing: Updating package lists\n"+
			"Command 'sudo apt update' completed successfully.\n",
		stdout.String())
	assert.Equal(t,
		"Error during 'sudo apt clean':\n"+
			"E: Could not open lock file\n"+
			"Error: Command 'nosuchtool' not found. Is it installed and in your PATH?\n"+
			"An unexpected error occurred while running command: 'sudo updatedb'\n"+
			"Details: read |0: file already closed\n",
		stderr.String())
}

func TestWriter_CommandFailed_KeepsTrailingNewline(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.CommandFailed("false", "boom\n")

	assert.Equal(t, "Error during 'false':\nboom\n", stderr.String())
}

func TestWriter_CommandFailed_EmptyStderr(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.CommandFailed("false", "")

	assert.Equal(t, "Error during 'false':\n", stderr.String())
}

func TestWriter_Summary(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SequenceComplete()
	w.AllClear(5)
	w.PartialSuccess(4, 5)

	assert.Equal(t,
		"\nSystem maintenance complete!\n"+
			"All 5 tasks finished without errors.\n"+
			"Finished with 4 out of 5 tasks successful. Please review errors above.\n",
		stdout.String())
}

func TestWriter_SummaryAction(t *testing.T) {
	tests := []struct {
		name     string
		success  bool
		duration time.Duration
		errMsg   string
		want     string
	}{
		{"success", true, 1500 * time.Millisecond, "", "    + " + pad("Updating package lists") + " 1.5s\n"},
		{"failure with error", false, 20 * time.Millisecond, "exit 100", "    x " + pad("Updating package lists") + " 20ms  (exit 100)\n"},
		{"failure without error", false, 0, "", "    x " + pad("Updating package lists") + " 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.SummaryAction("Updating package lists", tt.success, tt.duration, tt.errMsg)
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func pad(s string) string {
	return s + strings.Repeat(" ", 36-len(s))
}

func TestWriter_SignOff(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SignOff("@incredibit")

	assert.Equal(t, "\nThank you for using this script!\n@incredibit\n", stdout.String())
}

func TestWriter_SignOff_Color(t *testing.T) {
	stdout := &bytes.Buffer{}
	w := NewWithWriters(stdout, &bytes.Buffer{}, true)

	w.SignOff("@inc")

	got := stdout.String()
	for _, r := range "@inc" {
		assert.Contains(t, got, string(r))
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("unknown argument %q", "--bogus")

	assert.Equal(t, "unc: unknown argument \"--bogus\"\n", stderr.String())
}

func TestWriter_Help(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.HelpTitle("unc - update and clean your system")
	w.HelpSection("Flags:")
	w.HelpFlag("-v, --verbose", "Log debug detail", 16)
	w.HelpText("unc")

	assert.Equal(t,
		"unc - update and clean your system\n"+
			"\nFlags:\n"+
			"  -v, --verbose     Log debug detail\n"+
			"  unc\n",
		stdout.String())
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "short"},
		{strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"Cleaning up downloaded package files", "Cleaning up downloaded package..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateLabel(tt.in))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond+400*time.Microsecond))
	assert.Equal(t, "2.3s", FormatDuration(2340*time.Millisecond))
}
