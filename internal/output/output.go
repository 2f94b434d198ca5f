// Package output provides formatted console output for the maintenance run.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// terminalWidth is the width the banner is centered in.
	terminalWidth = 80

	// maxLabelWidth bounds the task label shown next to the progress bar.
	maxLabelWidth = 30

	progressBarWidth = 30
)

// Styles.
var (
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleBlue   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleDim    = lipgloss.NewStyle().Faint(true)
)

// Semantic roles.
var (
	styleBanner    = styleGreen.Bold(true)
	styleSubtitle  = styleRed
	styleHeading   = styleYellow.Bold(true)
	styleExecuting = styleBlue.Bold(true)
	styleErrorHead = styleRed.Bold(true)
	styleDone      = styleGreen.Bold(true)
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	bar   progress.Model
}

// New creates a new Writer on stdout/stderr, with color when stdout is a terminal.
func New() *Writer {
	return NewWithWriters(os.Stdout, os.Stderr, isTerminal())
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
		bar: progress.New(
			progress.WithSolidFill("#00ff00"),
			progress.WithWidth(progressBarWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// paint renders text with style when color is enabled.
func (w *Writer) paint(style lipgloss.Style, text string) string {
	if !w.color {
		return text
	}
	return style.Render(text)
}

// Banner prints the centered program title and subtitle.
func (w *Writer) Banner(title, subtitle string) {
	title = cases.Upper(language.English).String(title)
	w.Println("%s%s", center(title), w.paint(styleBanner, title))
	w.Println("%s%s", center(subtitle), w.paint(styleSubtitle, subtitle))
	w.Println("")
}

// SequenceStart announces the start of the maintenance run.
func (w *Writer) SequenceStart() {
	w.Println("")
	w.Println("%s", w.paint(styleHeading, "Starting system maintenance tasks..."))
}

// TaskStart prints the "running task N of M" notice.
func (w *Writer) TaskStart(num, total int, description string) {
	w.Println("")
	w.Println("%s", w.paint(styleYellow, fmt.Sprintf("Running task %d of %d: %s", num, total, description)))
}

// Progress prints the overall progress line: a bar, the done/total count,
// the truncated label of the current task and an optional status postfix.
func (w *Writer) Progress(done, total int, label, postfix string) {
	label = TruncateLabel(label)
	var b strings.Builder
	if w.color {
		percent := 0.0
		if total > 0 {
			percent = float64(done) / float64(total)
		}
		b.WriteString(w.bar.ViewAs(percent))
		fmt.Fprintf(&b, " %d/%d %s", done, total, w.paint(styleYellow, label))
	} else {
		fmt.Fprintf(&b, "[%d/%d] %s", done, total, label)
	}
	if postfix != "" {
		fmt.Fprintf(&b, " | %s", postfix)
	}
	w.Println("%s", b.String())
}

// Executing prints the per-command header.
func (w *Writer) Executing(label string) {
	w.Println("")
	w.Println("%s", w.paint(styleExecuting, "--> Executing: "+label))
}

// StreamLine forwards one line of child output verbatim.
func (w *Writer) StreamLine(line string) {
	io.WriteString(w.out, line+"\n")
}

// CommandSucceeded prints the success notice for a command.
func (w *Writer) CommandSucceeded(command string) {
	w.Println("%s", w.paint(styleGreen, fmt.Sprintf("Command '%s' completed successfully.", command)))
}

// CommandFailed prints the failed command and its captured stderr.
func (w *Writer) CommandFailed(command, stderr string) {
	w.Errorln("%s", w.paint(styleErrorHead, fmt.Sprintf("Error during '%s':", command)))
	if stderr == "" {
		return
	}
	io.WriteString(w.err, stderr)
	if !strings.HasSuffix(stderr, "\n") {
		io.WriteString(w.err, "\n")
	}
}

// CommandNotFound prints the missing-executable diagnostic.
func (w *Writer) CommandNotFound(name string) {
	w.Errorln("%s", w.paint(styleRed, fmt.Sprintf("Error: Command '%s' not found. Is it installed and in your PATH?", name)))
}

// UnexpectedFault prints a diagnostic for any other runner fault.
func (w *Writer) UnexpectedFault(command string, details string) {
	w.Errorln("%s", w.paint(styleRed, fmt.Sprintf("An unexpected error occurred while running command: '%s'", command)))
	w.Errorln("%s", w.paint(styleRed, "Details: "+details))
}

// SequenceComplete prints the end-of-run heading.
func (w *Writer) SequenceComplete() {
	w.Println("")
	w.Println("%s", w.paint(styleDone, "System maintenance complete!"))
}

// AllClear prints the message shown when every task succeeded.
func (w *Writer) AllClear(total int) {
	w.Println("%s", w.paint(styleGreen, fmt.Sprintf("All %d tasks finished without errors.", total)))
}

// PartialSuccess prints the message shown when some tasks failed.
func (w *Writer) PartialSuccess(succeeded, total int) {
	w.Println("%s", w.paint(styleYellow, fmt.Sprintf(
		"Finished with %d out of %d tasks successful. Please review errors above.", succeeded, total)))
}

// SummarySectionLabel prints a label for a summary section (e.g., "Failed tasks:").
func (w *Writer) SummarySectionLabel(label string) {
	w.Println("  %s", w.paint(styleDim, label))
}

// SummaryAction prints one task line with status indicator, name, duration, and optional error.
func (w *Writer) SummaryAction(name string, success bool, duration time.Duration, errMsg string) {
	d := FormatDuration(duration)
	if w.color {
		if success {
			w.Print("    %s %-36s %s", w.paint(styleGreen, "✓"), name, w.paint(styleDim, d))
		} else {
			w.Print("    %s %-36s %s", w.paint(styleRed, "✗"), name, w.paint(styleDim, d))
			if errMsg != "" {
				w.Print("  %s", w.paint(styleDim, "("+errMsg+")"))
			}
		}
	} else {
		if success {
			w.Print("    + %-36s %s", name, d)
		} else {
			w.Print("    x %-36s %s", name, d)
			if errMsg != "" {
				w.Print("  (%s)", errMsg)
			}
		}
	}
	w.Print("\n")
}

// SignOff prints the closing thank-you line and the author tag.
func (w *Writer) SignOff(tag string) {
	w.Println("")
	w.Println("%s", w.paint(styleBlue, "Thank you for using this script!"))
	if !w.color {
		w.Println("%s", tag)
		return
	}
	var b strings.Builder
	i := 0
	for _, r := range tag {
		if i%2 == 0 {
			b.WriteString(styleBlue.Render(string(r)))
		} else {
			b.WriteString(styleGreen.Render(string(r)))
		}
		i++
	}
	w.Println("%s", b.String())
}

// ErrorPrefix prints an error message with the unc prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s %s", w.paint(styleRed, "unc:"), msg)
}

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	w.Println("%s", w.paint(styleBanner, title))
}

// HelpSection formats a section header (e.g., "Flags:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	w.Println("%s", w.paint(styleHeading, title))
}

// HelpFlag formats a flag with its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	padding := width - len(name)
	if padding < 0 {
		padding = 0
	}
	w.Println("  %s%s  %s", w.paint(styleYellow, name), strings.Repeat(" ", padding), w.paint(styleDim, description))
}

// HelpText prints an indented plain help line.
func (w *Writer) HelpText(text string) {
	w.Println("  %s", text)
}

// TruncateLabel shortens a label to maxLabelWidth cells, appending "..."
// when anything was cut.
func TruncateLabel(label string) string {
	if ansi.StringWidth(label) <= maxLabelWidth {
		return label
	}
	return ansi.Truncate(label, maxLabelWidth, "") + "..."
}

// FormatDuration renders a duration rounded for summaries.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// center returns the left padding that centers text in terminalWidth columns.
func center(text string) string {
	pad := (terminalWidth - ansi.StringWidth(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad)
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
