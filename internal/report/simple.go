package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailsift/mailsift/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writeEmails(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.Result) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         MAILSIFT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:         %s\n", result.BaseOrigin))
	sb.WriteString(fmt.Sprintf("Pages Scanned:  %d\n", result.PagesScanned))
	sb.WriteString(fmt.Sprintf("Emails Found:   %d\n", result.EmailCount()))
	sb.WriteString(fmt.Sprintf("Elapsed:        %s\n", result.Elapsed.Round(time.Millisecond)))

	if result.Fast {
		sb.WriteString("Mode:           fast (contact-path seeding)\n")
	} else {
		sb.WriteString("Mode:           standard\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the applied budgets section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.Result) {
	if !w.verbose {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("APPLIED BUDGETS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  MAX PAGES:    %d\n", result.MaxPages))
	sb.WriteString(fmt.Sprintf("  MAX EMAILS:   %d\n", result.MaxEmails))
	sb.WriteString(fmt.Sprintf("  CONCURRENCY:  %d\n", result.Concurrency))
	sb.WriteString("\n")
}

// writeEmails writes the harvested addresses section.
func (w *SimpleWriter) writeEmails(sb *strings.Builder, result *model.Result) {
	if result.EmailCount() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("HARVESTED ADDRESSES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if result.EmailCount() == 0 {
		sb.WriteString("  No addresses found\n")
	} else {
		for _, addr := range result.Emails {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", addr))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by mailsift\n")
	sb.WriteString("https://github.com/mailsift/mailsift\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
