package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/mailsift/mailsift/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeBudgets(md, result)
	w.writeEmails(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.Result) {
	md.H1("Mailsift Report")
	md.PlainText("")

	mode := "standard"
	if result.Fast {
		mode = "fast"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + result.BaseOrigin + "`"},
			{"Pages Scanned", strconv.Itoa(result.PagesScanned)},
			{"Emails Found", strconv.Itoa(result.EmailCount())},
			{"Elapsed", result.Elapsed.Round(time.Millisecond).String()},
			{"Mode", mode},
		},
	})
	md.PlainText("")
}

// writeBudgets writes the applied budgets section.
func (w *MarkdownWriter) writeBudgets(md *markdown.Markdown, result *model.Result) {
	md.H2("Applied Budgets")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Budget", "Value"},
		Rows: [][]string{
			{"Max Pages", strconv.Itoa(result.MaxPages)},
			{"Max Emails", strconv.Itoa(result.MaxEmails)},
			{"Concurrency", strconv.Itoa(result.Concurrency)},
		},
	})
	md.PlainText("")
}

// writeEmails writes the harvested addresses section.
func (w *MarkdownWriter) writeEmails(md *markdown.Markdown, result *model.Result) {
	md.H2("Harvested Addresses")
	md.PlainText("")

	if result.EmailCount() == 0 {
		md.PlainText("No addresses found.")
		md.PlainText("")
		md.Note("Try the fast mode or a larger page budget if the site is known to publish contact addresses.")
		md.PlainText("")
		return
	}

	rows := make([][]string, result.EmailCount())
	for i, addr := range result.Emails {
		rows[i] = []string{strconv.Itoa(i + 1), "`" + addr + "`"}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Address"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.EmailCount() >= result.MaxEmails {
		md.Tipf("The email budget of %d was reached; a larger budget may surface more addresses.", result.MaxEmails)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [mailsift](https://github.com/mailsift/mailsift)*")
}
