package reporter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/csquid/internal/analyzer"
)

// HTMLReporter renders the Markdown report as a standalone HTML page
type HTMLReporter struct {
	w    io.Writer
	opts Options
	md   goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer, opts Options) *HTMLReporter {
	return &HTMLReporter{
		w:    w,
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Quality Report</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ddd; padding: 0.25rem 0.5rem; }
code { background: #f4f4f4; padding: 0 0.2rem; }
</style>
</head>
<body>
`

// Report writes the page
func (r *HTMLReporter) Report(res *analyzer.Result) error {
	var body bytes.Buffer
	if err := r.md.Convert(renderMarkdown(res, r.opts), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	if _, err := io.WriteString(r.w, htmlHead); err != nil {
		return err
	}
	if _, err := r.w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, "</body>\n</html>\n")
	return err
}
