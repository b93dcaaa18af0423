// Package analyzer runs the per-file pipeline (decode, lex, preprocess,
// parse, walk) and fans it out over a project on a bounded worker pool.
package analyzer

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/metrics"
	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/visit"
)

// Options controls the analysis of every file
type Options struct {
	Parse   parser.Options
	Metrics metrics.Options
	// Suite holds the active checks; nil computes metrics only
	Suite *rules.Suite
}

// FileResult is the outcome of analyzing one file
type FileResult struct {
	Path     string
	Category parser.FileCategory

	// Scope is the locked scope tree of the file. It is nil when the file
	// was skipped.
	Scope *source.Scope

	// Suppressed lists the lines carrying the suppression tag, ascending
	Suppressed []int

	// Err is the read, decode, preprocess or parse failure, if any
	Err error

	VisitorErrors []visit.VisitorError
}

// Skipped reports whether the file produced no scope at all
func (r *FileResult) Skipped() bool {
	return r.Scope == nil
}

// Messages returns the file's check messages ordered by line. Messages on
// suppressed lines are dropped unless showSuppressed is set.
func (r *FileResult) Messages(showSuppressed bool) []source.CheckMessage {
	if r.Scope == nil {
		return nil
	}
	all := r.Scope.AllMessages()
	if showSuppressed || len(r.Suppressed) == 0 {
		return all
	}
	suppressed := make(map[int]bool, len(r.Suppressed))
	for _, l := range r.Suppressed {
		suppressed[l] = true
	}
	out := all[:0:0]
	for _, m := range all {
		if !suppressed[m.Line] {
			out = append(out, m)
		}
	}
	return out
}

// IsSuppressed reports whether msg sits on a suppressed line
func (r *FileResult) IsSuppressed(msg source.CheckMessage) bool {
	for _, l := range r.Suppressed {
		if l == msg.Line {
			return true
		}
	}
	return false
}

// AnalyzeFile reads and analyzes the file at path
func AnalyzeFile(path string, opts Options) *FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable file")
		return &FileResult{Path: path, Category: parser.GetFileCategory(path), Err: err}
	}
	return Analyze(path, data, opts)
}

// Analyze runs the pipeline on already-read file contents. Encoding errors
// skip the file. Preprocessor and syntax errors yield a scope holding a
// single parsing-error message and no metrics.
func Analyze(path string, data []byte, opts Options) *FileResult {
	res := &FileResult{Path: path, Category: parser.GetFileCategory(path)}
	log.Debug().Str("file", path).Str("category", res.Category.String()).Msg("Analyzing file")

	file, err := parser.Parse(path, data, opts.Parse)
	if err != nil {
		res.Err = err
		var encErr *lexer.EncodingError
		if file == nil || errors.As(err, &encErr) {
			log.Warn().Err(err).Str("file", path).Msg("Skipping file that cannot be decoded")
			return res
		}
		log.Warn().Err(err).Str("file", path).Msg("File failed to parse")
		res.Scope = source.NewFileScope(path)
		if opts.Suite != nil {
			if id, ok := opts.Suite.ParsingErrorID(); ok {
				res.Scope.AddMessage(source.CheckMessage{CheckID: id, Message: err.Error()})
			}
		}
		res.Scope.Lock()
		return res
	}

	visitors := metrics.Defaults(opts.Metrics)
	if opts.Suite != nil {
		visitors = append(visitors, opts.Suite.Visitors(res.Category)...)
	}

	ctx := visit.NewContext(path, file.Lines)
	res.VisitorErrors = visit.NewWalker(visitors...).Walk(ctx, file.Root)
	res.Scope = ctx.FileScope()
	res.Suppressed = ctx.Suppressed()

	log.Debug().
		Str("file", path).
		Int("messages", len(res.Scope.AllMessages())).
		Int("visitor_errors", len(res.VisitorErrors)).
		Msg("Analyzed file")
	return res
}
