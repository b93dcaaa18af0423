package analyzer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/csquid/internal/source"
)

// Project analyzes every source file found under its roots
type Project struct {
	Roots   []string
	Scanner Scanner
	Options Options

	// Workers bounds concurrent file analyses; values below 1 mean 1
	Workers int

	// OnStart is called once with the number of files found
	OnStart func(total int)
	// OnFile is called as each file completes, from the worker goroutines
	OnFile func(res *FileResult)
}

// Result is the outcome of a project run
type Result struct {
	// Files holds one result per scanned file in path order
	Files []*FileResult
	// Index holds the scope of every file that was not skipped, keyed by
	// slash-separated path
	Index *source.Index
}

// Run scans the roots and analyzes the files on the worker pool. Each file
// is processed sequentially by one worker; results are indexed once the
// pool drains. Cancelling ctx stops scheduling new files.
func (p *Project) Run(ctx context.Context) (*Result, error) {
	paths, err := p.Scanner.Scan(p.Roots...)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("files", len(paths)).Strs("roots", p.Roots).Msg("Scanned project")
	if p.OnStart != nil {
		p.OnStart(len(paths))
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]*FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := AnalyzeFile(path, p.Options)
			results[i] = res
			if p.OnFile != nil {
				p.OnFile(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	builder := source.NewIndexBuilder()
	for _, res := range results {
		if res.Skipped() {
			continue
		}
		if err := builder.Add(filepath.ToSlash(res.Path), res.Scope); err != nil {
			return nil, err
		}
	}
	return &Result{Files: results, Index: builder.Freeze()}, nil
}

// File returns the result for path, or nil
func (r *Result) File(path string) *FileResult {
	for _, f := range r.Files {
		if f.Path == path || filepath.ToSlash(f.Path) == path {
			return f
		}
	}
	return nil
}
