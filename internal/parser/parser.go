// Package parser runs the front end for one file: decode, lex, preprocess
// and parse.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/csharp"
	"github.com/pthm/csquid/internal/grammar"
	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/preprocessor"
	"github.com/pthm/csquid/internal/token"
)

// ParsedFile represents a parsed C# source file
type ParsedFile struct {
	Path     string
	Source   string
	Tokens   []token.Token
	Root     *ast.Node
	Lines    []string
	Category FileCategory
}

// Options controls how a file is parsed
type Options struct {
	// Charset is the declared encoding; empty means UTF-8
	Charset string
	// Defines are the preprocessor symbols defined before the first line
	Defines []string
	// Root is the rule to parse from; the zero value means a compilation unit
	Root ast.RuleType
	// Grammar overrides the shared C# grammar
	Grammar *grammar.Grammar
}

func (o Options) root() ast.RuleType {
	if o.Root == ast.Terminal {
		return ast.CompilationUnit
	}
	return o.Root
}

func (o Options) grammar() *grammar.Grammar {
	if o.Grammar != nil {
		return o.Grammar
	}
	return csharp.Grammar()
}

// FileCategory represents what kind of C# file a path holds
type FileCategory int

const (
	// FileCategorySource is hand-written code
	FileCategorySource FileCategory = iota
	// FileCategoryGenerated is designer or tool output (Foo.Designer.cs, Foo.g.cs)
	FileCategoryGenerated
	// FileCategoryTest is code under a test project or named like a test fixture
	FileCategoryTest
)

func (c FileCategory) String() string {
	switch c {
	case FileCategoryGenerated:
		return "generated"
	case FileCategoryTest:
		return "test"
	default:
		return "source"
	}
}

// IsSource reports whether path has the C# file suffix
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs")
}

// GetFileCategory returns the FileCategory for a given path
func GetFileCategory(path string) FileCategory {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".designer.cs", ".g.cs", ".g.i.cs", ".generated.cs"} {
		if strings.HasSuffix(base, suffix) {
			return FileCategoryGenerated
		}
	}
	if base == "assemblyinfo.cs" {
		return FileCategoryGenerated
	}

	if strings.HasSuffix(base, "tests.cs") || strings.HasSuffix(base, "test.cs") {
		return FileCategoryTest
	}
	for _, dir := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		d := strings.ToLower(dir)
		if d == "test" || d == "tests" || strings.HasSuffix(d, ".tests") {
			return FileCategoryTest
		}
	}
	return FileCategorySource
}

// ParseFile reads and parses the file at path
func ParseFile(path string, opts Options) (*ParsedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data, opts)
}

// Parse decodes data with the declared charset and parses it. An encoding
// error returns no file. A preprocessor or syntax error returns the file
// with its tokens but no Root, so the caller can still report on it.
func Parse(path string, data []byte, opts Options) (*ParsedFile, error) {
	src, err := lexer.Decode(data, opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parse(path, src, opts)
}

// ParseString parses already-decoded source text
func ParseString(src string, opts Options) (*ParsedFile, error) {
	return parse("", src, opts)
}

func parse(path, src string, opts Options) (*ParsedFile, error) {
	file := &ParsedFile{
		Path:     path,
		Source:   src,
		Lines:    splitLines(src),
		Category: GetFileCategory(path),
	}

	tokens, err := preprocessor.Lex(src, opts.Defines)
	if err != nil {
		return file, wrap(path, err)
	}
	file.Tokens = tokens

	root, err := opts.grammar().Parse(tokens, opts.root())
	if err != nil {
		return file, wrap(path, err)
	}
	file.Root = root
	return file, nil
}

func wrap(path string, err error) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
