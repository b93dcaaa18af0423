package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/profile"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/source"
)

var widget = "namespace App\n{\n    public class Widget\n    {\n        public void Big() // NOSONAR\n        {\n" +
	strings.Repeat("            if (a) { }\n", 10) +
	"        }\n    }\n}\n"

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func defaultSuite(t *testing.T) *rules.Suite {
	t.Helper()
	p, err := profile.Load(profile.Default)
	require.NoError(t, err)
	suite, err := p.Compile(rules.DefaultRegistry())
	require.NoError(t, err)
	return suite
}

func newProject(root string, suite *rules.Suite) *Project {
	return &Project{
		Roots: []string{root},
		Scanner: Scanner{
			Include: []string{"**/*.cs"},
			Exclude: []string{"**/bin/**"},
		},
		Options: Options{Suite: suite},
		Workers: 4,
	}
}

func TestProjectRun(t *testing.T) {
	root := writeProject(t, map[string]string{
		"App/Widget.cs": widget,
		"App/Broken.cs": "class {\n",
		"App/Latin.cs":  "class C { string s = \"caf\xe9\"; }\n",
		"bin/Gen.cs":    "class Gen { }\n",
		"README.md":     "# not C#\n",
	})

	var done atomic.Int32
	var total int
	p := newProject(root, defaultSuite(t))
	p.OnStart = func(n int) { total = n }
	p.OnFile = func(*FileResult) { done.Add(1) }

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.Equal(t, 3, total)
	assert.Equal(t, int32(3), done.Load())

	broken := res.Files[0]
	assert.True(t, strings.HasSuffix(broken.Path, "Broken.cs"))
	require.Error(t, broken.Err)
	require.NotNil(t, broken.Scope)
	assert.True(t, broken.Scope.Locked())
	msgs := broken.Messages(false)
	require.Len(t, msgs, 1)
	assert.Equal(t, "parsing-error", msgs[0].CheckID)
	assert.Equal(t, 0, msgs[0].Line)

	latin := res.Files[1]
	assert.True(t, latin.Skipped())
	var encErr *lexer.EncodingError
	assert.True(t, errors.As(latin.Err, &encErr), "want *lexer.EncodingError, got %v", latin.Err)

	w := res.Files[2]
	require.NoError(t, w.Err)
	assert.True(t, w.Scope.Locked())
	assert.Equal(t, []int{5}, w.Suppressed)
	assert.Empty(t, w.Messages(false))
	all := w.Messages(true)
	require.Len(t, all, 1)
	assert.Equal(t, "function-complexity", all[0].CheckID)
	assert.Equal(t, 5, all[0].Line)
	assert.Equal(t, 11, w.Scope.Total(source.Complexity))

	assert.Equal(t, 2, res.Index.Len())
	_, ok := res.Index.File(filepath.ToSlash(w.Path))
	assert.True(t, ok)
	_, ok = res.Index.File(filepath.ToSlash(latin.Path))
	assert.False(t, ok)
	assert.Same(t, w, res.File(w.Path))

	s := ComputeSummary(res)
	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 1, s.Analyzed)
	assert.Equal(t, 1, s.ParseFailures)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Messages)
	assert.Equal(t, 1, s.Suppressed)
	assert.Equal(t, 1, s.Totals[source.Classes])
	assert.Equal(t, []string{"parsing-error"}, s.Checks())
}

func TestProjectRunCancelled(t *testing.T) {
	root := writeProject(t, map[string]string{"A.cs": "class A { }\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProject(root, nil).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAnalyzeMetricsOnly(t *testing.T) {
	res := Analyze("Sample.cs", []byte("class C\n{\n    void M() { if (a) { } }\n}\n"), Options{})
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Scope.Total(source.Complexity))
	assert.Equal(t, 5, res.Scope.Total(source.Lines))
	assert.Empty(t, res.Messages(true))
}

func TestAnalyzeParseErrorWithoutSuite(t *testing.T) {
	res := Analyze("Bad.cs", []byte("#if A\nclass C { }\n"), Options{})
	require.Error(t, res.Err)
	require.NotNil(t, res.Scope)
	assert.Empty(t, res.Messages(true))
	assert.Equal(t, 0, res.Scope.Total(source.Lines))
}

func TestScanner(t *testing.T) {
	root := writeProject(t, map[string]string{
		"A.cs":                  "",
		"src/B.cs":              "",
		"src/B.Designer.cs":     "",
		"obj/Debug/C.cs":        "",
		"src/notes.txt":         "",
		"tests/Unit/BTests.cs":  "",
		"tests/Unit/fixture.cs": "",
	})

	s := Scanner{
		Include: []string{"**/*.cs"},
		Exclude: []string{"**/obj/**", "**/*.Designer.cs", "tests/**/fixture.cs"},
	}
	files, err := s.Scan(root)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"A.cs", "src/B.cs", "tests/Unit/BTests.cs"}, rel)

	single, err := s.Scan(filepath.Join(root, "src", "B.cs"), filepath.Join(root, "src", "notes.txt"))
	require.NoError(t, err)
	assert.Len(t, single, 1)

	_, err = Scanner{Include: []string{"[unclosed"}}.Scan(root)
	assert.Error(t, err)

	_, err = s.Scan(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
