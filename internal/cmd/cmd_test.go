package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm/csquid/internal/rules"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Clean.cs", "namespace App\n{\n    class Clean\n    {\n        void Run() { }\n    }\n}\n")

	out, err := execute(t, "analyze", "--format", "json", "--fail-on", "major", dir)
	if err != nil {
		t.Fatalf("analyze error = %v\n%s", err, out)
	}

	var report struct {
		RunID   string `json:"runId"`
		Summary struct {
			Analyzed int `json:"analyzed"`
			Issues   int `json:"issues"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.RunID == "" {
		t.Error("runId is empty")
	}
	if report.Summary.Analyzed != 1 || report.Summary.Issues != 0 {
		t.Errorf("summary = %+v, want 1 file and no issues", report.Summary)
	}
}

func TestAnalyzeFailOn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Broken.cs", "class {\n")

	_, err := execute(t, "analyze", "--format", "json", "--fail-on", "critical", dir)
	if err == nil || !strings.Contains(err.Error(), "critical") {
		t.Errorf("analyze error = %v, want the critical threshold error", err)
	}

	if _, err := execute(t, "analyze", "--format", "json", "--fail-on", "none", dir); err != nil {
		t.Errorf("analyze --fail-on none error = %v", err)
	}
}

func TestASTPrint(t *testing.T) {
	path := writeFile(t, t.TempDir(), "C.cs", "class C { }\n")

	out, err := execute(t, "ast", "--print", "--no-tokens", path)
	if err != nil {
		t.Fatalf("ast error = %v", err)
	}
	if !strings.HasPrefix(out, "compilationUnit :1\n") || !strings.Contains(out, "classDeclaration :1") {
		t.Errorf("ast --print =\n%s", out)
	}
	astPrint, astNoTokens = false, false

	out, err = execute(t, "ast", "--xpath", "//classDeclaration", path)
	if err != nil {
		t.Fatalf("ast --xpath error = %v", err)
	}
	if out != "1: classDeclaration\n" {
		t.Errorf("ast --xpath = %q", out)
	}
	astQuery = ""
}

func TestChecksListsProfile(t *testing.T) {
	out, err := execute(t, "checks")
	if err != nil {
		t.Fatalf("checks error = %v", err)
	}
	for _, want := range []string{"function-complexity", "Profile default", "todo-comment (comment-regex)", "disabled: undocumented-api"} {
		if !strings.Contains(out, want) {
			t.Errorf("checks output missing %q\n%s", want, out)
		}
	}
}

func TestParseFailOn(t *testing.T) {
	tests := []struct {
		in      string
		want    rules.Severity
		enabled bool
		wantErr bool
	}{
		{"none", 0, false, false},
		{"minor", rules.Minor, true, false},
		{"critical", rules.Critical, true, false},
		{"blocker", 0, false, true},
	}
	for _, tt := range tests {
		got, enabled, err := parseFailOn(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFailOn(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want || enabled != tt.enabled {
			t.Errorf("parseFailOn(%q) = %v, %v, want %v, %v", tt.in, got, enabled, tt.want, tt.enabled)
		}
	}
}
