package classifier

import (
	"math"
	"testing"
)

func TestIsLineOfCode(t *testing.T) {
	r := NewCSharpRecognizer()

	tests := []struct {
		line string
		want bool
	}{
		{"int x = 1;", true},
		{"if (a && b) {", true},
		{"return value;", true},
		{"}", true},
		{"for(int i = 0", true},
		{"x || y && z", true},
		{"counter++", true},
		{"", false},
		{"This is a comment", false},
		{"Note: call this first.", false},
		{"a || b", false},
		{"TODO: handle the null case", false},
		{"-------------------------", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := r.IsLineOfCode(tt.line); got != tt.want {
				t.Errorf("IsLineOfCode(%q) = %v, want %v (p=%.3f)", tt.line, got, tt.want, r.Probability(tt.line))
			}
		})
	}
}

func TestProbabilityCombinesDetectors(t *testing.T) {
	r := NewCodeRecognizer(0.5,
		NewKeywordsDetector(0.5, "foo"),
		NewEndWithDetector(0.5, ';'),
	)

	tests := []struct {
		line string
		want float64
	}{
		{"bar", 0},
		{"foo", 0.5},
		{"foo foo", 0.75},
		{"foo foo;", 0.875},
	}

	for _, tt := range tests {
		if got := r.Probability(tt.line); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Probability(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
	if r.Threshold() != 0.5 {
		t.Errorf("Threshold() = %v, want 0.5", r.Threshold())
	}
}

func TestDetectors(t *testing.T) {
	tests := []struct {
		name string
		d    Detector
		line string
		want int
	}{
		{"end with trailing blanks", NewEndWithDetector(1, ';'), "x = 1;  \t", 1},
		{"end with other", NewEndWithDetector(1, ';'), "x = 1", 0},
		{"end with empty", NewEndWithDetector(1, ';'), "   ", 0},
		{"keywords split on parens", NewKeywordsDetector(1, "if", "return"), "if(x) return", 2},
		{"keywords need whole words", NewKeywordsDetector(1, "if"), "iffy", 0},
		{"contains ignores blanks", NewContainsDetector(1, "if("), "if  (x)", 1},
		{"contains counts once", NewContainsDetector(1, "++"), "a++; b++;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Scan(tt.line); got != tt.want {
				t.Errorf("Scan(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}
