// Package classifier recognizes commented-out code. A line is scored by
// weighted detectors, and counted as code when the combined probability
// reaches the recognizer's threshold.
package classifier

import (
	"math"
	"sort"

	"github.com/pthm/csquid/internal/token"
)

// DefaultThreshold is the probability from which a comment line is code
const DefaultThreshold = 0.9

// CodeRecognizer combines detectors into a probability that a line is code
type CodeRecognizer struct {
	threshold float64
	detectors []Detector
}

// NewCodeRecognizer creates a recognizer with the given detectors
func NewCodeRecognizer(threshold float64, detectors ...Detector) *CodeRecognizer {
	return &CodeRecognizer{threshold: threshold, detectors: detectors}
}

// NewCSharpRecognizer returns the recognizer for C# code with the default
// threshold
func NewCSharpRecognizer() *CodeRecognizer {
	return NewCodeRecognizer(DefaultThreshold, CSharpFootprint()...)
}

// CSharpFootprint returns the detectors for C#
func CSharpFootprint() []Detector {
	keywords := make([]string, 0, len(token.Keywords()))
	for k := range token.Keywords() {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	return []Detector{
		NewEndWithDetector(0.95, '}', ';', '{'),
		NewKeywordsDetector(0.7, "||", "&&"),
		NewKeywordsDetector(0.3, keywords...),
		NewContainsDetector(0.95, "++", "for(", "if(", "while(", "catch(", "switch(", "try{", "else{"),
	}
}

// Probability returns the likelihood in [0, 1] that line is code. Each
// occurrence of a footprint lowers the chance of prose independently.
func (r *CodeRecognizer) Probability(line string) float64 {
	notCode := 1.0
	for _, d := range r.detectors {
		if n := d.Scan(line); n > 0 {
			notCode *= math.Pow(1-d.Probability(), float64(n))
		}
	}
	return 1 - notCode
}

// IsLineOfCode reports whether line reaches the threshold
func (r *CodeRecognizer) IsLineOfCode(line string) bool {
	return r.Probability(line) >= r.threshold
}

// Threshold returns the recognizer's threshold
func (r *CodeRecognizer) Threshold() float64 {
	return r.threshold
}
