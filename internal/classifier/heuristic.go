package classifier

import (
	"regexp"
	"strings"
)

// Detector recognizes one footprint of code in a line of text. Scan
// returns how many times the footprint occurs.
type Detector interface {
	Scan(line string) int
	Probability() float64
}

// EndWithDetector matches lines whose last non-blank character is one of
// the given characters
type EndWithDetector struct {
	probability float64
	endings     string
}

// NewEndWithDetector creates a detector for lines ending with any of endings
func NewEndWithDetector(probability float64, endings ...rune) *EndWithDetector {
	return &EndWithDetector{probability: probability, endings: string(endings)}
}

func (d *EndWithDetector) Scan(line string) int {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" {
		return 0
	}
	last := []rune(trimmed)
	if strings.ContainsRune(d.endings, last[len(last)-1]) {
		return 1
	}
	return 0
}

func (d *EndWithDetector) Probability() float64 {
	return d.probability
}

var wordSeparators = regexp.MustCompile(`[ \t(),{}]+`)

// KeywordsDetector counts the words of a line that are in a keyword set
type KeywordsDetector struct {
	probability float64
	keywords    map[string]bool
}

// NewKeywordsDetector creates a detector counting occurrences of keywords
func NewKeywordsDetector(probability float64, keywords ...string) *KeywordsDetector {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return &KeywordsDetector{probability: probability, keywords: set}
}

func (d *KeywordsDetector) Scan(line string) int {
	count := 0
	for _, word := range wordSeparators.Split(line, -1) {
		if d.keywords[word] {
			count++
		}
	}
	return count
}

func (d *KeywordsDetector) Probability() float64 {
	return d.probability
}

// ContainsDetector matches lines that, with whitespace removed, contain one
// of the given fragments
type ContainsDetector struct {
	probability float64
	fragments   []string
}

// NewContainsDetector creates a detector for the given fragments
func NewContainsDetector(probability float64, fragments ...string) *ContainsDetector {
	return &ContainsDetector{probability: probability, fragments: fragments}
}

func (d *ContainsDetector) Scan(line string) int {
	compact := strings.Join(strings.Fields(line), "")
	for _, f := range d.fragments {
		if strings.Contains(compact, f) {
			return 1
		}
	}
	return 0
}

func (d *ContainsDetector) Probability() float64 {
	return d.probability
}
