// Package source holds per-file analysis results: metric counters and check
// messages aggregated over a File > Namespace > Type > Member scope tree, and
// the project index built from them.
package source

// Metric is a countable fact about source code
type Metric int

const (
	Lines Metric = iota
	LinesOfCode
	Statements
	Complexity
	CommentLines
	CommentBlankLines
	CommentedOutCodeLines
	PublicAPI
	PublicDocAPI
	Accessors
	Classes
	Methods
	Namespaces

	metricCount
)

var metricNames = [metricCount]string{
	Lines:                 "LINES",
	LinesOfCode:           "LINES_OF_CODE",
	Statements:            "STATEMENTS",
	Complexity:            "COMPLEXITY",
	CommentLines:          "COMMENT_LINES",
	CommentBlankLines:     "COMMENT_BLANK_LINES",
	CommentedOutCodeLines: "COMMENTED_OUT_CODE_LINES",
	PublicAPI:             "PUBLIC_API",
	PublicDocAPI:          "PUBLIC_DOC_API",
	Accessors:             "ACCESSORS",
	Classes:               "CLASSES",
	Methods:               "METHODS",
	Namespaces:            "NAMESPACES",
}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return "UNKNOWN"
	}
	return metricNames[m]
}

// Metrics returns every metric in declaration order
func Metrics() []Metric {
	out := make([]Metric, metricCount)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// ParseMetric looks a metric up by name
func ParseMetric(name string) (Metric, bool) {
	for i, n := range metricNames {
		if n == name {
			return Metric(i), true
		}
	}
	return 0, false
}
