package analyzer

import (
	"sort"

	"github.com/pthm/csquid/internal/source"
)

// Summary contains aggregate figures about a project run
type Summary struct {
	TotalFiles    int
	Analyzed      int
	ParseFailures int
	Skipped       int
	VisitorErrors int

	// Messages counts reported messages; Suppressed those hidden by the
	// suppression tag
	Messages   int
	Suppressed int

	Totals          map[source.Metric]int
	MessagesByCheck map[string]int
}

// ComputeSummary computes the summary of a project run
func ComputeSummary(res *Result) *Summary {
	s := &Summary{
		Totals:          make(map[source.Metric]int),
		MessagesByCheck: make(map[string]int),
	}

	for _, f := range res.Files {
		s.TotalFiles++
		s.VisitorErrors += len(f.VisitorErrors)

		switch {
		case f.Skipped():
			s.Skipped++
			continue
		case f.Err != nil:
			s.ParseFailures++
		default:
			s.Analyzed++
		}

		for _, m := range f.Scope.AllMessages() {
			if f.IsSuppressed(m) {
				s.Suppressed++
				continue
			}
			s.Messages++
			s.MessagesByCheck[m.CheckID]++
		}
	}

	for _, m := range source.Metrics() {
		s.Totals[m] = res.Index.Total(m)
	}
	return s
}

// Checks returns the ids of checks that reported, most frequent first
func (s *Summary) Checks() []string {
	ids := make([]string, 0, len(s.MessagesByCheck))
	for id := range s.MessagesByCheck {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := s.MessagesByCheck[ids[i]], s.MessagesByCheck[ids[j]]
		if ci != cj {
			return ci > cj
		}
		return ids[i] < ids[j]
	})
	return ids
}
