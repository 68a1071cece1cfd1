package substitute

import "sort"

// FileCount is the cumulative occurrence count for one file.
type FileCount struct {
	Path  string
	Count int
}

// Stats accumulates occurrence counts across every rule of one run. It is
// owned by the caller and never persisted.
type Stats struct {
	counts map[string]int
	total  int
}

// NewStats returns empty stats.
func NewStats() *Stats {
	return &Stats{counts: make(map[string]int)}
}

// Add records n more occurrences in path.
func (s *Stats) Add(path string, n int) {
	if n <= 0 {
		return
	}
	s.counts[path] += n
	s.total += n
}

// Count returns the occurrences recorded for path.
func (s *Stats) Count(path string) int { return s.counts[path] }

// Total returns the occurrences recorded across all files.
func (s *Stats) Total() int { return s.total }

// Files returns the per-file counts sorted by path.
func (s *Stats) Files() []FileCount {
	out := make([]FileCount, 0, len(s.counts))
	for p, n := range s.counts {
		out = append(out, FileCount{Path: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
