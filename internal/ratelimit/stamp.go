package ratelimit

import (
	"math"
	"sort"
)

// Stamp is a sparse per-identifier time series of event counts keyed by
// whole-second timestamps. Entries are kept in ascending timestamp order,
// which keeps range sums and trimming a matter of slicing. A missing
// timestamp means zero events at that second.
type Stamp struct {
	entries []stampEntry
}

type stampEntry struct {
	ts    int64
	count uint64
}

// NewStamp builds a Stamp from timestamp/count pairs. The input map may be
// in any order; entries are sorted on construction. A nil map yields an
// empty Stamp.
func NewStamp(counts map[int64]uint64) *Stamp {
	s := &Stamp{entries: make([]stampEntry, 0, len(counts))}
	for ts, count := range counts {
		s.entries = append(s.entries, stampEntry{ts: ts, count: count})
	}

	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].ts < s.entries[j].ts
	})

	return s
}

// Len returns the number of distinct timestamps with a recorded count.
func (s *Stamp) Len() int {
	return len(s.entries)
}

// Counts returns the stamp's contents as a timestamp/count map.
func (s *Stamp) Counts() map[int64]uint64 {
	counts := make(map[int64]uint64, len(s.entries))
	for _, e := range s.entries {
		counts[e.ts] = e.count
	}

	return counts
}

// Sum returns the total event count in the inclusive range [from, to],
// saturating on overflow.
func (s *Stamp) Sum(from, to int64) uint64 {
	var sum uint64

	for i := s.search(from); i < len(s.entries) && s.entries[i].ts <= to; i++ {
		sum = saturatingAdd(sum, s.entries[i].count)
	}

	return sum
}

// Trim discards all entries strictly before cutoff, keeping the tail of
// the series intact. Trimming twice with the same cutoff is a no-op the
// second time.
func (s *Stamp) Trim(cutoff int64) {
	i := s.search(cutoff)
	if i == 0 {
		return
	}

	s.entries = append(s.entries[:0], s.entries[i:]...)
}

// Increment adds one to the count at ts, creating the entry if absent and
// saturating instead of wrapping.
func (s *Stamp) Increment(ts int64) {
	i := s.search(ts)
	if i < len(s.entries) && s.entries[i].ts == ts {
		s.entries[i].count = saturatingAdd(s.entries[i].count, 1)

		return
	}

	s.entries = append(s.entries, stampEntry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = stampEntry{ts: ts, count: 1}
}

// search returns the index of the first entry with timestamp >= ts.
func (s *Stamp) search(ts int64) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].ts >= ts
	})
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}
