// Package engine scores candidates against answers and picks the next
// question to ask. Everything here is synchronous and free of I/O; a caller
// owns the Ranking and AskedSet and threads them through successive calls.
package engine

import (
	"slices"
	"sort"
)

// Entry is one candidate's position in a ranking.
type Entry struct {
	Candidate string
	Score     float64
}

// Ranking lists candidates by score, highest first. Scores only have meaning
// relative to each other.
type Ranking []Entry

// NewRanking returns a ranking holding every id once, all at score zero.
func NewRanking(ids []string) Ranking {
	r := make(Ranking, len(ids))
	for i, id := range ids {
		r[i] = Entry{Candidate: id}
	}
	return r
}

// Clone returns an independent copy.
func (r Ranking) Clone() Ranking {
	return slices.Clone(r)
}

// Sort orders the ranking by score descending. Equal scores keep their
// relative order.
func (r Ranking) Sort() {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
}

// Top returns the leading entry.
func (r Ranking) Top() (Entry, bool) {
	if len(r) == 0 {
		return Entry{}, false
	}
	return r[0], true
}

// RunnerUp returns the second entry.
func (r Ranking) RunnerUp() (Entry, bool) {
	if len(r) < 2 {
		return Entry{}, false
	}
	return r[1], true
}

// Lead is how far the top entry is ahead of the runner-up. A lone
// candidate leads by its own score, floored at zero.
func (r Ranking) Lead() float64 {
	top, ok := r.Top()
	if !ok {
		return 0
	}
	second, ok := r.RunnerUp()
	if !ok {
		return max(top.Score, 0)
	}
	return top.Score - second.Score
}

// Index returns the position of a candidate, or -1.
func (r Ranking) Index(id string) int {
	for i, e := range r {
		if e.Candidate == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of the ranking with the candidate removed.
func (r Ranking) Without(id string) (Ranking, bool) {
	i := r.Index(id)
	if i < 0 {
		return r.Clone(), false
	}
	out := make(Ranking, 0, len(r)-1)
	out = append(out, r[:i]...)
	out = append(out, r[i+1:]...)
	return out, true
}

// IDs returns candidate IDs in ranked order.
func (r Ranking) IDs() []string {
	ids := make([]string, len(r))
	for i, e := range r {
		ids[i] = e.Candidate
	}
	return ids
}

// AskedSet records question texts that are settled for a session, whether
// they were shown or resolved through dependencies.
type AskedSet map[string]struct{}

// NewAskedSet returns a set holding texts.
func NewAskedSet(texts ...string) AskedSet {
	s := make(AskedSet, len(texts))
	for _, t := range texts {
		s[t] = struct{}{}
	}
	return s
}

func (s AskedSet) Has(text string) bool {
	_, ok := s[text]
	return ok
}

func (s AskedSet) Add(text string) {
	s[text] = struct{}{}
}

func (s AskedSet) Len() int {
	return len(s)
}

// Clone returns an independent copy. Cloning a nil set gives an empty one.
func (s AskedSet) Clone() AskedSet {
	out := make(AskedSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the texts in lexical order.
func (s AskedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
