// Package questionbank holds the immutable candidate/question tables the
// guessing engine reads from. A Bank is built once, validated, and then shared
// read-only by every session.
package questionbank

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Bank maps each candidate to its ordered questions, with precomputed indices.
// A Bank is never mutated after construction and is safe for concurrent use.
type Bank struct {
	name       string
	candidates []Candidate
	byID       map[string]int
	questions  [][]Question
	byText     []map[string]int   // per candidate: question text -> index
	dependents []map[string][]int // per candidate: depended-on text -> indices of questions naming it
	texts      []string
	statements map[string]string
	groups     map[string][]string
}

// New validates entries and builds a Bank from them. The entries are deep
// copied; later changes to them do not affect the Bank.
func New(entries []Entry) (*Bank, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	b := &Bank{
		candidates: make([]Candidate, len(entries)),
		byID:       make(map[string]int, len(entries)),
		questions:  make([][]Question, len(entries)),
		byText:     make([]map[string]int, len(entries)),
		dependents: make([]map[string][]int, len(entries)),
		statements: make(map[string]string),
		groups:     make(map[string][]string),
	}

	groupSeen := make(map[string]map[string]bool)
	for i, e := range entries {
		b.candidates[i] = e.Candidate
		b.byID[e.Candidate.ID] = i

		qs := make([]Question, len(e.Questions))
		b.byText[i] = make(map[string]int, len(e.Questions))
		b.dependents[i] = make(map[string][]int)
		for j, q := range e.Questions {
			q.Dependencies = q.Dependencies.Clone()
			qs[j] = q
			b.byText[i][q.Text] = j
			for _, target := range sortedKeys(q.Dependencies) {
				b.dependents[i][target] = append(b.dependents[i][target], j)
			}

			// First statement seen wins for display.
			if _, ok := b.statements[q.Text]; !ok {
				b.statements[q.Text] = q.Statement
				b.texts = append(b.texts, q.Text)
			}

			group := q.Group
			if groupSeen[group] == nil {
				groupSeen[group] = make(map[string]bool)
			}
			if !groupSeen[group][q.Text] {
				groupSeen[group][q.Text] = true
				b.groups[group] = append(b.groups[group], q.Text)
			}
		}
		b.questions[i] = qs
	}

	sort.Strings(b.texts)
	for g := range b.groups {
		sort.Strings(b.groups[g])
	}
	return b, nil
}

// Name returns the catalog title the bank was built from, if any.
func (b *Bank) Name() string {
	return b.name
}

// Len returns the number of candidates.
func (b *Bank) Len() int {
	return len(b.candidates)
}

// Candidates returns all candidates in catalog order.
func (b *Bank) Candidates() []Candidate {
	return slices.Clone(b.candidates)
}

// CandidateIDs returns all candidate IDs in catalog order.
func (b *Bank) CandidateIDs() []string {
	ids := make([]string, len(b.candidates))
	for i, c := range b.candidates {
		ids[i] = c.ID
	}
	return ids
}

// Candidate returns a candidate by ID, or error if not found.
func (b *Bank) Candidate(id string) (Candidate, error) {
	i, ok := b.byID[id]
	if !ok {
		return Candidate{}, fmt.Errorf("candidate not found: %q", id)
	}
	return b.candidates[i], nil
}

// Lookup finds a candidate whose ID or name equals s, ignoring case and
// surrounding space.
func (b *Bank) Lookup(s string) (Candidate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Candidate{}, false
	}
	for _, c := range b.candidates {
		if strings.EqualFold(c.ID, s) || strings.EqualFold(c.Name, s) {
			return c, true
		}
	}
	return Candidate{}, false
}

// Contains reports whether id names a candidate in the bank.
func (b *Bank) Contains(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// Questions returns the ordered questions for a candidate, or nil if unknown.
func (b *Bank) Questions(id string) []Question {
	i, ok := b.byID[id]
	if !ok {
		return nil
	}
	out := make([]Question, len(b.questions[i]))
	for j, q := range b.questions[i] {
		q.Dependencies = q.Dependencies.Clone()
		out[j] = q
	}
	return out
}

// QuestionTexts returns the candidate's question texts in order.
func (b *Bank) QuestionTexts(id string) []string {
	i, ok := b.byID[id]
	if !ok {
		return nil
	}
	texts := make([]string, len(b.questions[i]))
	for j, q := range b.questions[i] {
		texts[j] = q.Text
	}
	return texts
}

// Question returns the candidate's question with the given text.
func (b *Bank) Question(id, text string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	j, ok := b.byText[i][text]
	if !ok {
		return Question{}, false
	}
	q := b.questions[i][j]
	q.Dependencies = q.Dependencies.Clone()
	return q, true
}

// Has reports whether the candidate has a question with the given text.
func (b *Bank) Has(id, text string) bool {
	i, ok := b.byID[id]
	if !ok {
		return false
	}
	_, ok = b.byText[i][text]
	return ok
}

// Requirement is one of a candidate's questions together with what it
// expects of another question.
type Requirement struct {
	Question string
	Expect   Expect
}

// RequirementsOn returns, in question order, every question of the candidate
// whose dependencies name text, with the expectation each one records.
func (b *Bank) RequirementsOn(id, text string) []Requirement {
	i, ok := b.byID[id]
	if !ok {
		return nil
	}
	idx := b.dependents[i][text]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Requirement, len(idx))
	for k, j := range idx {
		q := b.questions[i][j]
		out[k] = Requirement{Question: q.Text, Expect: q.Dependencies[text]}
	}
	return out
}

// Texts returns every distinct question text, sorted.
func (b *Bank) Texts() []string {
	return slices.Clone(b.texts)
}

// TotalQuestions returns the number of distinct question texts.
func (b *Bank) TotalQuestions() int {
	return len(b.texts)
}

// Statement returns the declarative form of a question text.
func (b *Bank) Statement(text string) string {
	return b.statements[text]
}

// Groups returns display groupings: group name -> deduplicated, sorted texts.
func (b *Bank) Groups() map[string][]string {
	out := make(map[string][]string, len(b.groups))
	for g, texts := range b.groups {
		out[g] = slices.Clone(texts)
	}
	return out
}
