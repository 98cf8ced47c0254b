package questionbank

import "maps"

// Expect is the answer a dependency requires of another question.
type Expect int8

const (
	ExpectTrue  Expect = iota + 1 // the other question must be answered yes
	ExpectFalse                   // the other question must be answered no
	ExpectUnset                   // the other question must not be affirmed
)

// String returns the catalog spelling of the expectation.
func (e Expect) String() string {
	switch e {
	case ExpectTrue:
		return "true"
	case ExpectFalse:
		return "false"
	case ExpectUnset:
		return "null"
	default:
		return "invalid"
	}
}

// Sign returns the direction an implied answer is applied in: +1 for true,
// -1 for false or unset. An unset requirement means the target must not
// hold, the same reading Conflicts uses.
func (e Expect) Sign() int {
	if e == ExpectTrue {
		return 1
	}
	return -1
}

// Conflicts reports whether an answer with the given signed confidence
// contradicts the expectation. A zero delta ("don't know") never conflicts.
func (e Expect) Conflicts(delta int) bool {
	switch e {
	case ExpectTrue:
		return delta < 0
	case ExpectFalse, ExpectUnset:
		return delta > 0
	default:
		return false
	}
}

// ExpectFromBool converts a catalog requirement (true, false or null).
func ExpectFromBool(b *bool) Expect {
	switch {
	case b == nil:
		return ExpectUnset
	case *b:
		return ExpectTrue
	default:
		return ExpectFalse
	}
}

// Dependencies maps another question's text to the answer it must have.
type Dependencies map[string]Expect

// Clone returns an independent copy.
func (d Dependencies) Clone() Dependencies {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Question is one yes/no prompt as it applies to a candidate.
// Text identifies the question across candidates.
type Question struct {
	Text         string
	Statement    string
	Dependencies Dependencies
	Group        string
	Order        int
}

// Candidate is one of the things the engine can guess.
type Candidate struct {
	ID          string
	Name        string
	Description string
}

// Entry pairs a candidate with its ordered questions; it is the input to New.
type Entry struct {
	Candidate Candidate
	Questions []Question
}
