package questionbank

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/guessr/internal/catalog"
)

// Question groups produced by Build.
const (
	GroupIdentity  = "identity"
	GroupCategory  = "category"
	GroupAttribute = "attribute"
	GroupMetadata  = "metadata"
)

// CreditsQuestion is asked of every candidate that lists credits; author
// questions depend on it.
const CreditsQuestion = "Does it have credits listed?"

// Build derives every candidate's ordered questions from catalog metadata and
// returns the validated Bank. It is deterministic: the same catalog always
// yields the same bank. A catalog with unresolved names or looping category
// parents is rejected with a *ValidationError before any question is built.
func Build(c *catalog.Catalog) (*Bank, error) {
	if c == nil || len(c.Candidates) == 0 {
		return nil, ErrEmptyCatalog
	}
	if problems := catalog.ReferenceProblems(c); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	entries := make([]Entry, 0, len(c.Candidates))
	for _, meta := range c.Candidates {
		entries = append(entries, Entry{
			Candidate: Candidate{
				ID:          meta.ID,
				Name:        meta.Name,
				Description: meta.Description,
			},
			Questions: questionsFor(c, meta),
		})
	}

	b, err := New(entries)
	if err != nil {
		return nil, err
	}
	b.name = c.Name
	return b, nil
}

// questionBuilder accumulates a candidate's questions, skipping repeats and
// numbering them in emission order.
type questionBuilder struct {
	questions []Question
	seen      map[string]bool
}

func (qb *questionBuilder) add(q Question) {
	if qb.seen[q.Text] {
		return
	}
	qb.seen[q.Text] = true
	q.Order = len(qb.questions)
	qb.questions = append(qb.questions, q)
}

func questionsFor(c *catalog.Catalog, meta catalog.CandidateMetadata) []Question {
	qb := &questionBuilder{seen: make(map[string]bool)}

	// Identity.
	if initial, ok := nameInitial(meta.Name); ok {
		qb.add(Question{
			Text:      fmt.Sprintf("Does its name start with %q?", initial),
			Statement: fmt.Sprintf("Its name starts with %q.", initial),
			Group:     GroupIdentity,
		})
	}
	if len(strings.Fields(meta.Name)) == 1 {
		qb.add(Question{
			Text:      "Is its name a single word?",
			Statement: "Its name is a single word.",
			Group:     GroupIdentity,
		})
	}

	// Categories, each followed by its ancestors. A category already emitted
	// has had its ancestors emitted too, so the walk stops there.
	for _, name := range meta.Categories {
		for name != "" && !qb.seen[CategoryQuestion(name)] {
			def, _ := c.Category(name)
			q := Question{
				Text:      CategoryQuestion(name),
				Statement: categoryStatement(name),
				Group:     GroupCategory,
			}
			if def.Parent != "" {
				q.Dependencies = Dependencies{CategoryQuestion(def.Parent): ExpectTrue}
			}
			qb.add(q)
			name = def.Parent
		}
	}

	// Attributes.
	for _, key := range meta.Attributes {
		def, ok := c.Attribute(key)
		if !ok {
			continue
		}
		group := def.Group
		if group == "" {
			group = GroupAttribute
		}
		q := Question{
			Text:      def.Question,
			Statement: def.Statement,
			Group:     group,
		}
		for other, want := range def.Requires {
			od, ok := c.Attribute(other)
			if !ok {
				continue
			}
			if q.Dependencies == nil {
				q.Dependencies = make(Dependencies)
			}
			q.Dependencies[od.Question] = ExpectFromBool(want)
		}
		qb.add(q)
	}

	// Metadata.
	if len(meta.Credits) > 0 {
		qb.add(Question{
			Text:      CreditsQuestion,
			Statement: "It has credits listed.",
			Group:     GroupMetadata,
		})
		for _, author := range meta.Credits {
			qb.add(Question{
				Text:         fmt.Sprintf("Was it made by %s?", author),
				Statement:    fmt.Sprintf("It was made by %s.", author),
				Dependencies: Dependencies{CreditsQuestion: ExpectTrue},
				Group:        GroupMetadata,
			})
		}
	}
	if meta.Year > 0 {
		decade := meta.Year / 10 * 10
		qb.add(Question{
			Text:      fmt.Sprintf("Was it released in the %ds?", decade),
			Statement: fmt.Sprintf("It was released in the %ds.", decade),
			Group:     GroupMetadata,
		})
	}

	return qb.questions
}

// CategoryQuestion returns the question text asked for a category.
func CategoryQuestion(category string) string {
	return fmt.Sprintf("Is it %s %s game?", article(category), category)
}

func categoryStatement(category string) string {
	return fmt.Sprintf("It is %s %s game.", article(category), category)
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch unicode.ToLower([]rune(word)[0]) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// nameInitial returns the first letter or digit of name, upper-cased.
func nameInitial(name string) (string, bool) {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r)), true
		}
	}
	return "", false
}
