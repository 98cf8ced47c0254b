package questionbank

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCatalog is returned when a bank is built from zero candidates.
var ErrEmptyCatalog = errors.New("catalog has no candidates")

// ValidationError lists every structural problem found in a set of entries.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateEntries performs all structural checks on the given entries.
// Returns ErrEmptyCatalog, a *ValidationError describing all problems found,
// or nil if valid.
func validateEntries(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCatalog
	}

	var errs []string

	ids := make(map[string]bool, len(entries))
	known := make(map[string]bool)
	for _, e := range entries {
		if e.Candidate.ID == "" {
			errs = append(errs, fmt.Sprintf("candidate %q has an empty ID", e.Candidate.Name))
		}
		if ids[e.Candidate.ID] {
			errs = append(errs, fmt.Sprintf("duplicate candidate ID: %q", e.Candidate.ID))
		}
		ids[e.Candidate.ID] = true
		if e.Candidate.Name == "" {
			errs = append(errs, fmt.Sprintf("candidate %q has an empty name", e.Candidate.ID))
		}
		if len(e.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("candidate %q has no questions", e.Candidate.ID))
		}

		seen := make(map[string]bool, len(e.Questions))
		for _, q := range e.Questions {
			if q.Text == "" {
				errs = append(errs, fmt.Sprintf("candidate %q has a question with empty text", e.Candidate.ID))
				continue
			}
			if seen[q.Text] {
				errs = append(errs, fmt.Sprintf("candidate %q lists question %q twice", e.Candidate.ID, q.Text))
			}
			seen[q.Text] = true
			known[q.Text] = true
		}
	}

	// Dependency targets must be questions some candidate can be asked, and
	// every expectation must be one of the three defined values.
	for _, e := range entries {
		for _, q := range e.Questions {
			for _, target := range sortedKeys(q.Dependencies) {
				switch exp := q.Dependencies[target]; {
				case exp < ExpectTrue || exp > ExpectUnset:
					errs = append(errs, fmt.Sprintf("candidate %q question %q has invalid expectation for %q", e.Candidate.ID, q.Text, target))
				case target == q.Text:
					errs = append(errs, fmt.Sprintf("candidate %q question %q depends on itself", e.Candidate.ID, q.Text))
				case !known[target]:
					errs = append(errs, fmt.Sprintf("candidate %q question %q references unknown question %q", e.Candidate.ID, q.Text, target))
				}
			}
		}
	}

	if cycle := findCycle(entries); len(cycle) > 0 {
		errs = append(errs, fmt.Sprintf("dependency cycle detected involving questions: %s", strings.Join(cycle, ", ")))
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// findCycle runs Kahn's algorithm over the union dependency graph of all
// candidates (question text -> depended-on text) and returns the texts left
// with unresolved in-degree, sorted. An empty result means the graph is acyclic.
func findCycle(entries []Entry) []string {
	adj := make(map[string]map[string]bool)
	inDegree := make(map[string]int)

	for _, e := range entries {
		for _, q := range e.Questions {
			if _, ok := inDegree[q.Text]; !ok {
				inDegree[q.Text] = 0
			}
			for target := range q.Dependencies {
				if target == q.Text {
					continue // reported separately
				}
				if _, ok := inDegree[target]; !ok {
					inDegree[target] = 0
				}
				if adj[q.Text] == nil {
					adj[q.Text] = make(map[string]bool)
				}
				if !adj[q.Text][target] {
					adj[q.Text][target] = true
					inDegree[target]++
				}
			}
		}
	}

	var queue []string
	for text, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, text)
		}
	}

	visited := 0
	for len(queue) > 0 {
		text := queue[0]
		queue = queue[1:]
		visited++
		for target := range adj[text] {
			inDegree[target]--
			if inDegree[target] == 0 {
				queue = append(queue, target)
			}
		}
	}

	if visited == len(inDegree) {
		return nil
	}

	var cycle []string
	for text, deg := range inDegree {
		if deg > 0 {
			cycle = append(cycle, text)
		}
	}
	sort.Strings(cycle)
	return cycle
}

func sortedKeys(d Dependencies) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
