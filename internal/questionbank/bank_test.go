package questionbank

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/guessr/internal/catalog"
)

func scenarioEntries() []Entry {
	return []Entry{
		{
			Candidate: Candidate{ID: "a", Name: "A"},
			Questions: []Question{
				{Text: "Q1?", Statement: "Q1."},
				{Text: "Q2?", Statement: "Q2.", Dependencies: Dependencies{"Q1?": ExpectTrue}},
			},
		},
		{
			Candidate: Candidate{ID: "b", Name: "B"},
			Questions: []Question{{Text: "Q1?", Statement: "Q1 (b)."}},
		},
		{
			Candidate: Candidate{ID: "c", Name: "C"},
			Questions: []Question{{Text: "Q3?", Statement: "Q3."}},
		},
	}
}

func TestNew_Scenario(t *testing.T) {
	b, err := New(scenarioEntries())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if got := b.TotalQuestions(); got != 3 {
		t.Errorf("TotalQuestions() = %d, want 3", got)
	}
	if got := strings.Join(b.Texts(), ","); got != "Q1?,Q2?,Q3?" {
		t.Errorf("Texts() = %q, want Q1?,Q2?,Q3?", got)
	}
	if !b.Has("a", "Q2?") || b.Has("b", "Q2?") {
		t.Error("Has() does not reflect per-candidate questions")
	}
	// The first candidate's statement wins for a shared text.
	if got := b.Statement("Q1?"); got != "Q1." {
		t.Errorf("Statement(Q1?) = %q, want Q1.", got)
	}

	reqs := b.RequirementsOn("a", "Q1?")
	if len(reqs) != 1 || reqs[0].Question != "Q2?" || reqs[0].Expect != ExpectTrue {
		t.Errorf("RequirementsOn(a, Q1?) = %+v, want [{Q2? true}]", reqs)
	}
	if reqs := b.RequirementsOn("b", "Q1?"); len(reqs) != 0 {
		t.Errorf("RequirementsOn(b, Q1?) = %+v, want none", reqs)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	entries := scenarioEntries()
	b, err := New(entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	entries[0].Questions[1].Dependencies["Q1?"] = ExpectFalse
	entries[0].Candidate.Name = "changed"

	q, ok := b.Question("a", "Q2?")
	if !ok {
		t.Fatal("expected question Q2? for a")
	}
	if q.Dependencies["Q1?"] != ExpectTrue {
		t.Error("bank dependencies changed after mutating the input")
	}
	// Mutating a returned question must not leak back either.
	q.Dependencies["Q1?"] = ExpectUnset
	if again, _ := b.Question("a", "Q2?"); again.Dependencies["Q1?"] != ExpectTrue {
		t.Error("bank dependencies changed after mutating a returned question")
	}
	if c, _ := b.Candidate("a"); c.Name != "A" {
		t.Errorf("candidate name = %q, want A", c.Name)
	}
}

func TestNew_EmptyCatalog(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("err = %v, want ErrEmptyCatalog", err)
	}
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			name: "zero questions",
			entries: []Entry{
				{Candidate: Candidate{ID: "a", Name: "A"}},
			},
			want: `candidate "a" has no questions`,
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{Candidate: Candidate{ID: "a", Name: "A"}, Questions: []Question{{Text: "Q?"}}},
				{Candidate: Candidate{ID: "a", Name: "A2"}, Questions: []Question{{Text: "Q?"}}},
			},
			want: `duplicate candidate ID: "a"`,
		},
		{
			name: "dangling dependency",
			entries: []Entry{
				{Candidate: Candidate{ID: "a", Name: "A"}, Questions: []Question{
					{Text: "Q?", Dependencies: Dependencies{"Nowhere?": ExpectTrue}},
				}},
			},
			want: `references unknown question "Nowhere?"`,
		},
		{
			name: "self dependency",
			entries: []Entry{
				{Candidate: Candidate{ID: "a", Name: "A"}, Questions: []Question{
					{Text: "Q?", Dependencies: Dependencies{"Q?": ExpectFalse}},
				}},
			},
			want: "depends on itself",
		},
		{
			name: "cycle across candidates",
			entries: []Entry{
				{Candidate: Candidate{ID: "a", Name: "A"}, Questions: []Question{
					{Text: "X?", Dependencies: Dependencies{"Y?": ExpectTrue}},
				}},
				{Candidate: Candidate{ID: "b", Name: "B"}, Questions: []Question{
					{Text: "Y?", Dependencies: Dependencies{"X?": ExpectTrue}},
				}},
			},
			want: "dependency cycle detected involving questions: X?, Y?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestNew_CollectsAllProblems(t *testing.T) {
	_, err := New([]Entry{
		{Candidate: Candidate{ID: "a"}},
		{Candidate: Candidate{ID: "b", Name: "B"}, Questions: []Question{
			{Text: "Q?", Dependencies: Dependencies{"Gone?": ExpectUnset}},
		}},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(ve.Problems) != 3 {
		t.Errorf("problems = %d, want 3: %v", len(ve.Problems), ve.Problems)
	}
}

func TestExpect_Conflicts(t *testing.T) {
	tests := []struct {
		expect Expect
		delta  int
		want   bool
	}{
		{ExpectTrue, 2, false},
		{ExpectTrue, 0, false},
		{ExpectTrue, -1, true},
		{ExpectFalse, 1, true},
		{ExpectFalse, -2, false},
		{ExpectUnset, 2, true},
		{ExpectUnset, -2, false},
		{ExpectUnset, 0, false},
	}
	for _, tt := range tests {
		if got := tt.expect.Conflicts(tt.delta); got != tt.want {
			t.Errorf("%s.Conflicts(%d) = %v, want %v", tt.expect, tt.delta, got, tt.want)
		}
	}
}

func TestExpect_Sign(t *testing.T) {
	tests := []struct {
		expect Expect
		want   int
	}{
		{ExpectTrue, 1},
		{ExpectFalse, -1},
		{ExpectUnset, -1},
	}
	for _, tt := range tests {
		if got := tt.expect.Sign(); got != tt.want {
			t.Errorf("%s.Sign() = %d, want %d", tt.expect, got, tt.want)
		}
		// A resolution in the implied direction never contradicts the
		// requirement that produced it.
		if tt.expect.Conflicts(tt.want * 2) {
			t.Errorf("%s conflicts with its own implied delta %d", tt.expect, tt.want*2)
		}
	}
}

func TestBuild_Seed(t *testing.T) {
	c, err := catalog.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.Len() != len(c.Candidates) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(c.Candidates))
	}
	if b.Name() != c.Name {
		t.Errorf("Name() = %q, want %q", b.Name(), c.Name)
	}

	// Building twice gives the same bank.
	again, err := Build(c)
	if err != nil {
		t.Fatalf("Build again: %v", err)
	}
	for _, id := range b.CandidateIDs() {
		if strings.Join(b.QuestionTexts(id), "|") != strings.Join(again.QuestionTexts(id), "|") {
			t.Errorf("candidate %q questions differ between builds", id)
		}
	}
}

func TestBuild_Templates(t *testing.T) {
	yes, no := true, false
	c := &catalog.Catalog{
		Version: "v1.0.0",
		Name:    "Tiny",
		Categories: []catalog.CategoryDef{
			{Name: "Strategy"},
			{Name: "Euro", Parent: "Strategy"},
			{Name: "Abstract", Parent: "Strategy"},
		},
		Attributes: []catalog.AttributeDef{
			{Key: "teams", Question: "Does it have teams?", Statement: "It has teams."},
			{Key: "duel", Question: "Is it for two players?", Statement: "It is for two.", Group: "players",
				Requires: map[string]*bool{"teams": &no}},
			{Key: "roles", Question: "Are there hidden roles?", Statement: "There are hidden roles.",
				Requires: map[string]*bool{"teams": &yes, "duel": nil}},
		},
		Candidates: []catalog.CandidateMetadata{
			{
				ID: "x", Name: "Xylo Quest",
				Categories: []string{"Euro", "Abstract"},
				Attributes: []string{"duel", "roles"},
				Credits:    []string{"Ann Lee"},
				Year:       1987,
			},
			{ID: "y", Name: "Yak", Attributes: []string{"teams"}},
		},
	}

	b, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		`Does its name start with "X"?`,
		"Is it an Euro game?",
		"Is it a Strategy game?",
		"Is it an Abstract game?",
		"Is it for two players?",
		"Are there hidden roles?",
		CreditsQuestion,
		"Was it made by Ann Lee?",
		"Was it released in the 1980s?",
	}
	got := b.Questions("x")
	if len(got) != len(want) {
		t.Fatalf("questions = %d, want %d: %v", len(got), len(want), b.QuestionTexts("x"))
	}
	for i, q := range got {
		if q.Text != want[i] {
			t.Errorf("question %d = %q, want %q", i, q.Text, want[i])
		}
		if q.Order != i {
			t.Errorf("question %q order = %d, want %d", q.Text, q.Order, i)
		}
	}

	euro, _ := b.Question("x", "Is it an Euro game?")
	if euro.Dependencies["Is it a Strategy game?"] != ExpectTrue {
		t.Errorf("Euro deps = %v, want Strategy true", euro.Dependencies)
	}
	duel, _ := b.Question("x", "Is it for two players?")
	if duel.Group != "players" || duel.Dependencies["Does it have teams?"] != ExpectFalse {
		t.Errorf("duel = %+v, want group players and teams false", duel)
	}
	roles, _ := b.Question("x", "Are there hidden roles?")
	if roles.Group != GroupAttribute {
		t.Errorf("roles group = %q, want %q", roles.Group, GroupAttribute)
	}
	if roles.Dependencies["Is it for two players?"] != ExpectUnset {
		t.Errorf("roles deps = %v, want two players unset", roles.Dependencies)
	}
	author, _ := b.Question("x", "Was it made by Ann Lee?")
	if author.Dependencies[CreditsQuestion] != ExpectTrue {
		t.Errorf("author deps = %v, want credits true", author.Dependencies)
	}

	groups := b.Groups()
	if n := len(groups[GroupCategory]); n != 3 {
		t.Errorf("category group size = %d, want 3 (parent deduplicated)", n)
	}
}

func TestBuild_DanglingRequirement(t *testing.T) {
	yes := true
	// "roles" requires "teams", but no candidate carries the teams attribute,
	// so its question text is never produced.
	c := &catalog.Catalog{
		Version: "v1.0.0",
		Name:    "Dangling",
		Attributes: []catalog.AttributeDef{
			{Key: "teams", Question: "Does it have teams?", Statement: "It has teams."},
			{Key: "roles", Question: "Are there hidden roles?", Statement: "Roles.",
				Requires: map[string]*bool{"teams": &yes}},
		},
		Candidates: []catalog.CandidateMetadata{
			{ID: "x", Name: "X", Attributes: []string{"roles"}},
		},
	}
	_, err := Build(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestBuild_EmptyCatalog(t *testing.T) {
	if _, err := Build(&catalog.Catalog{Name: "none"}); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("err = %v, want ErrEmptyCatalog", err)
	}
}

func TestBuild_CategoryParentCycle(t *testing.T) {
	c := &catalog.Catalog{
		Version: "v1.0.0",
		Name:    "Loop",
		Categories: []catalog.CategoryDef{
			{Name: "a", Parent: "b"},
			{Name: "b", Parent: "a"},
		},
		Candidates: []catalog.CandidateMetadata{
			{ID: "x", Name: "X", Categories: []string{"a"}},
		},
	}
	_, err := Build(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if !strings.Contains(err.Error(), "parent cycle") {
		t.Errorf("err = %v, want a parent cycle problem", err)
	}
}

func TestQuestionsFor_StopsAtRepeatedCategory(t *testing.T) {
	c := &catalog.Catalog{
		Categories: []catalog.CategoryDef{
			{Name: "a", Parent: "b"},
			{Name: "b", Parent: "a"},
		},
	}
	qs := questionsFor(c, catalog.CandidateMetadata{ID: "x", Name: "X Y", Categories: []string{"a", "b"}})

	var texts []string
	for _, q := range qs {
		if q.Group == GroupCategory {
			texts = append(texts, q.Text)
		}
	}
	want := []string{CategoryQuestion("a"), CategoryQuestion("b")}
	if len(texts) != len(want) {
		t.Fatalf("category questions = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("category question %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	b, err := New(scenarioEntries())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		in     string
		wantID string
		ok     bool
	}{
		{"a", "a", true},
		{"  B ", "b", true},
		{"C", "c", true},
		{"d", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c, ok := b.Lookup(tt.in)
		if ok != tt.ok || c.ID != tt.wantID {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.in, c.ID, ok, tt.wantID, tt.ok)
		}
	}
}
