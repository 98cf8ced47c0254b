package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalYAML = `
version: v1.2.0
name: Tiny
categories:
  - name: Fruit
  - name: Citrus
    parent: Fruit
attributes:
  - key: sour
    question: Is it sour?
    statement: It is sour.
  - key: sweet
    question: Is it sweet?
    statement: It is sweet.
    requires:
      sour: null
candidates:
  - id: lemon
    name: Lemon
    categories: [Citrus]
    attributes: [sour]
  - id: mango
    name: Mango
    categories: [Fruit]
    attributes: [sweet]
    year: 1999
`

func TestSeed_Parses(t *testing.T) {
	c, err := Seed()
	if err != nil {
		t.Fatalf("seed catalog failed to parse: %v", err)
	}
	if c.Name == "" {
		t.Error("seed catalog has no name")
	}
	if len(c.Candidates) < 10 {
		t.Errorf("seed candidates = %d, want at least 10", len(c.Candidates))
	}
}

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(c.Candidates))
	}
	if c.Candidates[1].Year != 1999 {
		t.Errorf("mango year = %d, want 1999", c.Candidates[1].Year)
	}

	sweet, ok := c.Attribute("sweet")
	if !ok {
		t.Fatal("expected attribute sweet")
	}
	v, present := sweet.Requires["sour"]
	if !present {
		t.Fatal("expected sweet to require sour")
	}
	if v != nil {
		t.Errorf("sweet requires sour = %v, want nil (exclusion)", *v)
	}

	citrus, ok := c.Category("Citrus")
	if !ok || citrus.Parent != "Fruit" {
		t.Errorf("Citrus = %+v, want parent Fruit", citrus)
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	doc := `{"version":"v1.0.0","name":"J","candidates":[{"id":"a","name":"Alpha"}]}`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Candidates[0].Name != "Alpha" {
		t.Errorf("name = %q, want Alpha", c.Candidates[0].Name)
	}
}

func TestParse_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"version":"v1.0.0","candidates":[{"id":"a","name":"A"}]}`},
		{"no candidates", `{"version":"v1.0.0","name":"x","candidates":[]}`},
		{"bad id", `{"version":"v1.0.0","name":"x","candidates":[{"id":"Not Valid","name":"A"}]}`},
		{"unknown field", `{"version":"v1.0.0","name":"x","extra":1,"candidates":[{"id":"a","name":"A"}]}`},
		{"question without mark", `{"version":"v1.0.0","name":"x","attributes":[{"key":"k","question":"no mark","statement":"s"}],"candidates":[{"id":"a","name":"A"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *SchemaError", err)
			}
		})
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	doc := `{"version":"v2.0.0","name":"x","candidates":[{"id":"a","name":"A"}]}`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestParse_UnknownReferences(t *testing.T) {
	doc := `
version: v1.0.0
name: Broken
categories:
  - name: A
    parent: Missing
attributes:
  - key: x
    question: X?
    statement: X.
    requires:
      y: true
candidates:
  - id: c
    name: C
    categories: [Nope]
    attributes: [z]
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{`unknown parent "Missing"`, `unknown attribute "y"`, `unknown category "Nope"`, `unknown attribute "z"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestParse_CategoryParentCycle(t *testing.T) {
	doc := `
version: v1.0.0
name: Loop
categories:
  - name: A
    parent: B
  - name: B
    parent: A
candidates:
  - id: c
    name: C
    categories: [A]
`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "parent cycle") {
		t.Fatalf("err = %v, want parent cycle error", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Name != "Tiny" {
		t.Errorf("name = %q, want Tiny", c.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReferenceProblems(t *testing.T) {
	c, err := Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if problems := ReferenceProblems(c); len(problems) != 0 {
		t.Errorf("seed problems = %v, want none", problems)
	}

	c.Categories = append(c.Categories, CategoryDef{Name: "Orphan", Parent: "Missing"})
	problems := ReferenceProblems(c)
	if len(problems) != 1 || !strings.Contains(problems[0], "unknown parent") {
		t.Errorf("problems = %v, want one unknown parent", problems)
	}
}
