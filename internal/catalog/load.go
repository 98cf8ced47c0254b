package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed seed.yaml
var seedYAML []byte

const schemaURL = "schema://guessr/catalog.json"

// ErrUnsupportedVersion is returned when a catalog declares a format version
// this build cannot read.
var ErrUnsupportedVersion = errors.New("unsupported catalog version")

// SchemaError reports a catalog document that does not match the catalog schema.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog schema validation failed: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Seed returns the catalog embedded in the binary.
func Seed() (*Catalog, error) {
	c, err := Parse(seedYAML)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return c, nil
}

// Load reads and parses the catalog file at path. YAML and JSON are both accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document, validates it against the catalog schema,
// checks the format version and cross references, and returns the result.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// Normalize through JSON so the schema validator and the struct decoder
	// see the same value shapes regardless of input syntax.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, &SchemaError{Err: err}
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(c.Version) || semver.Major(c.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, c.Version, SupportedMajor)
	}

	if problems := ReferenceProblems(&c); len(problems) > 0 {
		return nil, fmt.Errorf("catalog validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return &c, nil
}

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// ReferenceProblems checks that every name a catalog entry mentions is
// declared, and that category parents do not loop. It returns one line per
// problem, or nil when c is consistent.
func ReferenceProblems(c *Catalog) []string {
	var errs []string

	categories := make(map[string]string, len(c.Categories))
	for _, def := range c.Categories {
		if _, dup := categories[def.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate category: %q", def.Name))
		}
		categories[def.Name] = def.Parent
	}
	for _, def := range c.Categories {
		if def.Parent == "" {
			continue
		}
		if _, ok := categories[def.Parent]; !ok {
			errs = append(errs, fmt.Sprintf("category %q references unknown parent %q", def.Name, def.Parent))
		}
	}

	// Parent chains must terminate.
	for _, def := range c.Categories {
		seen := map[string]bool{def.Name: true}
		for p := categories[def.Name]; p != ""; p = categories[p] {
			if seen[p] {
				errs = append(errs, fmt.Sprintf("category %q has a parent cycle", def.Name))
				break
			}
			seen[p] = true
		}
	}

	attributes := make(map[string]bool, len(c.Attributes))
	for _, def := range c.Attributes {
		if attributes[def.Key] {
			errs = append(errs, fmt.Sprintf("duplicate attribute: %q", def.Key))
		}
		attributes[def.Key] = true
	}
	for _, def := range c.Attributes {
		for other := range def.Requires {
			switch {
			case other == def.Key:
				errs = append(errs, fmt.Sprintf("attribute %q requires itself", def.Key))
			case !attributes[other]:
				errs = append(errs, fmt.Sprintf("attribute %q requires unknown attribute %q", def.Key, other))
			}
		}
	}

	for _, cand := range c.Candidates {
		for _, cat := range cand.Categories {
			if _, ok := categories[cat]; !ok {
				errs = append(errs, fmt.Sprintf("candidate %q references unknown category %q", cand.ID, cat))
			}
		}
		for _, attr := range cand.Attributes {
			if !attributes[attr] {
				errs = append(errs, fmt.Sprintf("candidate %q references unknown attribute %q", cand.ID, attr))
			}
		}
	}

	return errs
}
