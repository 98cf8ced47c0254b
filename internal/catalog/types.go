package catalog

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

// Catalog is the parsed form of a catalog file: the candidates the engine can
// guess plus the category and attribute vocabularies their questions are
// derived from.
type Catalog struct {
	// Version is the catalog format version (semver, e.g. "v1.0.0").
	Version string `json:"version"`

	// Name is a human-readable title shown in the UI header.
	Name string `json:"name"`

	Categories []CategoryDef       `json:"categories,omitempty"`
	Attributes []AttributeDef      `json:"attributes,omitempty"`
	Candidates []CandidateMetadata `json:"candidates"`
}

// CategoryDef declares a category. A category with a parent implies its parent:
// anything in "Euro" is also in "Strategy".
type CategoryDef struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// AttributeDef declares a yes/no attribute question shared by every candidate
// that lists the attribute's key.
type AttributeDef struct {
	Key       string `json:"key"`
	Question  string `json:"question"`
	Statement string `json:"statement"`
	Group     string `json:"group,omitempty"`

	// Requires maps another attribute key to the answer it must have for any
	// candidate carrying this attribute. A nil value means the other attribute
	// must not be affirmed (mutual exclusion).
	Requires map[string]*bool `json:"requires,omitempty"`
}

// CandidateMetadata is the raw catalog entry for one candidate.
type CandidateMetadata struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	Credits     []string `json:"credits,omitempty"`
	Year        int      `json:"year,omitempty"`
}

// Category returns the definition for name.
func (c *Catalog) Category(name string) (CategoryDef, bool) {
	for _, def := range c.Categories {
		if def.Name == name {
			return def, true
		}
	}
	return CategoryDef{}, false
}

// Attribute returns the definition for key.
func (c *Catalog) Attribute(key string) (AttributeDef, bool) {
	for _, def := range c.Attributes {
		if def.Key == key {
			return def, true
		}
	}
	return AttributeDef{}, false
}
