// Package skills discovers, parses and validates skill packages. A skill is
// a directory containing a SKILL.md file whose frontmatter describes the
// skill and whose body holds the instructions an agent loads.
package skills

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/txnlab/skills/pkg/frontmatter"
)

// ManifestFileName is the manifest every skill directory must contain
const ManifestFileName = "SKILL.md"

// Skill represents one parsed skill package
type Skill struct {
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description" yaml:"description"`
	License       string            `json:"license,omitempty" yaml:"license,omitempty"`
	Compatibility string            `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Body          string            `json:"-" yaml:"-"`
	DirPath       string            `json:"path" yaml:"path"`
	ManifestPath  string            `json:"manifest" yaml:"manifest"`

	// fields keeps the raw frontmatter so the validator can check value shapes
	fields frontmatter.Fields
}

// Fields returns the raw frontmatter the skill was built from
func (s *Skill) Fields() frontmatter.Fields {
	return s.fields
}

// ParseManifest reads and parses a SKILL.md file. dirPath is recorded as the
// skill's directory; it is not required to match the manifest's location.
func ParseManifest(manifestPath, dirPath string) (*Skill, error) {
	skill, hasFrontmatter, err := readManifest(manifestPath, dirPath)
	if err != nil {
		return nil, err
	}
	if !hasFrontmatter {
		return nil, errors.Wrapf(frontmatter.ErrNoFrontmatter, "failed to parse %s", manifestPath)
	}
	return skill, nil
}

// readManifest reads a SKILL.md file. A file without frontmatter yields a
// skill with no fields whose body is the whole file.
func readManifest(manifestPath, dirPath string) (*Skill, bool, error) {
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to read skill manifest")
	}

	doc, err := frontmatter.Parse(string(content))
	if err != nil {
		if !errors.Is(err, frontmatter.ErrNoFrontmatter) {
			return nil, false, errors.Wrapf(err, "failed to parse %s", manifestPath)
		}
		return newSkill(&frontmatter.Document{Body: string(content)}, manifestPath, dirPath), false, nil
	}

	return newSkill(doc, manifestPath, dirPath), true, nil
}

func newSkill(doc *frontmatter.Document, manifestPath, dirPath string) *Skill {
	fields := doc.Fields
	skill := &Skill{
		Name:          fields.String("name"),
		Description:   fields.String("description"),
		License:       fields.String("license"),
		Compatibility: fields.String("compatibility"),
		Body:          strings.TrimSpace(doc.Body),
		DirPath:       dirPath,
		ManifestPath:  manifestPath,
		fields:        fields,
	}

	if metadata, ok := fields.Get("metadata"); ok && metadata.Kind == frontmatter.Mapping {
		entries := metadata.Map()
		skill.Metadata = make(map[string]string, entries.Len())
		for _, key := range entries.Keys() {
			if value, _ := entries.Get(key); value.IsScalar() {
				skill.Metadata[key] = value.String()
			}
		}
	}

	return skill
}
