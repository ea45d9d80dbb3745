package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/txnlab/skills/pkg/frontmatter"
)

// Schema limits for manifest fields
const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500
)

var namePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidationError is a single schema violation
type ValidationError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds every violation found in one pass, in check order
type ValidationResult struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"errors" yaml:"errors"`
	Skill  *Skill            `json:"-" yaml:"-"`
}

// Validate checks a skill manifest against the schema. It never returns a Go
// error: a manifest that cannot be read is reported as a single violation.
// A manifest without frontmatter is checked as one with no fields.
func Validate(manifestPath, dirPath string) *ValidationResult {
	skill, _, err := readManifest(manifestPath, dirPath)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   ManifestFileName,
				Message: fmt.Sprintf("Could not parse %s file: %v", ManifestFileName, err),
			}},
		}
	}

	v := &validator{skill: skill, fields: skill.Fields()}
	v.checkName()
	v.checkDescription()
	v.checkLicense()
	v.checkCompatibility()
	v.checkMetadata()
	v.checkBody()
	v.checkReferences()

	return &ValidationResult{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
		Skill:  skill,
	}
}

// ValidateSkill validates an already discovered skill from its manifest on disk
func ValidateSkill(skill *Skill) *ValidationResult {
	return Validate(skill.ManifestPath, skill.DirPath)
}

type validator struct {
	skill  *Skill
	fields frontmatter.Fields
	errors []ValidationError
}

func (v *validator) add(field, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) checkName() {
	name := v.skill.Name
	if name == "" {
		v.add("name", `Required field "name" is missing`)
		return
	}

	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		v.add("name", "Name must be 1-%d characters, got %d", MaxNameLength, n)
	}
	if !namePattern.MatchString(name) {
		v.add("name", "Name must be lowercase alphanumeric with hyphens, no leading/trailing/consecutive hyphens")
	}
	if strings.Contains(name, "--") {
		v.add("name", "Name must not contain consecutive hyphens")
	}

	if dirName := filepath.Base(v.skill.DirPath); name != dirName {
		v.add("name", "Name %q does not match directory name %q", name, dirName)
	}
}

func (v *validator) checkDescription() {
	description := v.skill.Description
	if description == "" {
		v.add("description", `Required field "description" is missing`)
		return
	}

	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		v.add("description", "Description must be 1-%d characters, got %d", MaxDescriptionLength, n)
	}
}

func (v *validator) checkLicense() {
	if value, ok := v.fields.Get("license"); ok && !value.IsScalar() {
		v.add("license", "License must be a string")
	}
}

func (v *validator) checkCompatibility() {
	value, ok := v.fields.Get("compatibility")
	if !ok {
		return
	}

	if !value.IsScalar() {
		v.add("compatibility", "Compatibility must be a string")
		return
	}
	if n := utf8.RuneCountInString(value.String()); n == 0 || n > MaxCompatibilityLength {
		v.add("compatibility", "Compatibility must be 1-%d characters, got %d", MaxCompatibilityLength, n)
	}
}

func (v *validator) checkMetadata() {
	value, ok := v.fields.Get("metadata")
	if !ok || (value.IsScalar() && value.String() == "") {
		return
	}

	if value.Kind != frontmatter.Mapping {
		v.add("metadata", "Metadata must be a key-value map")
		return
	}

	entries := value.Map()
	for _, key := range entries.Keys() {
		if entry, _ := entries.Get(key); !entry.IsScalar() {
			v.add("metadata", "Metadata value for key %q must be a string", key)
		}
	}
}

func (v *validator) checkBody() {
	if strings.TrimSpace(v.skill.Body) == "" {
		v.add("body", "%s body must contain content after frontmatter", ManifestFileName)
	}
}

func (v *validator) checkReferences() {
	for _, ref := range extractReferences(v.skill.Body) {
		refPath := filepath.Join(v.skill.DirPath, referencePath(ref))
		if _, err := os.Stat(refPath); err != nil {
			v.add("references", "Referenced file %q does not exist at %s", ref, refPath)
		}
	}
}
