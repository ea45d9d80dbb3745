package skills

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ErrSkillNotFound is returned when no discovered skill has the requested name
var ErrSkillNotFound = errors.New("skill not found")

// Scanner discovers skills in the immediate subdirectories of a root
type Scanner struct {
	root string
}

// Option is a function that configures a Scanner
type Option func(*Scanner) error

// WithRoot scans the given directory
func WithRoot(dir string) Option {
	return func(s *Scanner) error {
		s.root = dir
		return nil
	}
}

// WithResolvedRoot locates the skills directory next to the running binary,
// falling back to the current working directory
func WithResolvedRoot() Option {
	return func(s *Scanner) error {
		root, err := DefaultRoot()
		if err != nil {
			return err
		}
		s.root = root
		return nil
	}
}

// NewScanner creates a new skill scanner. Without options the root is
// resolved with WithResolvedRoot.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{}

	if len(opts) == 0 {
		opts = []Option{WithResolvedRoot()}
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Root returns the directory being scanned
func (s *Scanner) Root() string {
	return s.root
}

// Skipped records a skill directory whose manifest exists but could not be
// read or parsed
type Skipped struct {
	Dir string
	Err error
}

// DiscoveryResult holds the skills found under a root, sorted by name, and
// the directories that looked like skills but failed to parse
type DiscoveryResult struct {
	Skills  []*Skill
	Skipped []Skipped
}

// Discover parses every subdirectory of the root that contains a SKILL.md.
// A missing root yields an empty result.
func (s *Scanner) Discover() (*DiscoveryResult, error) {
	result := &DiscoveryResult{}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", s.root)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(s.root, entry.Name())

		// Stat follows symlinks so linked skill directories are included
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		manifestPath := filepath.Join(entryPath, ManifestFileName)
		if _, err := os.Stat(manifestPath); err != nil {
			if !os.IsNotExist(err) {
				result.Skipped = append(result.Skipped, Skipped{Dir: entryPath, Err: err})
			}
			continue
		}

		skill, err := ParseManifest(manifestPath, entryPath)
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{Dir: entryPath, Err: err})
			continue
		}

		result.Skills = append(result.Skills, skill)
	}

	sort.SliceStable(result.Skills, func(i, j int) bool {
		return result.Skills[i].Name < result.Skills[j].Name
	})

	return result, nil
}

// FindByName returns the discovered skill with the given name
func (s *Scanner) FindByName(name string) (*Skill, error) {
	result, err := s.Discover()
	if err != nil {
		return nil, err
	}

	for _, skill := range result.Skills {
		if skill.Name == name {
			return skill, nil
		}
	}

	return nil, errors.Wrapf(ErrSkillNotFound, "skill '%s'", name)
}

// Names returns the names of all discovered skills in sorted order
func (s *Scanner) Names() ([]string, error) {
	result, err := s.Discover()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Skills))
	for _, skill := range result.Skills {
		names = append(names, skill.Name)
	}

	return names, nil
}
