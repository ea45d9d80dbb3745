package skills

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrSkillsRootNotFound is returned when no candidate skills directory exists
var ErrSkillsRootNotFound = errors.New("could not find skills directory")

const skillsDirName = "skills"

// DefaultRoot resolves the skills directory for the running binary
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}

	return ResolveRoot(filepath.Dir(exe), cwd)
}

// ResolveRoot returns the first existing skills directory among the
// package location candidates, then the working directory
func ResolveRoot(executableDir, cwd string) (string, error) {
	candidates := []string{
		filepath.Join(executableDir, skillsDirName),
		filepath.Join(executableDir, "..", skillsDirName),
		filepath.Join(cwd, skillsDirName),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Clean(candidate), nil
		}
	}

	return "", errors.Wrapf(ErrSkillsRootNotFound, "looked in %s", strings.Join(candidates, ", "))
}
