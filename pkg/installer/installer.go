// Package installer links skills into agent skill directories. Installs use
// a directory symlink where the platform allows it and fall back to a full
// copy otherwise. Dev links are always symlinks.
package installer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/txnlab/skills/pkg/agents"
	"github.com/txnlab/skills/pkg/skills"
)

var (
	// ErrTargetExists is returned when a real file or directory occupies the target
	ErrTargetExists = errors.New("target exists and is not a symlink")
	// ErrNotInstalled is returned when removing a skill that is not present
	ErrNotInstalled = errors.New("skill not installed")
	// ErrNotSymlink is returned when dev unlink finds real content at the target
	ErrNotSymlink = errors.New("target is not a symlink")
)

// Scope selects which of an agent's skill directories is targeted
type Scope int

const (
	// ScopeGlobal targets the agent's directory under the user's home
	ScopeGlobal Scope = iota
	// ScopeLocal targets the agent's directory under the working directory
	ScopeLocal
)

func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// Method records how a skill ended up at its target
type Method string

const (
	MethodSymlink Method = "symlink"
	MethodCopy    Method = "copy"
)

// Linker creates newname as a symbolic link to oldname
type Linker func(oldname, newname string) error

// InstallResult is the outcome of installing or dev linking one skill for
// one agent
type InstallResult struct {
	Success    bool
	SkillName  string
	Agent      agents.Agent
	TargetPath string
	Method     Method
	Err        error
}

// Error returns the failure message, or "" on success
func (r InstallResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RemoveResult is the outcome of uninstalling or dev unlinking one skill
// for one agent
type RemoveResult struct {
	Success    bool
	SkillName  string
	Agent      agents.Agent
	TargetPath string
	Err        error
}

// Error returns the failure message, or "" on success
func (r RemoveResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Installer places skills into agent skill directories
type Installer struct {
	workDir  string
	link     Linker
	fallback func(error) bool
}

// Option configures an Installer instance
type Option func(*Installer) error

// WithWorkDir sets the project directory that local installs are relative to
func WithWorkDir(dir string) Option {
	return func(i *Installer) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve work directory %s", dir)
		}
		i.workDir = abs
		return nil
	}
}

// WithLinker replaces the function used to create symlinks
func WithLinker(link Linker) Option {
	return func(i *Installer) error {
		if link == nil {
			return errors.New("linker must not be nil")
		}
		i.link = link
		return nil
	}
}

// WithFallbackPolicy decides which symlink errors lead to a copy install
func WithFallbackPolicy(policy func(error) bool) Option {
	return func(i *Installer) error {
		if policy == nil {
			return errors.New("fallback policy must not be nil")
		}
		i.fallback = policy
		return nil
	}
}

// NewInstaller creates a new skill installer
func NewInstaller(opts ...Option) (*Installer, error) {
	i := &Installer{
		link:     os.Symlink,
		fallback: shouldFallback,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	if i.workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current working directory")
		}
		i.workDir = cwd
	}

	return i, nil
}

// TargetDir returns the agent's skill directory for the scope
func (i *Installer) TargetDir(agent agents.Agent, scope Scope) string {
	if scope == ScopeLocal {
		return filepath.Join(i.workDir, agent.LocalSkillDir)
	}
	return agent.GlobalSkillDir
}

// TargetPath returns where the named skill lives for the agent and scope
func (i *Installer) TargetPath(agent agents.Agent, scope Scope, name string) string {
	return filepath.Join(i.TargetDir(agent, scope), name)
}

// Install links the skill into the agent's directory for the scope. An
// existing symlink at the target is replaced; any other existing entry is
// left alone and reported as a conflict.
func (i *Installer) Install(skill *skills.Skill, agent agents.Agent, scope Scope) InstallResult {
	result := InstallResult{
		SkillName:  skill.Name,
		Agent:      agent,
		TargetPath: i.TargetPath(agent, scope, skill.Name),
		Method:     MethodSymlink,
	}

	method, err := i.install(skill.DirPath, result.TargetPath)
	if err != nil {
		result.Err = err
		return result
	}

	result.Success = true
	result.Method = method
	return result
}

func (i *Installer) install(sourceDir, target string) (Method, error) {
	source, err := resolveSource(sourceDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create skill directory")
	}

	isLink, exists, err := inspect(target)
	if err != nil {
		return "", err
	}
	if exists {
		if !isLink {
			return "", newPathError(ErrTargetExists, "Target path already exists and is not a symlink: %s", target)
		}
		if err := os.Remove(target); err != nil {
			return "", errors.Wrap(err, "failed to replace existing symlink")
		}
	}

	linkErr := i.link(source, target)
	if linkErr == nil {
		return MethodSymlink, nil
	}
	if !i.fallback(linkErr) {
		return "", errors.Wrap(linkErr, "failed to create symlink")
	}

	if err := copyDir(source, target); err != nil {
		_ = os.RemoveAll(target)
		return "", errors.Wrap(err, "failed to copy skill")
	}
	return MethodCopy, nil
}

// Uninstall removes the named skill from the agent's directory for the
// scope, whether it was installed as a symlink or a copy
func (i *Installer) Uninstall(name string, agent agents.Agent, scope Scope) RemoveResult {
	result := RemoveResult{
		SkillName:  name,
		Agent:      agent,
		TargetPath: i.TargetPath(agent, scope, name),
	}

	isLink, exists, err := inspect(result.TargetPath)
	switch {
	case err != nil:
		result.Err = err
		return result
	case !exists:
		result.Err = newPathError(ErrNotInstalled, "Skill %q is not installed at %s", name, result.TargetPath)
		return result
	}

	if isLink {
		err = os.Remove(result.TargetPath)
	} else {
		err = os.RemoveAll(result.TargetPath)
	}
	if err != nil {
		result.Err = errors.Wrap(err, "failed to remove skill")
		return result
	}

	result.Success = true
	return result
}

// DevLink symlinks the skill into the agent's global directory so edits to
// the source are picked up live. Real content at the target is only
// replaced when force is set. There is no copy fallback.
func (i *Installer) DevLink(skill *skills.Skill, agent agents.Agent, force bool) InstallResult {
	result := InstallResult{
		SkillName:  skill.Name,
		Agent:      agent,
		TargetPath: i.TargetPath(agent, ScopeGlobal, skill.Name),
		Method:     MethodSymlink,
	}

	if err := i.devLink(skill.DirPath, result.TargetPath, force); err != nil {
		result.Err = err
		return result
	}

	result.Success = true
	return result
}

func (i *Installer) devLink(sourceDir, target string, force bool) error {
	source, err := resolveSource(sourceDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "failed to create skill directory")
	}

	isLink, exists, err := inspect(target)
	if err != nil {
		return err
	}
	switch {
	case exists && isLink:
		if err := os.Remove(target); err != nil {
			return errors.Wrap(err, "failed to replace existing symlink")
		}
	case exists && !force:
		return newPathError(ErrTargetExists, "Target already exists and is not a symlink: %s. Use --force to overwrite.", target)
	case exists:
		if err := os.RemoveAll(target); err != nil {
			return errors.Wrap(err, "failed to remove existing skill")
		}
	}

	if err := i.link(source, target); err != nil {
		return errors.Wrap(err, "failed to create symlink")
	}
	return nil
}

// DevUnlink removes a dev link. Anything other than a symlink at the target
// is refused so real content is never deleted here.
func (i *Installer) DevUnlink(name string, agent agents.Agent) RemoveResult {
	result := RemoveResult{
		SkillName:  name,
		Agent:      agent,
		TargetPath: i.TargetPath(agent, ScopeGlobal, name),
	}

	isLink, exists, err := inspect(result.TargetPath)
	switch {
	case err != nil:
		result.Err = err
		return result
	case !exists:
		result.Err = newPathError(ErrNotInstalled, "No skill linked at %s", result.TargetPath)
		return result
	case !isLink:
		result.Err = newPathError(ErrNotSymlink, "%s is not a symlink (not managed by dev link)", result.TargetPath)
		return result
	}

	if err := os.Remove(result.TargetPath); err != nil {
		result.Err = errors.Wrap(err, "failed to remove symlink")
		return result
	}

	result.Success = true
	return result
}

// IsSymlinkTo reports whether target is a symlink resolving to source
func IsSymlinkTo(target, source string) bool {
	info, err := os.Lstat(target)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return false
	}

	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false
	}
	resolvedSource, err := resolveSource(source)
	if err != nil {
		return false
	}

	return resolvedTarget == resolvedSource
}

// inspect reports whether path exists without following a final symlink,
// so dangling links count as present
func inspect(path string) (isLink, exists bool, err error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, errors.Wrapf(err, "failed to inspect %s", path)
	}
	return info.Mode()&os.ModeSymlink != 0, true, nil
}

func resolveSource(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve skill directory %s", dir)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve skill directory %s", dir)
	}
	return resolved, nil
}
