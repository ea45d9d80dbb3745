// Package agents describes the host applications that can load skills and
// where each of them expects skills to be installed.
package agents

import (
	"os"
)

// Detector reports whether a host application is present on this machine
type Detector interface {
	Detect() bool
}

// DetectorFunc adapts a plain function to a Detector
type DetectorFunc func() bool

// Detect calls f
func (f DetectorFunc) Detect() bool {
	return f()
}

// PathDetector detects a host by the existence of any of its paths
type PathDetector []string

// Detect reports whether at least one path exists
func (p PathDetector) Detect() bool {
	for _, path := range p {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// Agent is a static descriptor of a host application that consumes skills
type Agent struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	// GlobalSkillDir is an absolute directory under the user's home
	GlobalSkillDir string `json:"global_skill_dir" yaml:"global_skill_dir"`
	// LocalSkillDir is relative to the project working directory
	LocalSkillDir string   `json:"local_skill_dir" yaml:"local_skill_dir"`
	Detector      Detector `json:"-" yaml:"-"`
}

// Detect runs the agent's detector. An agent without a detector is never detected.
func (a Agent) Detect() bool {
	if a.Detector == nil {
		return false
	}
	return a.Detector.Detect()
}
