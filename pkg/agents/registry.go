package agents

import (
	"path/filepath"
)

// Registry is a fixed, ordered set of agents. It is built once at startup
// and never modified afterwards.
type Registry struct {
	agents []Agent
	byName map[string]int
}

// NewRegistry creates a registry holding agents in the given order. A later
// agent with a duplicate name is ignored.
func NewRegistry(agents ...Agent) *Registry {
	r := &Registry{byName: make(map[string]int, len(agents))}
	for _, agent := range agents {
		if _, exists := r.byName[agent.Name]; exists {
			continue
		}
		r.byName[agent.Name] = len(r.agents)
		r.agents = append(r.agents, agent)
	}
	return r
}

// Default returns the built-in agents rooted at the given home directory
func Default(home string) *Registry {
	return NewRegistry(
		homeAgent(home, "claude-code", "Claude Code", ".claude", filepath.Join(home, ".claude.json")),
		homeAgent(home, "codex", "Codex", ".codex"),
		homeAgent(home, "cursor", "Cursor", ".cursor"),
		homeAgent(home, "opencode", "OpenCode", ".opencode"),
	)
}

func homeAgent(home, name, displayName, configDir string, extraPaths ...string) Agent {
	detector := append(PathDetector{filepath.Join(home, configDir)}, extraPaths...)
	return Agent{
		Name:           name,
		DisplayName:    displayName,
		GlobalSkillDir: filepath.Join(home, configDir, "skills"),
		LocalSkillDir:  filepath.Join(configDir, "skills"),
		Detector:       detector,
	}
}

// All returns every agent in registry order
func (r *Registry) All() []Agent {
	agents := make([]Agent, len(r.agents))
	copy(agents, r.agents)
	return agents
}

// Names returns agent names in registry order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.agents))
	for _, agent := range r.agents {
		names = append(names, agent.Name)
	}
	return names
}

// Find looks up an agent by name
func (r *Registry) Find(name string) (Agent, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Agent{}, false
	}
	return r.agents[idx], true
}

// Detect returns the agents whose detector reports them present, in registry order
func (r *Registry) Detect() []Agent {
	var detected []Agent
	for _, agent := range r.agents {
		if agent.Detect() {
			detected = append(detected, agent)
		}
	}
	return detected
}

// Resolve looks up each name and returns the known agents in argument order
// along with the names that are not registered. Repeated names are returned
// once.
func (r *Registry) Resolve(names []string) (found []Agent, unknown []string) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if agent, ok := r.Find(name); ok {
			found = append(found, agent)
		} else {
			unknown = append(unknown, name)
		}
	}
	return found, unknown
}
