package agents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAgent(name string, present bool) Agent {
	return Agent{
		Name:           name,
		DisplayName:    name,
		GlobalSkillDir: filepath.Join("/home", name, "skills"),
		LocalSkillDir:  filepath.Join("."+name, "skills"),
		Detector:       DetectorFunc(func() bool { return present }),
	}
}

func TestDefault(t *testing.T) {
	home := t.TempDir()
	registry := Default(home)

	assert.Equal(t, []string{"claude-code", "codex", "cursor", "opencode"}, registry.Names())

	claude, ok := registry.Find("claude-code")
	require.True(t, ok)
	assert.Equal(t, "Claude Code", claude.DisplayName)
	assert.Equal(t, filepath.Join(home, ".claude", "skills"), claude.GlobalSkillDir)
	assert.Equal(t, filepath.Join(".claude", "skills"), claude.LocalSkillDir)

	opencode, ok := registry.Find("opencode")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, ".opencode", "skills"), opencode.GlobalSkillDir)
}

func TestDefaultDetect(t *testing.T) {
	home := t.TempDir()
	registry := Default(home)

	assert.Empty(t, registry.Detect())

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".cursor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".claude.json"), []byte("{}"), 0o644))

	var names []string
	for _, agent := range registry.Detect() {
		names = append(names, agent.Name)
	}
	assert.Equal(t, []string{"claude-code", "cursor"}, names)
}

func TestRegistryFind(t *testing.T) {
	registry := NewRegistry(fakeAgent("one", true), fakeAgent("two", false))

	agent, ok := registry.Find("two")
	require.True(t, ok)
	assert.Equal(t, "two", agent.Name)

	_, ok = registry.Find("three")
	assert.False(t, ok)
}

func TestRegistryDetectOrder(t *testing.T) {
	registry := NewRegistry(
		fakeAgent("c", true),
		fakeAgent("a", false),
		fakeAgent("b", true),
	)

	detected := registry.Detect()
	require.Len(t, detected, 2)
	assert.Equal(t, "c", detected[0].Name)
	assert.Equal(t, "b", detected[1].Name)
}

func TestRegistryAllIsCopy(t *testing.T) {
	registry := NewRegistry(fakeAgent("one", true))

	all := registry.All()
	all[0].Name = "mutated"

	assert.Equal(t, []string{"one"}, registry.Names())
}

func TestRegistryDuplicateNames(t *testing.T) {
	first := fakeAgent("dup", true)
	second := fakeAgent("dup", false)
	second.DisplayName = "second"

	registry := NewRegistry(first, second)
	assert.Equal(t, []string{"dup"}, registry.Names())

	agent, _ := registry.Find("dup")
	assert.Equal(t, "dup", agent.DisplayName)
}

func TestRegistryResolve(t *testing.T) {
	registry := NewRegistry(fakeAgent("one", true), fakeAgent("two", true))

	found, unknown := registry.Resolve([]string{"two", "nope", "one", "two"})
	require.Len(t, found, 2)
	assert.Equal(t, "two", found[0].Name)
	assert.Equal(t, "one", found[1].Name)
	assert.Equal(t, []string{"nope"}, unknown)
}

func TestAgentWithoutDetector(t *testing.T) {
	assert.False(t, Agent{Name: "bare"}.Detect())
}

func TestPathDetector(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "exists")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	assert.True(t, PathDetector{filepath.Join(tmpDir, "missing"), existing}.Detect())
	assert.False(t, PathDetector{filepath.Join(tmpDir, "missing")}.Detect())
	assert.False(t, PathDetector{}.Detect())
}
