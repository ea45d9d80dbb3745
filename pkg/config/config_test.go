package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// keep a real user config file out of the search path
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	xdg.Reload()
}

func TestInitDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	v := viper.New()
	require.NoError(t, Init(v))

	cfg := LoadFrom(v)
	assert.Equal(t, Config{LogLevel: "warn", LogFormat: "fmt", Color: "auto"}, cfg)
}

func TestInitEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TXNLAB_SKILLS_SKILLS_DIR", "/opt/skills")
	t.Setenv("TXNLAB_SKILLS_LOG_LEVEL", "debug")

	v := viper.New()
	require.NoError(t, Init(v))

	cfg := LoadFrom(v)
	assert.Equal(t, "/opt/skills", cfg.SkillsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInitConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("skills_dir: ./my-skills\nlog_format: json\n"), 0o644))

	v := viper.New()
	require.NoError(t, Init(v))

	cfg := LoadFrom(v)
	assert.Equal(t, "./my-skills", cfg.SkillsDir)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestInitDotenv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TXNLAB_SKILLS_COLOR=never\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TXNLAB_SKILLS_COLOR") })

	v := viper.New()
	require.NoError(t, Init(v))

	assert.Equal(t, "never", LoadFrom(v).Color)
}

func TestInitDotenvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("TXNLAB_SKILLS_LOG_LEVEL=info\n"), 0o644))
	chdir(t, dir)
	t.Setenv("TXNLAB_SKILLS_LOG_LEVEL", "error")

	v := viper.New()
	require.NoError(t, Init(v, envFile))

	assert.Equal(t, "error", LoadFrom(v).LogLevel)
}

func TestInitInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("skills_dir: [unclosed\n"), 0o644))

	err := Init(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfigDir(t *testing.T) {
	assert.Equal(t, AppName, filepath.Base(ConfigDir()))
}
