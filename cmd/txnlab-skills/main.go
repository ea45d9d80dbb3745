package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/txnlab/skills/pkg/agents"
	"github.com/txnlab/skills/pkg/config"
	"github.com/txnlab/skills/pkg/installer"
	"github.com/txnlab/skills/pkg/logger"
	"github.com/txnlab/skills/pkg/presenter"
	"github.com/txnlab/skills/pkg/skills"
)

// app carries the dependencies every command needs. It is assembled once in
// main and handed to the command constructors.
type app struct {
	registry      *agents.Registry
	presenter     *presenter.TerminalPresenter
	viper         *viper.Viper
	installerOpts []installer.Option
	// interactive enables confirmation prompts
	interactive bool
}

func (a *app) config() config.Config {
	return config.LoadFrom(a.viper)
}

// scanner returns a scanner over the configured skills directory, or the
// one resolved next to the binary when none is configured
func (a *app) scanner() (*skills.Scanner, error) {
	if dir := a.config().SkillsDir; dir != "" {
		return skills.NewScanner(skills.WithRoot(dir))
	}
	return skills.NewScanner(skills.WithResolvedRoot())
}

func (a *app) installer() (*installer.Installer, error) {
	return installer.NewInstaller(a.installerOpts...)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "txnlab-skills",
		Short:         "Agent skills for TxnLab's Algorand ecosystem",
		Long:          `Discover, validate and install agent skills into Claude Code, Codex, Cursor and OpenCode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.config()
			if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			if os.Getenv("NO_COLOR") == "" {
				a.presenter.SetColorMode(presenter.ParseColorMode(cfg.Color))
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, logger.G(ctx).WithField("command", cmd.CommandPath())))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("skills-dir", "", "Skills directory (default: next to the binary, then ./skills)")
	flags.String("log-level", logger.DefaultLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", logger.DefaultFormat, "Log format (fmt, json)")
	flags.String("color", "auto", "Color output (auto, always, never)")

	_ = a.viper.BindPFlag(config.KeySkillsDir, flags.Lookup("skills-dir"))
	_ = a.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.viper.BindPFlag(config.KeyColor, flags.Lookup("color"))

	rootCmd.AddCommand(
		newListCmd(a),
		newInfoCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newValidateCmd(a),
		newDevCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

func main() {
	p := presenter.Default()

	v := viper.GetViper()
	if err := config.Init(v); err != nil {
		p.Error(err, "Failed to load configuration")
		os.Exit(1)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		p.Error(err, "Failed to get user home directory")
		os.Exit(1)
	}

	a := &app{
		registry:    agents.Default(home),
		presenter:   p,
		viper:       v,
		interactive: presenter.IsTerminal(os.Stdin),
	}

	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		p.Error(err, "")
		os.Exit(1)
	}
}
