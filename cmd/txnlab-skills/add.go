package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/txnlab/skills/pkg/installer"
	"github.com/txnlab/skills/pkg/skills"
)

// InstallConfig holds configuration shared by the add and remove commands
type InstallConfig struct {
	Agents []string
	Global bool
	Local  bool
	All    bool
	Yes    bool
}

// NewInstallConfig creates a new InstallConfig with default values
func NewInstallConfig() *InstallConfig {
	return &InstallConfig{Global: true}
}

// Scope returns the install scope selected by the flags. Local wins over
// the global default.
func (c *InstallConfig) Scope() installer.Scope {
	if c.Local {
		return installer.ScopeLocal
	}
	return installer.ScopeGlobal
}

func addInstallFlags(fs *pflag.FlagSet, verb, preposition string) {
	defaults := NewInstallConfig()
	addAgentFlag(fs)
	fs.BoolP("global", "g", defaults.Global, fmt.Sprintf("%s %s the global skill directory (default)", verb, preposition))
	fs.BoolP("local", "l", defaults.Local, fmt.Sprintf("%s %s the project skill directory", verb, preposition))
	addAllFlag(fs, verb)
	fs.BoolP("yes", "y", defaults.Yes, "Skip confirmation prompts")
}

func getInstallConfigFromFlags(cmd *cobra.Command) *InstallConfig {
	config := NewInstallConfig()
	if agents, err := cmd.Flags().GetStringArray("agent"); err == nil {
		config.Agents = agents
	}
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	if local, err := cmd.Flags().GetBool("local"); err == nil {
		config.Local = local
	}
	if all, err := cmd.Flags().GetBool("all"); err == nil {
		config.All = all
	}
	if yes, err := cmd.Flags().GetBool("yes"); err == nil {
		config.Yes = yes
	}
	return config
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [skill-names...]",
		Short: "Install skill(s) to detected/specified agent(s)",
		Long: `Install skills into agent skill directories. Skills are symlinked to this
repository, or copied when the platform does not allow symlinks.

Skill names may be globs. Without --agent, every detected agent is targeted.

Examples:
  txnlab-skills add algorand-balance
  txnlab-skills add 'algorand-*' --agent claude-code
  txnlab-skills add --all --local -y`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd, args, getInstallConfigFromFlags(cmd))
		},
	}

	addInstallFlags(cmd.Flags(), "Install", "to")
	cmd.MarkFlagsMutuallyExclusive("global", "local")

	return cmd
}

func (a *app) runAdd(cmd *cobra.Command, args []string, config *InstallConfig) error {
	sel, err := a.selectSkills(args, config.All, "txnlab-skills add <skill-name...> or txnlab-skills add --all")
	if err != nil {
		return err
	}

	targets, err := a.resolveAgents(config.Agents, true)
	if err != nil {
		return err
	}

	for _, name := range sel.missing {
		a.presenter.Failure(fmt.Sprintf("Skill %q not found, skipping.", name))
	}
	if len(sel.skills) == 0 {
		return errors.Wrap(skills.ErrSkillNotFound, "nothing to install")
	}

	question := fmt.Sprintf("Install %s to %s (%s)?", plural(len(sel.skills), "skill"), plural(len(targets), "agent"), config.Scope())
	if !a.confirm(question, config.Yes) {
		a.presenter.Info("Aborted.")
		return nil
	}

	inst, err := a.installer()
	if err != nil {
		return err
	}

	dim := color.New(color.Faint).SprintFunc()
	var outcomes []installer.Outcome
	for _, skill := range sel.skills {
		a.presenter.Info("")
		a.presenter.Info(fmt.Sprintf("  %s %s", color.New(color.Bold).Sprint("Installing:"), skill.Name))
		a.presenter.Info(fmt.Sprintf("  %s %s", dim("→"), skill.Description))
		a.presenter.Info("")

		for _, o := range inst.RunInstall(cmd.Context(), []*skills.Skill{skill}, targets, config.Scope()) {
			outcomes = append(outcomes, o)
			if !o.Success() {
				a.presenter.Failure(fmt.Sprintf("%s — %v", o.Agent.DisplayName, o.Err))
				continue
			}
			suffix := ""
			if o.Method == installer.MethodCopy {
				suffix = dim(" (copied)")
			}
			a.presenter.Success(fmt.Sprintf("%s — %s → %s%s", o.Agent.DisplayName, o.SkillName, o.TargetPath, suffix))
		}
	}
	a.presenter.Info("")

	if err := installer.Failures(outcomes); err != nil {
		return err
	}
	if len(sel.missing) > 0 {
		return errors.Wrapf(skills.ErrSkillNotFound, "%s", joinQuoted(sel.missing))
	}
	return nil
}
