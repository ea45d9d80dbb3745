package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/installer"
	"github.com/txnlab/skills/pkg/skills"
)

// DevConfig holds configuration for the dev link and unlink commands
type DevConfig struct {
	Agents []string
	All    bool
	Force  bool
}

// NewDevConfig creates a new DevConfig with default values
func NewDevConfig() *DevConfig {
	return &DevConfig{}
}

func getDevConfigFromFlags(cmd *cobra.Command) *DevConfig {
	config := NewDevConfig()
	if agents, err := cmd.Flags().GetStringArray("agent"); err == nil {
		config.Agents = agents
	}
	if all, err := cmd.Flags().GetBool("all"); err == nil {
		config.All = all
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}
	return config
}

func newDevCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development workflows for skill authors",
		Long: `Link skills from this repository into agent global skill directories so
edits are picked up without reinstalling.`,
	}

	cmd.AddCommand(newDevLinkCmd(a), newDevUnlinkCmd(a))
	return cmd
}

func newDevLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [skill-names...]",
		Short: "Symlink skill(s) from this repo into agent directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDevLink(cmd, args, getDevConfigFromFlags(cmd))
		},
	}

	defaults := NewDevConfig()
	addAgentFlag(cmd.Flags())
	addAllFlag(cmd.Flags(), "Link")
	cmd.Flags().BoolP("force", "f", defaults.Force, "Replace existing files or directories at the target")

	return cmd
}

func newDevUnlinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink [skill-names...]",
		Short: "Remove dev symlinks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDevUnlink(cmd, args, getDevConfigFromFlags(cmd))
		},
	}

	addAgentFlag(cmd.Flags())
	addAllFlag(cmd.Flags(), "Unlink")

	return cmd
}

func (a *app) runDevLink(cmd *cobra.Command, args []string, config *DevConfig) error {
	sel, err := a.selectSkills(args, config.All, "txnlab-skills dev link <skill-name...> or txnlab-skills dev link --all")
	if err != nil {
		return err
	}

	targets, err := a.resolveAgents(config.Agents, false)
	if err != nil {
		return err
	}

	for _, name := range sel.missing {
		a.presenter.Failure(fmt.Sprintf("Skill %q not found, skipping.", name))
	}

	inst, err := a.installer()
	if err != nil {
		return err
	}

	label := color.New(color.FgGreen).Sprint("Linked:")
	outcomes := inst.RunDevLink(cmd.Context(), sel.skills, targets, config.Force)
	sources := make(map[string]string, len(sel.skills))
	for _, skill := range sel.skills {
		sources[skill.Name] = skill.DirPath
	}
	for _, o := range outcomes {
		if o.Success() {
			a.presenter.Info(fmt.Sprintf("  %s %s → %s", label, sources[o.SkillName], o.TargetPath))
		} else {
			a.presenter.Failure(o.Err.Error())
		}
	}

	if err := installer.Failures(outcomes); err != nil {
		return err
	}
	if len(sel.missing) > 0 {
		return errors.Wrapf(skills.ErrSkillNotFound, "%s", joinQuoted(sel.missing))
	}
	return nil
}

func (a *app) runDevUnlink(cmd *cobra.Command, args []string, config *DevConfig) error {
	sel, err := a.selectSkills(args, config.All, "txnlab-skills dev unlink <skill-name...> or txnlab-skills dev unlink --all")
	if err != nil {
		return err
	}

	targets, err := a.resolveAgents(config.Agents, false)
	if err != nil {
		return err
	}

	for _, pattern := range sel.missing {
		if !containsString(sel.names, pattern) {
			a.presenter.Warning(fmt.Sprintf("No skills match %q", pattern))
		}
	}
	if len(sel.names) == 0 {
		return errNoSkills
	}

	inst, err := a.installer()
	if err != nil {
		return err
	}

	label := color.New(color.FgGreen).Sprint("Unlinked:")
	outcomes := inst.RunDevUnlink(cmd.Context(), sel.names, targets)
	for _, o := range outcomes {
		if o.Success() {
			a.presenter.Info(fmt.Sprintf("  %s %s", label, o.TargetPath))
		} else {
			a.presenter.Failure(o.Err.Error())
		}
	}

	return installer.Failures(outcomes)
}
