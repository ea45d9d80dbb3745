package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/installer"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [skill-names...]",
		Short: "Remove skill(s) from agent(s)",
		Long: `Remove installed skills from agent skill directories, whether they were
installed as symlinks or copies.

Examples:
  txnlab-skills remove algorand-balance
  txnlab-skills remove --all --agent cursor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRemove(cmd, args, getInstallConfigFromFlags(cmd))
		},
	}

	addInstallFlags(cmd.Flags(), "Remove", "from")
	cmd.MarkFlagsMutuallyExclusive("global", "local")

	return cmd
}

func (a *app) runRemove(cmd *cobra.Command, args []string, config *InstallConfig) error {
	sel, err := a.selectSkills(args, config.All, "txnlab-skills remove <skill-name...> or txnlab-skills remove --all")
	if err != nil {
		return err
	}

	targets, err := a.resolveAgents(config.Agents, false)
	if err != nil {
		return err
	}

	// Globs that matched nothing have no target to remove
	names := sel.names
	for _, pattern := range sel.missing {
		if !containsString(names, pattern) {
			a.presenter.Warning(fmt.Sprintf("No skills match %q", pattern))
		}
	}
	if len(names) == 0 {
		return errNoSkills
	}

	question := fmt.Sprintf("Remove %s from %s (%s)?", plural(len(names), "skill"), plural(len(targets), "agent"), config.Scope())
	if !a.confirm(question, config.Yes) {
		a.presenter.Info("Aborted.")
		return nil
	}

	inst, err := a.installer()
	if err != nil {
		return err
	}

	outcomes := inst.RunUninstall(cmd.Context(), names, targets, config.Scope())
	for _, o := range outcomes {
		if o.Success() {
			a.presenter.Success(fmt.Sprintf("Removed %s from %s — %s", o.SkillName, o.Agent.DisplayName, o.TargetPath))
		} else {
			a.presenter.Failure(fmt.Sprintf("%s — %v", o.Agent.DisplayName, o.Err))
		}
	}
	a.presenter.Info("")

	return installer.Failures(outcomes)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
