package installer

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/txnlab/skills/pkg/agents"
	"github.com/txnlab/skills/pkg/logger"
	"github.com/txnlab/skills/pkg/skills"
)

// Action names the operation an Outcome came from
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
	ActionLink      Action = "link"
	ActionUnlink    Action = "unlink"
)

// Outcome is the result for one (skill, agent) pair in a batch
type Outcome struct {
	Action     Action
	SkillName  string
	Agent      agents.Agent
	TargetPath string
	// Method is empty for removals
	Method Method
	Err    error
}

// Success reports whether the pair completed
func (o Outcome) Success() bool {
	return o.Err == nil
}

func fromInstall(action Action, r InstallResult) Outcome {
	o := Outcome{Action: action, SkillName: r.SkillName, Agent: r.Agent, TargetPath: r.TargetPath, Err: r.Err}
	if r.Success {
		o.Method = r.Method
	}
	return o
}

func fromRemove(action Action, r RemoveResult) Outcome {
	return Outcome{Action: action, SkillName: r.SkillName, Agent: r.Agent, TargetPath: r.TargetPath, Err: r.Err}
}

// RunInstall installs every skill for every agent. A failed pair does not
// stop the batch.
func (i *Installer) RunInstall(ctx context.Context, list []*skills.Skill, targets []agents.Agent, scope Scope) []Outcome {
	outcomes := make([]Outcome, 0, len(list)*len(targets))
	for _, skill := range list {
		for _, agent := range targets {
			o := fromInstall(ActionInstall, i.Install(skill, agent, scope))
			logOutcome(ctx, o)
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// RunUninstall removes every named skill from every agent
func (i *Installer) RunUninstall(ctx context.Context, names []string, targets []agents.Agent, scope Scope) []Outcome {
	outcomes := make([]Outcome, 0, len(names)*len(targets))
	for _, name := range names {
		for _, agent := range targets {
			o := fromRemove(ActionUninstall, i.Uninstall(name, agent, scope))
			logOutcome(ctx, o)
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// RunDevLink dev links every skill for every agent
func (i *Installer) RunDevLink(ctx context.Context, list []*skills.Skill, targets []agents.Agent, force bool) []Outcome {
	outcomes := make([]Outcome, 0, len(list)*len(targets))
	for _, skill := range list {
		for _, agent := range targets {
			o := fromInstall(ActionLink, i.DevLink(skill, agent, force))
			logOutcome(ctx, o)
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// RunDevUnlink removes the dev link of every named skill from every agent
func (i *Installer) RunDevUnlink(ctx context.Context, names []string, targets []agents.Agent) []Outcome {
	outcomes := make([]Outcome, 0, len(names)*len(targets))
	for _, name := range names {
		for _, agent := range targets {
			o := fromRemove(ActionUnlink, i.DevUnlink(name, agent))
			logOutcome(ctx, o)
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

func logOutcome(ctx context.Context, o Outcome) {
	log := logger.G(ctx).WithFields(logrus.Fields{
		"action": o.Action,
		"skill":  o.SkillName,
		"agent":  o.Agent.Name,
		"target": o.TargetPath,
	})
	if o.Err != nil {
		log.WithError(o.Err).Debug("skill operation failed")
		return
	}
	if o.Method != "" {
		log = log.WithField("method", o.Method)
	}
	log.Debug("skill operation completed")
}

// Failures combines the errors of all failed pairs, or returns nil when
// every pair succeeded
func Failures(outcomes []Outcome) error {
	var result *multierror.Error
	for _, o := range outcomes {
		if o.Err != nil {
			result = multierror.Append(result, errors.Wrapf(o.Err, "%s %s for %s", o.Action, o.SkillName, o.Agent.Name))
		}
	}
	return result.ErrorOrNil()
}
