package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/txnlab/skills/pkg/agents"
	"github.com/txnlab/skills/pkg/skills"
)

var (
	errNoSkills = errors.New("no skills specified")
	errNoAgents = errors.New("no agents detected")
)

func addAgentFlag(fs *pflag.FlagSet) {
	fs.StringArrayP("agent", "a", nil, "Target agent (repeatable)")
}

func addAllFlag(fs *pflag.FlagSet, verb string) {
	fs.Bool("all", false, fmt.Sprintf("%s all skills", verb))
}

// resolveAgents returns the agents named on the command line, or the
// detected agents when none were named. Unknown names are warned about and
// dropped.
func (a *app) resolveAgents(names []string, announce bool) ([]agents.Agent, error) {
	if len(names) > 0 {
		found, unknown := a.registry.Resolve(names)
		for _, name := range unknown {
			a.presenter.Warning(fmt.Sprintf("Unknown agent: %q (known: %v)", name, a.registry.Names()))
		}
		if len(found) == 0 {
			return nil, errNoAgents
		}
		return found, nil
	}

	detected := a.registry.Detect()
	if len(detected) == 0 {
		a.presenter.Info("Use --agent <name> to specify an agent manually.")
		return nil, errNoAgents
	}

	if announce {
		a.presenter.Info("Detected agents:")
		for _, agent := range detected {
			a.presenter.Success(agent.DisplayName)
		}
	}
	return detected, nil
}

// selection is the outcome of resolving skill name arguments
type selection struct {
	skills []*skills.Skill
	// names holds every selected name, including ones with no skill
	names   []string
	missing []string
}

// selectSkills resolves name arguments (literal or glob) or --all against
// the discovered skills
func (a *app) selectSkills(args []string, all bool, usage string) (*selection, error) {
	if len(args) == 0 && !all {
		a.presenter.Info("Usage: " + usage)
		return nil, errNoSkills
	}

	scanner, err := a.scanner()
	if err != nil {
		return nil, err
	}
	result, err := scanner.Discover()
	if err != nil {
		return nil, err
	}
	for _, skipped := range result.Skipped {
		a.presenter.Warning(fmt.Sprintf("Skipping %s: %v", skipped.Dir, skipped.Err))
	}

	sel := &selection{}
	if all {
		sel.skills = result.Skills
		for _, skill := range result.Skills {
			sel.names = append(sel.names, skill.Name)
		}
		if len(sel.names) == 0 {
			return nil, errors.Wrapf(errNoSkills, "no skills found in %s", scanner.Root())
		}
		return sel, nil
	}

	names, unmatched := skills.MatchNames(result.Skills, args)
	byName := make(map[string]*skills.Skill, len(result.Skills))
	for _, skill := range result.Skills {
		byName[skill.Name] = skill
	}

	sel.names = names
	for _, name := range names {
		if skill, ok := byName[name]; ok {
			sel.skills = append(sel.skills, skill)
		} else {
			sel.missing = append(sel.missing, name)
		}
	}
	sel.missing = append(sel.missing, unmatched...)

	return sel, nil
}

// confirm asks before changing anything unless --yes was given or stdin is
// not a terminal
func (a *app) confirm(question string, yes bool) bool {
	if yes || !a.interactive {
		return true
	}
	return a.presenter.Confirm(question, true)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
