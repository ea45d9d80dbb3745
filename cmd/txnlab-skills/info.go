package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/presenter"
	"github.com/txnlab/skills/pkg/skills"
)

// InfoConfig holds configuration for the info command
type InfoConfig struct {
	Output string
}

// NewInfoConfig creates a new InfoConfig with default values
func NewInfoConfig() *InfoConfig {
	return &InfoConfig{Output: outputText}
}

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <skill-name>",
		Short: "Show detailed info about a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := getInfoConfigFromFlags(cmd)
			if err := validateOutputFormat(config.Output); err != nil {
				return err
			}
			return a.runInfo(args[0], config)
		},
	}

	defaults := NewInfoConfig()
	cmd.Flags().StringP("output", "o", defaults.Output, "Output format (text, json, yaml)")

	return cmd
}

func getInfoConfigFromFlags(cmd *cobra.Command) *InfoConfig {
	config := NewInfoConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	return config
}

func (a *app) runInfo(name string, config *InfoConfig) error {
	scanner, err := a.scanner()
	if err != nil {
		return err
	}

	skill, err := scanner.FindByName(name)
	if err != nil {
		if errors.Is(err, skills.ErrSkillNotFound) {
			a.presenter.Info(`Run "txnlab-skills list" to see available skills.`)
			return errors.Errorf("skill %q not found", name)
		}
		return err
	}

	if config.Output != outputText {
		return writeStructured(a.presenter.Output(), config.Output, skill)
	}

	label := color.New(color.Faint).SprintFunc()
	width := presenter.TerminalWidth(a.presenter.Output())

	a.presenter.Section(skill.Name)
	a.presenter.Info("")
	a.presenter.Info(presenter.Wrap(skill.Description, width, 2))
	a.presenter.Info("")

	if metadata, ok := skill.Fields().Get("metadata"); ok {
		entries := metadata.Map()
		for _, key := range entries.Keys() {
			if value, ok := skill.Metadata[key]; ok {
				a.presenter.Info(fmt.Sprintf("  %s %s", label(key+":"), value))
			}
		}
		if len(skill.Metadata) > 0 {
			a.presenter.Info("")
		}
	}

	if skill.License != "" {
		a.presenter.Info(fmt.Sprintf("  %s %s", label("License:"), skill.License))
	}
	if skill.Compatibility != "" {
		a.presenter.Info(fmt.Sprintf("  %s %s", label("Compatibility:"), skill.Compatibility))
	}
	a.presenter.Info(fmt.Sprintf("  %s %s", label("Path:"), skill.DirPath))

	return nil
}
