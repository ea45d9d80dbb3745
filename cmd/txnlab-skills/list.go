package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/skills"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	Output string
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{Output: outputText}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available skills",
		Long:  `List every skill in the skills directory with its description.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := getListConfigFromFlags(cmd)
			if err := validateOutputFormat(config.Output); err != nil {
				return err
			}
			return a.runList(config)
		},
	}

	defaults := NewListConfig()
	cmd.Flags().StringP("output", "o", defaults.Output, "Output format (text, json, yaml)")

	return cmd
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	return config
}

func (a *app) runList(config *ListConfig) error {
	scanner, err := a.scanner()
	if err != nil {
		return err
	}
	result, err := scanner.Discover()
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		a.presenter.Warning(fmt.Sprintf("Skipping %s: %v", skipped.Dir, skipped.Err))
	}

	if config.Output != outputText {
		list := result.Skills
		if list == nil {
			list = []*skills.Skill{}
		}
		return writeStructured(a.presenter.Output(), config.Output, list)
	}

	if len(result.Skills) == 0 {
		a.presenter.Warning("No skills found.")
		return nil
	}

	a.presenter.Section("Available skills:")
	a.presenter.Info("")

	nameColor := color.New(color.FgCyan)
	tw := tabwriter.NewWriter(a.presenter.Output(), 0, 0, 2, ' ', 0)
	for _, skill := range result.Skills {
		fmt.Fprintf(tw, "  %s\t%s\n", nameColor.Sprint(skill.Name), skill.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a.presenter.Info("")
	a.presenter.Info(color.New(color.Faint).Sprint("  Install: txnlab-skills add <skill-name>"))
	return nil
}
