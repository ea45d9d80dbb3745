package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/skills"
)

var errValidationFailed = errors.New("some skills failed validation")

// ValidateConfig holds configuration for the validate command
type ValidateConfig struct {
	Watch        bool
	DebounceTime int
}

// NewValidateConfig creates a new ValidateConfig with default values
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Watch:        false,
		DebounceTime: 300,
	}
}

// Validate validates the ValidateConfig and returns an error if invalid
func (c *ValidateConfig) Validate() error {
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [skill-name]",
		Short: "Validate skill(s) against the Agent Skills spec",
		Long: `Check SKILL.md manifests for schema violations and broken local links.
Without a name every skill in the skills directory is validated, including
directories whose SKILL.md cannot be parsed.

With --watch the skills directory is monitored and changed skills are
re-validated until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := getValidateConfigFromFlags(cmd)
			if err := config.Validate(); err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			scanner, err := a.scanner()
			if err != nil {
				return err
			}

			if config.Watch {
				return a.watchSkills(cmd.Context(), scanner.Root(), name, config)
			}
			if name != "" {
				return a.validateOne(scanner.Root(), name)
			}
			return a.validateAll(scanner)
		},
	}

	defaults := NewValidateConfig()
	cmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate skills as they change")
	cmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")

	return cmd
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}
	return config
}

// validateDir validates the skill in root/name, failing when it has no
// manifest
func validateDir(root, name string) (*skills.ValidationResult, error) {
	dir := filepath.Join(root, name)
	manifest := filepath.Join(dir, skills.ManifestFileName)
	if _, err := os.Stat(manifest); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("skill %q not found at %s", name, dir)
		}
		return nil, errors.Wrapf(err, "failed to read %s", manifest)
	}
	return skills.Validate(manifest, dir), nil
}

func (a *app) validateOne(root, name string) error {
	result, err := validateDir(root, name)
	if err != nil {
		return err
	}
	a.printValidation(name, result)
	if !result.Valid {
		return errors.Errorf("skill %q failed validation", name)
	}
	return nil
}

func (a *app) validateAll(scanner *skills.Scanner) error {
	result, err := scanner.Discover()
	if err != nil {
		return err
	}

	total := len(result.Skills) + len(result.Skipped)
	if total == 0 {
		a.presenter.Warning("No skills found to validate.")
		return nil
	}

	a.presenter.Info("")
	a.presenter.Section("Validating skills...")
	a.presenter.Info("")

	failed := 0
	for _, skill := range result.Skills {
		res := skills.ValidateSkill(skill)
		a.printValidation(skill.Name, res)
		if !res.Valid {
			failed++
		}
	}
	// Unparseable manifests are reported as failures rather than skipped
	for _, skipped := range result.Skipped {
		res := skills.Validate(filepath.Join(skipped.Dir, skills.ManifestFileName), skipped.Dir)
		a.printValidation(filepath.Base(skipped.Dir), res)
		if !res.Valid {
			failed++
		}
	}

	a.presenter.Info("")
	if failed > 0 {
		return errors.Wrapf(errValidationFailed, "%d of %d", failed, total)
	}

	a.presenter.Info(color.GreenString("  All %d skills passed validation.", total))
	return nil
}

func (a *app) printValidation(name string, result *skills.ValidationResult) {
	if result.Valid {
		a.presenter.Success(name)
		return
	}
	a.presenter.Failure(name)
	for _, verr := range result.Errors {
		a.presenter.Detail(verr.Field, verr.Message)
	}
}

func (a *app) validateNamed(root, name string) {
	result, err := validateDir(root, name)
	if err != nil {
		if _, statErr := os.Stat(filepath.Join(root, name)); os.IsNotExist(statErr) {
			a.presenter.Warning(fmt.Sprintf("%s was removed", name))
			return
		}
		a.presenter.Warning(err.Error())
		return
	}
	a.printValidation(name, result)
}
