package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/txnlab/skills/pkg/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Print the version information of txnlab-skills in JSON format.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			json, err := version.Get().JSON()
			if err != nil {
				return errors.Wrap(err, "failed to format version info")
			}
			fmt.Fprintln(a.presenter.Output(), json)
			return nil
		},
	}
}
