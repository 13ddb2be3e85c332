package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func resolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve LOCATION...",
		Short: "Resolve a sequence of locations",
		Long: `Resolve each location in turn, as if the user navigated through them,
and print the states exited and entered on each change followed by the
active params.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(opts.treePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, location := range args {
				res, _ := m.SetLocation(location)

				fmt.Fprintf(out, "== %s (%s)\n", location, res.Outcome)
				fmt.Fprint(out, res.String())
			}

			return nil
		},
	}
}
