package main

import (
	"fmt"
	"strings"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/spf13/cobra"
)

func treeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the state tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(opts.treePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			m.Tree().Walk(func(s *statetree.State, depth int) {
				pattern := s.Pattern().String()
				if s.Pattern().Kind() == statetree.KindPathless {
					pattern = "(pathless)"
				}

				fmt.Fprintf(out, "%s%s %s", strings.Repeat("  ", depth), s.Name(), pattern)

				if p := s.Priority(); p != 0 {
					fmt.Fprintf(out, " priority=%d", p)
				}

				if !s.Enabled() {
					fmt.Fprint(out, " disabled")
				}

				fmt.Fprintln(out)
			})

			return nil
		},
	}
}
