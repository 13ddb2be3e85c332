package main

import (
	"github.com/fasthttp/routemanager"
	"github.com/fasthttp/routemanager/internal/logging"
	"github.com/fasthttp/routemanager/treefile"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	verbosity int
	treePath  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "routemanager",
		Short: "Resolve locations against a state tree",
		Long: `routemanager loads a state tree from a YAML or TOML file and resolves
locations against it, printing the states exited and entered on each change.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().StringVarP(&opts.treePath, "tree", "t", "", "State tree file (.yaml, .yml or .toml)")
	_ = rootCmd.MarkPersistentFlagRequired("tree")

	rootCmd.AddCommand(
		resolveCmd(opts),
		treeCmd(opts),
		serveCmd(opts),
	)

	return rootCmd
}

// loadManager returns a manager holding the states of the tree file.
func loadManager(path string, mopts ...routemanager.Option) (*routemanager.Manager, error) {
	logger := logging.GetLogger("treefile")
	done := logging.LogOperationStart(logger, "load "+path)
	defer done()

	f, err := treefile.Load(path)
	if err != nil {
		return nil, err
	}

	states, err := f.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s", path)
	}

	mopts = append([]routemanager.Option{routemanager.WithLogger(logging.GetLogger("manager"))}, mopts...)

	m := routemanager.New(mopts...)
	m.Add(states...)

	logger.Info().Str("path", path).Int("states", len(states)).Msg("State tree loaded")

	return m, nil
}
