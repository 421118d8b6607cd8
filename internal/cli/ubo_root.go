package cli

import (
	"context"

	"github.com/spf13/cobra"

	"dsl-ob-poc/internal/datastore"
)

// UBORootCommand groups the beneficial-ownership subcommands (resolve,
// cache, compare, graph) under one "ubo" entry point. ds is threaded down
// to UBOResolveCommand so "ubo resolve --cbu=..." can persist its result
// into the same case-history store the rest of the CLI uses; it may be nil
// when the command tree runs standalone (cmd/uboresolve), in which case
// --cbu is rejected at run time instead of at wiring time.
func UBORootCommand(ds datastore.DataStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ubo",
		Short: "Beneficial-ownership discovery against the ARES registry",
	}
	cmd.AddCommand(UBOResolveCommand(ds))
	cmd.AddCommand(UBOCacheCommand())
	cmd.AddCommand(UBOCompareCommand())
	cmd.AddCommand(UBOGraphCommand())
	return cmd
}

// RunUBO is the CLI wrapper function for the ubo command tree, mirroring
// RunMigrateVocabulary's build-set-execute pattern. ds may be nil (see
// UBORootCommand).
func RunUBO(ctx context.Context, ds datastore.DataStore, args []string) error {
	cmd := UBORootCommand(ds)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
