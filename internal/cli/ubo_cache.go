package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dsl-ob-poc/internal/ubo/registry"
)

// UBOCacheCommand creates the "ubo cache" command group: warm and clear the
// ARES registry cache independently of a resolve run.
func UBOCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the ARES registry cache",
	}

	cmd.AddCommand(uboCacheWarmCommand())
	cmd.AddCommand(uboCacheClearCommand())
	return cmd
}

func uboCacheWarmCommand() *cobra.Command {
	var (
		ico       string
		dbConnStr string
	)

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch a registry ID and force a cache refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newUBORegistryClient(dbConnStr)
			if err != nil {
				return fmt.Errorf("failed to build registry client: %w", err)
			}
			payload, err := client.GetByID(context.Background(), ico, true)
			if err != nil {
				return fmt.Errorf("failed to warm cache for %s: %w", ico, err)
			}
			fmt.Printf("✅ cached %s (%s)\n", payload.ID(), payload.ObchodniJmenoOf())
			return nil
		},
	}

	cmd.Flags().StringVar(&ico, "ico", "", "registry ID to warm (required)")
	cmd.Flags().StringVar(&dbConnStr, "db", "", "database connection string (overrides DB_CONN_STRING)")
	cmd.MarkFlagRequired("ico")
	return cmd
}

func uboCacheClearCommand() *cobra.Command {
	var (
		ico       string
		dbConnStr string
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop a cached registry entry so the next resolve re-fetches it",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newUBORegistryClient(dbConnStr)
			if err != nil {
				return fmt.Errorf("failed to build registry client: %w", err)
			}
			if err := client.ForgetCached(context.Background(), ico); err != nil {
				return fmt.Errorf("failed to clear cache for %s: %w", ico, err)
			}
			fmt.Printf("🗑️  cleared cache entry for %s\n", registry.NormalizeID(ico))
			return nil
		},
	}

	cmd.Flags().StringVar(&ico, "ico", "", "registry ID to clear (required)")
	cmd.Flags().StringVar(&dbConnStr, "db", "", "database connection string (overrides DB_CONN_STRING)")
	cmd.MarkFlagRequired("ico")
	return cmd
}
