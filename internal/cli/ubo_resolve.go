package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"dsl-ob-poc/internal/config"
	"dsl-ob-poc/internal/datastore"
	"dsl-ob-poc/internal/ubo/evaluate"
	"dsl-ob-poc/internal/ubo/registry"
	"dsl-ob-poc/internal/ubo/resolve"
)

// UBOResolveCommand creates the "ubo resolve" command: resolve the
// ownership tree for a registry ID and evaluate it against a threshold. ds
// may be nil; --cbu is rejected at run time in that case (see RunUBO).
func UBOResolveCommand(ds datastore.DataStore) *cobra.Command {
	var (
		ico       string
		maxDepth  int
		threshold float64
		dbConnStr string
		asJSON    bool
		cbuID     string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the ownership tree for a registry ID and evaluate beneficial owners",
		Long: `Resolve walks the ARES registry recursively from the given ICO, builds
the depth-tagged ownership trace, and evaluates it against the
ownership/voting threshold to produce the beneficial-owner set.

Examples:
  # Resolve with the default 25% threshold
  ./dsl-poc ubo resolve --ico=27074358

  # Resolve and append the result to an onboarding case's DSL history
  ./dsl-poc ubo resolve --ico=27074358 --cbu=CBU-1234`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUBOResolve(ds, ico, maxDepth, threshold, dbConnStr, asJSON, cbuID)
		},
	}

	cmd.Flags().StringVar(&ico, "ico", "", "registry ID of the root entity (required)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 25, "maximum recursion depth before truncating")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.25, "ownership/voting threshold, as a fraction (0.25 = 25%)")
	cmd.Flags().StringVar(&dbConnStr, "db", "", "database connection string (overrides DB_CONN_STRING)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the trace and UBO set as JSON")
	cmd.Flags().StringVar(&cbuID, "cbu", "", "onboarding case ID; if set, appends the resolved UBO set to that case's DSL history")
	cmd.MarkFlagRequired("ico")

	return cmd
}

func runUBOResolve(ds datastore.DataStore, ico string, maxDepth int, threshold float64, dbConnStr string, asJSON bool, cbuID string) error {
	ctx := context.Background()

	if cbuID != "" && ds == nil {
		return fmt.Errorf("--cbu requires a datastore, but this command tree was built without one")
	}

	client, err := newUBORegistryClient(dbConnStr)
	if err != nil {
		return fmt.Errorf("failed to build registry client: %w", err)
	}

	resolver := resolve.NewResolver(client)
	result := resolver.Resolve(ctx, resolve.Options{RootID: ico, MaxDepth: maxDepth})

	evalResult := evaluate.Evaluate(result.Trace, evaluate.Options{Threshold: threshold})

	if cbuID != "" {
		if err := appendUBOResolveToCase(ctx, ds, cbuID, ico, result, evalResult); err != nil {
			return fmt.Errorf("failed to append resolve result to case %s: %w", cbuID, err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"trace":    result.Trace,
			"warnings": result.Warnings,
			"ubos":     evalResult.UBOs,
			"sums":     evalResult.Sums,
		})
	}

	displayUBOTrace(result, evalResult)
	return nil
}

// appendUBOResolveToCase records a "ubo resolve" run as a DSL fragment on
// an existing onboarding case, following the same get-latest/insert pattern
// RunDiscoverUBO uses to version an entity's DSL history.
func appendUBOResolveToCase(ctx context.Context, ds datastore.DataStore, cbuID, ico string, result *resolve.Result, evalResult evaluate.Result) error {
	existingDSL, err := ds.GetLatestDSL(ctx, cbuID)
	if err != nil {
		return fmt.Errorf("case %s does not exist: %w", cbuID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "; === ARES UBO RESOLVE (ico=%s) ===\n", ico)
	for _, u := range evalResult.UBOs {
		fmt.Fprintf(&b, "; ubo.identified name=%q ownership=%.4f voting=%.4f reasons=%q\n",
			u.Name, u.Ownership, u.Voting, strings.Join(u.Reasons, ","))
	}
	if len(evalResult.UBOs) == 0 {
		fmt.Fprintf(&b, "; ubo.none_above_threshold\n")
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "; ubo.warning kind=%s ico=%s text=%q\n", w.Kind, w.Ico, w.Text)
	}

	newDSL := b.String()
	if existingDSL != "" {
		newDSL = existingDSL + "\n" + newDSL
	}

	_, err = ds.InsertDSL(ctx, cbuID, newDSL)
	return err
}

func displayUBOTrace(result *resolve.Result, evalResult evaluate.Result) {
	for _, line := range result.Trace {
		indent := ""
		for i := 0; i < line.Depth; i++ {
			indent += "  "
		}
		if line.EffectivePct != nil {
			fmt.Printf("%s%s (%.2f%%)\n", indent, line.Text, *line.EffectivePct)
		} else {
			fmt.Printf("%s%s\n", indent, line.Text)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Println("\n⚠️  Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - [%s] %s %s: %s\n", w.Kind, w.Ico, w.Name, w.Text)
		}
	}

	fmt.Println("\n🎯 Beneficial Owners:")
	if len(evalResult.UBOs) == 0 {
		fmt.Println("  none above threshold")
	}
	for _, u := range evalResult.UBOs {
		fmt.Printf("  - %s — %.2f%% capital, %.2f%% voting (%v)\n", u.Name, u.Ownership*100, u.Voting*100, u.Reasons)
	}

	fmt.Printf("\nΣcapital=%.2f%% Σvoting=%.2f%% (ok=%v/%v)\n",
		evalResult.Sums.SumOwnership*100, evalResult.Sums.SumVoting*100,
		evalResult.Sums.OwnershipOK, evalResult.Sums.VotingOK)
}

// newUBORegistryClient wires a registry.Client against the same Postgres
// connection string the rest of the CLI uses, falling back to
// config.GetDataStoreConfig's default when dbConnStr is empty.
func newUBORegistryClient(dbConnStr string) (*registry.Client, error) {
	if dbConnStr == "" {
		dbConnStr = config.GetDataStoreConfig().ConnectionString
	}

	db, err := sqlx.Connect("postgres", dbConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	cache, err := registry.NewCache(db)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}

	return registry.NewClient(registry.DefaultConfig(), cache), nil
}
