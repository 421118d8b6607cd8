package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dsl-ob-poc/internal/ubo/graph"
	"dsl-ob-poc/internal/ubo/resolve"
)

// UBOGraphCommand creates the "ubo graph" command group.
func UBOGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Project a resolved ownership trace into a node/edge graph",
	}
	cmd.AddCommand(uboGraphExportCommand())
	return cmd
}

func uboGraphExportCommand() *cobra.Command {
	var (
		ico       string
		maxDepth  int
		dbConnStr string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Resolve a registry ID and export its ownership graph",
		Long: `Export resolves the ownership tree for --ico and projects it into
nodes and edges for an external renderer, either as JSON or as Graphviz
DOT (--format=dot).

Examples:
  ./dsl-poc ubo graph export --ico=27074358 --format=dot
  ./dsl-poc ubo graph export --ico=27074358 --format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUBOGraphExport(ico, maxDepth, dbConnStr, format)
		},
	}

	cmd.Flags().StringVar(&ico, "ico", "", "registry ID of the root entity (required)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 25, "maximum recursion depth before truncating")
	cmd.Flags().StringVar(&dbConnStr, "db", "", "database connection string (overrides DB_CONN_STRING)")
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or json")
	cmd.MarkFlagRequired("ico")

	return cmd
}

func runUBOGraphExport(ico string, maxDepth int, dbConnStr, format string) error {
	ctx := context.Background()

	client, err := newUBORegistryClient(dbConnStr)
	if err != nil {
		return fmt.Errorf("failed to build registry client: %w", err)
	}

	resolver := resolve.NewResolver(client)
	result := resolver.Resolve(ctx, resolve.Options{RootID: ico, MaxDepth: maxDepth})
	g := graph.Project(result.Trace)

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	case "dot":
		fmt.Print(renderDOT(g))
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected dot or json", format)
	}
}

// renderDOT writes a Graphviz digraph, the way graphviz_render.py's own
// dot-building did for the same node/edge shapes — companies as boxes,
// persons as ellipses, label groups suppressed.
func renderDOT(g graph.Graph) string {
	out := "digraph ubo {\n  rankdir=LR;\n"
	for _, n := range g.Nodes {
		if n.Shape == graph.ShapeLabelGroup {
			continue
		}
		shape := "ellipse"
		if n.Shape == graph.ShapeCompany {
			shape = "box"
		}
		out += fmt.Sprintf("  %q [shape=%s, label=%q];\n", n.ID, shape, n.Label)
	}
	for _, e := range g.Edges {
		out += fmt.Sprintf("  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}
	out += "}\n"
	return out
}
