package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dsl-ob-poc/internal/ubo/compare"
)

// UBOCompareCommand creates the "ubo compare" command: diff a comma-
// separated UBO name list against a comma-separated external document name
// list, accent- and title-insensitively.
func UBOCompareCommand() *cobra.Command {
	var (
		uboNames      string
		externalNames string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare an evaluated UBO name set against an external document's name list",
		Long: `Compare normalizes both name lists (folding accents, stripping
academic titles) and reports which names are missing from, or extra in,
the external list.

Example:
  ./dsl-poc ubo compare --ubos="Jan Novák,Petra Svobodová" --external="Ing. Jan Novák,Karel Dvořák"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diff := compare.Compare(splitNames(uboNames), splitNames(externalNames))
			displayUBOCompare(diff)
			return nil
		},
	}

	cmd.Flags().StringVar(&uboNames, "ubos", "", "comma-separated UBO names (required)")
	cmd.Flags().StringVar(&externalNames, "external", "", "comma-separated names from the external document (required)")
	cmd.MarkFlagRequired("ubos")
	cmd.MarkFlagRequired("external")

	return cmd
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func displayUBOCompare(diff compare.Diff) {
	fmt.Println("🔍 Name comparison")
	fmt.Println("===================")

	if len(diff.MissingInExternal) == 0 {
		fmt.Println("✅ every UBO name appears in the external document")
	} else {
		fmt.Println("⚠️  missing from external document:")
		for _, n := range diff.MissingInExternal {
			fmt.Printf("  - %s\n", n)
		}
	}

	if len(diff.ExtraInExternal) > 0 {
		fmt.Println("ℹ️  in external document but not among the UBOs:")
		for _, n := range diff.ExtraInExternal {
			fmt.Printf("  - %s\n", n)
		}
	}
}
