// Command uboresolve is a standalone entry point for the beneficial-
// ownership command tree, for deployments that don't want the rest of the
// onboarding CLI's dependency surface.
package main

import (
	"context"
	"fmt"
	"os"

	"dsl-ob-poc/internal/cli"
)

func main() {
	// This standalone binary has no case-history datastore wired up, so
	// "ubo resolve --cbu=..." persistence is unavailable here; run the
	// "ubo" subcommand from the main dsl-poc binary instead.
	if err := cli.RunUBO(context.Background(), nil, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
