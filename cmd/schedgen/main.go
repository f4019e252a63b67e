// Command schedgen is a thin spf13/cobra dispatch layer over the core
// engine in internal/. Flag parsing, subcommand wiring, and process exit
// codes live here; everything else is in internal/orchestrator and its
// phase packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedgen/schedgen/internal/schederrors"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(schederrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedgen",
		Short: "offline school-schedule generator",
	}
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newDemoCmd())
	return root
}
