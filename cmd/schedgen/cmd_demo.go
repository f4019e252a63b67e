package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedgen/schedgen/internal/config"
	"github.com/schedgen/schedgen/internal/demodata"
	"github.com/schedgen/schedgen/internal/loader"
	"github.com/schedgen/schedgen/internal/logging"
	"github.com/schedgen/schedgen/internal/orchestrator"
	"github.com/schedgen/schedgen/internal/report"
	"github.com/schedgen/schedgen/internal/solver"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "run the pipeline against an embedded sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	dir, err := os.MkdirTemp("", "schedgen-demo-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := demodata.Materialize(dir); err != nil {
		return err
	}

	data, err := loader.Load(dir)
	if err != nil {
		return err
	}

	log := logging.Nop()
	orch := orchestrator.New(log, solver.GreedyBackend{}, config.DefaultSlotWeights())
	sched, err := orch.Run(context.Background(), data, solver.Options{})
	if err != nil {
		return err
	}

	overview, err := report.Overview(data, sched)
	if err != nil {
		return err
	}
	fmt.Print(overview)
	return nil
}
