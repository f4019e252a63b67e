package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/schedgen/schedgen/internal/config"
	"github.com/schedgen/schedgen/internal/logging"
	"github.com/schedgen/schedgen/internal/loader"
	"github.com/schedgen/schedgen/internal/orchestrator"
	"github.com/schedgen/schedgen/internal/report"
	"github.com/schedgen/schedgen/internal/scheduleio"
	"github.com/schedgen/schedgen/internal/solver"
)

func newScheduleCmd() *cobra.Command {
	var (
		dataDir   string
		outDir    string
		format    string
		verbose   bool
		cfgPath   string
		timeLimit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "run the five-phase pipeline and write schedule.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(dataDir, outDir, format, verbose, cfgPath, timeLimit)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory containing students.json, teachers.json, courses.json, rooms.json")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write schedule.json (and reports) into")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, md, or all")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().StringVar(&cfgPath, "config", "", "optional config file for solver/weight tuning")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "override the solver time budget (0 = scale with student count)")
	return cmd
}

func runSchedule(dataDir, outDir, format string, verbose bool, cfgPath string, timeLimit time.Duration) error {
	log, err := logging.New(verbose, false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	data, err := loader.Load(dataDir)
	if err != nil {
		return err
	}

	orch := orchestrator.New(log, solver.GreedyBackend{}, cfg.Weights)
	opts := solver.Options{TimeLimit: timeLimit, MIPGap: cfg.Solver.MIPGap, Threads: cfg.Solver.Threads}

	sched, err := orch.Run(context.Background(), data, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	if format == "json" || format == "all" {
		if err := scheduleio.Write(filepath.Join(outDir, "schedule.json"), sched); err != nil {
			return err
		}
	}
	if format == "md" || format == "all" {
		overview, err := report.Overview(data, sched)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, "schedule_overview.md"), []byte(overview), 0o644); err != nil {
			return err
		}
	}

	for _, w := range sched.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	log.Infow("schedule written", "sections", len(sched.Sections), "required_fill_rate", sched.Metadata.RequiredFillRate)
	return nil
}
