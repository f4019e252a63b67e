package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schedgen/schedgen/internal/loader"
	"github.com/schedgen/schedgen/internal/schederrors"
	"github.com/schedgen/schedgen/internal/scheduleio"
	"github.com/schedgen/schedgen/internal/validator"
)

func newValidateCmd() *cobra.Command {
	var (
		schedulePath string
		dataDir      string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "independently check a produced schedule against hard constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(schedulePath, dataDir, verbose)
		},
	}
	cmd.Flags().StringVar(&schedulePath, "schedule", "schedule.json", "path to a schedule.json document")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory containing the original input files")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "include per-course/per-teacher/per-room metrics")
	return cmd
}

func runValidate(schedulePath, dataDir string, verbose bool) error {
	data, err := loader.Load(dataDir)
	if err != nil {
		return err
	}
	sched, err := scheduleio.Read(schedulePath)
	if err != nil {
		return err
	}

	report := validator.Validate(data, sched)
	if report.Passed {
		fmt.Println("PASS: all invariants hold")
	} else {
		fmt.Println("FAIL:")
		for _, v := range report.Violations {
			fmt.Printf("  [%s] %s (%v)\n", v.Invariant, v.Message, v.Entities)
		}
	}
	if verbose {
		fmt.Printf("required course satisfaction: %.1f%%\n", report.Metrics.RequiredCourseSatisfaction*100)
		for cid, rate := range report.Metrics.CourseFillRate {
			fmt.Printf("  course %s fill rate: %.1f%%\n", cid, rate*100)
		}
		for tid, load := range report.Metrics.TeacherLoad {
			fmt.Printf("  teacher %s sections: %d\n", tid, load)
		}
	}

	if !report.Passed {
		return schederrors.New(schederrors.KindValidation, "", schedulePath, "one or more invariants failed")
	}
	return nil
}
