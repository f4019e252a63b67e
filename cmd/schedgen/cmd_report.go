package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schedgen/schedgen/internal/loader"
	"github.com/schedgen/schedgen/internal/report"
	"github.com/schedgen/schedgen/internal/scheduleio"
)

func newReportCmd() *cobra.Command {
	var (
		schedulePath string
		dataDir      string
		studentID    string
		teacherID    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "render one view of a produced schedule: a student, a teacher, or the overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loader.Load(dataDir)
			if err != nil {
				return err
			}
			sched, err := scheduleio.Read(schedulePath)
			if err != nil {
				return err
			}

			var out string
			switch {
			case studentID != "":
				out, err = report.Student(data, sched, studentID)
			case teacherID != "":
				out, err = report.Teacher(data, sched, teacherID)
			default:
				out, err = report.Overview(data, sched)
			}
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&schedulePath, "schedule", "schedule.json", "path to a schedule.json document")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory containing the original input files")
	cmd.Flags().StringVar(&studentID, "student", "", "render the named student's schedule")
	cmd.Flags().StringVar(&teacherID, "teacher", "", "render the named teacher's schedule")
	return cmd
}
