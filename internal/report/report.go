// Package report renders the minimal illustrative views behind the
// `report` subcommand's selectors: per-student, per-teacher,
// and an overview. Full human-readable report generation (multi-page
// documents, styling) is an external collaborator — this
// package only renders the plain-text core view each selector needs.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/validator"
)

var overviewTmpl = template.Must(template.New("overview").Parse(`Schedule generated at {{.GeneratedAt}}
Sections: {{.SectionCount}}
Required course satisfaction: {{printf "%.1f" .RequiredPct}}%
Elective fill rate: {{printf "%.1f" .ElectivePct}}%
Rebalance moves applied: {{.RebalanceMoves}}
{{range .CourseFill}}  {{.Name}}: {{printf "%.1f" .Pct}}% filled
{{end}}`))

type courseFillRow struct {
	Name string
	Pct  float64
}

// Overview renders the `report ... overview` selector.
func Overview(data *domain.InputData, sched *domain.Schedule) (string, error) {
	metrics := validator.Validate(data, sched).Metrics

	courseIDs := make([]string, 0, len(metrics.CourseFillRate))
	for cid := range metrics.CourseFillRate {
		courseIDs = append(courseIDs, cid)
	}
	sort.Strings(courseIDs)
	rows := make([]courseFillRow, 0, len(courseIDs))
	for _, cid := range courseIDs {
		rows = append(rows, courseFillRow{Name: cid, Pct: metrics.CourseFillRate[cid] * 100})
	}

	var buf bytes.Buffer
	err := overviewTmpl.Execute(&buf, struct {
		GeneratedAt    string
		SectionCount   int
		RequiredPct    float64
		ElectivePct    float64
		RebalanceMoves int
		CourseFill     []courseFillRow
	}{
		GeneratedAt:    sched.GeneratedAt.Format("2006-01-02 15:04:05"),
		SectionCount:   len(sched.Sections),
		RequiredPct:    sched.Metadata.RequiredFillRate * 100,
		ElectivePct:    sched.Metadata.ElectiveFillRate * 100,
		RebalanceMoves: sched.Metadata.RebalanceMoves,
		CourseFill:     rows,
	})
	return buf.String(), err
}

// Student renders every section a single student is assigned to.
func Student(data *domain.InputData, sched *domain.Schedule, studentID string) (string, error) {
	student, ok := data.Students[studentID]
	if !ok {
		return "", fmt.Errorf("unknown student %q", studentID)
	}
	sectionByID := make(map[string]*domain.Section, len(sched.Sections))
	for _, sec := range sched.Sections {
		sectionByID[sec.ID] = sec
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Schedule for %s (%s), grade %d\n", student.Name, student.ID, student.Grade)
	for _, sectionID := range sched.AssignmentIDs(studentID) {
		sec := sectionByID[sectionID]
		if sec == nil {
			continue
		}
		course := data.Courses[sec.CourseID]
		name := sec.CourseID
		if course != nil {
			name = course.Name
		}
		fmt.Fprintf(&buf, "  %-20s day %d period %d  room %s\n", name, sec.Slot.Day, sec.Slot.Period, sec.RoomID)
	}
	return buf.String(), nil
}

// Teacher renders every section one teacher is assigned to teach.
func Teacher(data *domain.InputData, sched *domain.Schedule, teacherID string) (string, error) {
	teacher, ok := data.Teachers[teacherID]
	if !ok {
		return "", fmt.Errorf("unknown teacher %q", teacherID)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Schedule for %s (%s)\n", teacher.Name, teacher.ID)
	for _, sec := range sortedSections(sched.Sections) {
		if sec.TeacherID != teacherID {
			continue
		}
		course := data.Courses[sec.CourseID]
		name := sec.CourseID
		if course != nil {
			name = course.Name
		}
		fmt.Fprintf(&buf, "  %-20s day %d period %d  room %s  roster %d\n", name, sec.Slot.Day, sec.Slot.Period, sec.RoomID, len(sec.Roster))
	}
	return buf.String(), nil
}

func sortedSections(secs []*domain.Section) []*domain.Section {
	out := append([]*domain.Section(nil), secs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
