// Package studentassigner implements Phase 4: build the 0/1
// assignment model from eligibility-pruned (student, section) pairs, solve
// it through the solver.Backend interface, and decode the result into
// roster/assignment state.
package studentassigner

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
	"github.com/schedgen/schedgen/internal/solver"
)

// Result carries the decoded assignment plus the objective and whether the
// solver reported a timeout (downgraded to a warning when it still found an
// incumbent, per the error propagation policy).
type Result struct {
	Objective float64
	TimedOut  bool
	RunID     string
}

// Assign builds the model, solves it with backend, and writes the winning
// assignment directly onto sections' rosters and into assignments.
func Assign(ctx context.Context, data *domain.InputData, sections []*domain.Section, backend solver.Backend, opts solver.Options, log *zap.SugaredLogger) (*Result, map[string]map[string]bool, error) {
	model, vars := BuildModel(data, sections)
	runID := model.RunID

	log.Infow("solving student assignment model", "run_id", runID, "variables", len(model.Vars),
		"capacity_constraints", len(model.Capacity), "group_constraints", len(model.OnePerGroup))

	sol, err := solver.Solve(ctx, backend, model, opts)
	if err != nil {
		return nil, nil, schederrors.Wrap(err, schederrors.KindSolver, schederrors.SolverFailed, runID, err.Error())
	}

	assignments := make(map[string]map[string]bool)
	sectionByID := make(map[string]*domain.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
	}

	for i, v := range vars {
		if !sol.Selected[i] {
			continue
		}
		sec := sectionByID[v.SectionID]
		sec.Roster[v.StudentID] = true
		if assignments[v.StudentID] == nil {
			assignments[v.StudentID] = make(map[string]bool)
		}
		assignments[v.StudentID][v.SectionID] = true
	}

	if sol.TimedOut {
		log.Warnw("solver returned its best incumbent before the time limit elapsed", "run_id", runID, "objective", sol.Objective)
	}

	return &Result{Objective: sol.Objective, TimedOut: sol.TimedOut, RunID: runID}, assignments, nil
}

// BuildModel constructs the canonical model: students in input order,
// crossed with each student's eligible sections in section-id order, so
// model construction is byte-stable for identical input (this is what
// "Determinism").
func BuildModel(data *domain.InputData, sections []*domain.Section) (*solver.Model, []solver.Var) {
	byCourse := make(map[string][]*domain.Section, len(data.Courses))
	for _, sec := range sections {
		byCourse[sec.CourseID] = append(byCourse[sec.CourseID], sec)
	}
	for cid := range byCourse {
		sort.Slice(byCourse[cid], func(i, j int) bool { return byCourse[cid][i].ID < byCourse[cid][j].ID })
	}

	var vars []solver.Var

	for _, studentID := range data.StudentOrder {
		student := data.Students[studentID]
		required := rankSet(student.RequiredCourses)
		elective := rankSet(student.ElectivePreferences)

		eligibleCourses := make([]string, 0, len(required)+len(elective))
		seen := make(map[string]bool)
		for _, cid := range student.RequiredCourses {
			if !seen[cid] {
				seen[cid] = true
				eligibleCourses = append(eligibleCourses, cid)
			}
		}
		for _, cid := range student.ElectivePreferences {
			if !seen[cid] {
				seen[cid] = true
				eligibleCourses = append(eligibleCourses, cid)
			}
		}
		sort.Strings(eligibleCourses)

		for _, courseID := range eligibleCourses {
			course, ok := data.Courses[courseID]
			if !ok || !course.Restricted(student.Grade) {
				continue
			}
			for _, sec := range byCourse[courseID] {
				weight := 0.0
				if _, ok := required[courseID]; ok {
					weight = 1000
				} else if rank, ok := elective[courseID]; ok {
					w := 10 - rank
					if w < 1 {
						w = 1
					}
					weight = float64(w)
				}
				vars = append(vars, solver.Var{StudentID: studentID, SectionID: sec.ID, Weight: weight})
			}
		}
	}

	model := &solver.Model{RunID: solver.NewRunID(), Vars: vars}

	// C1: capacity per section.
	bySection := make(map[string][]int)
	for i, v := range vars {
		bySection[v.SectionID] = append(bySection[v.SectionID], i)
	}
	sectionByID := make(map[string]*domain.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
	}
	sectionIDsSorted := make([]string, 0, len(bySection))
	for sid := range bySection {
		sectionIDsSorted = append(sectionIDsSorted, sid)
	}
	sort.Strings(sectionIDsSorted)
	for _, sid := range sectionIDsSorted {
		sec := sectionByID[sid]
		course := data.Courses[sec.CourseID]
		room := data.Rooms[sec.RoomID]
		limit := course.MaxStudents
		if room != nil && room.Capacity < limit {
			limit = room.Capacity
		}
		model.Capacity = append(model.Capacity, solver.CapacityConstraint{SectionID: sid, Limit: limit, VarIdx: bySection[sid]})
	}

	// C2: one section per course per student.
	type studentCourse struct {
		student string
		course  string
	}
	byStudentCourse := make(map[studentCourse][]int)
	for i, v := range vars {
		course := sectionByID[v.SectionID].CourseID
		key := studentCourse{student: v.StudentID, course: course}
		byStudentCourse[key] = append(byStudentCourse[key], i)
	}
	addGroups(model, byStudentCourse)

	// C3: no time conflict per student per slot.
	type studentSlot struct {
		student string
		slot    domain.Slot
	}
	byStudentSlot := make(map[studentSlot][]int)
	for i, v := range vars {
		slot := sectionByID[v.SectionID].Slot
		key := studentSlot{student: v.StudentID, slot: slot}
		byStudentSlot[key] = append(byStudentSlot[key], i)
	}
	addGroups(model, byStudentSlot)

	// Each group's VarIdx is independent of insertion order, but the
	// overall slice order still needs to be deterministic across runs.
	sort.Slice(model.OnePerGroup, func(i, j int) bool {
		a, b := model.OnePerGroup[i].VarIdx, model.OnePerGroup[j].VarIdx
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	return model, vars
}

// addGroups appends one AtMostOneConstraint per group with >=2 members.
func addGroups[K comparable](model *solver.Model, groups map[K][]int) {
	for _, idxs := range groups {
		if len(idxs) > 1 {
			sort.Ints(idxs)
			model.OnePerGroup = append(model.OnePerGroup, solver.AtMostOneConstraint{VarIdx: idxs})
		}
	}
}

// rankSet returns the 0-based rank of each id's first occurrence in list.
func rankSet(list []string) map[string]int {
	out := make(map[string]int, len(list))
	for i, id := range list {
		if _, ok := out[id]; !ok {
			out[id] = i
		}
	}
	return out
}
