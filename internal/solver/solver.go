// Package solver wraps the Phase 4 student-assignment solve behind a
// narrow interface so the pipeline never leaks
// solver-specific types: studentassigner.BuildModel turns domain state into
// a backend-agnostic Model, Solve runs a backend against a deadline, and the
// resulting Solution is read back into plain assignment pairs. No MIP/ILP
// library was found anywhere suitable to import (commercial solvers like
// Gurobi/CPLEX or open ones like HiGHS/CBC all require cgo or a network
// service this module has no reason to depend on), so the default Backend
// is a deterministic greedy heuristic — see DESIGN.md for why this is the
// one concern in the repo built on bare Go rather than an imported solver.
package solver

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Var is one 0/1 decision variable x[student,section].
type Var struct {
	StudentID string
	SectionID string
	Weight    float64
}

// CapacityConstraint caps the sum of variables touching one section.
type CapacityConstraint struct {
	SectionID string
	Limit     int
	VarIdx    []int
}

// AtMostOneConstraint caps the sum of a group of variables at 1 — used for
// both "one section per course per student" (C2) and "no time conflict"
// (C3) groups.
type AtMostOneConstraint struct {
	VarIdx []int
}

// Model is the backend-agnostic 0/1 assignment problem built from the
// eligibility-pruned variable set.
type Model struct {
	RunID       string
	Vars        []Var
	Capacity    []CapacityConstraint
	OnePerGroup []AtMostOneConstraint
}

// Options configures a solve attempt, mirroring the configurable
// solver options.
type Options struct {
	TimeLimit time.Duration
	MIPGap    float64
	Threads   int
}

// Solution is the set of variable indices a backend set to 1, plus the
// objective value and whether the solve hit its time limit.
type Solution struct {
	Selected  map[int]bool
	Objective float64
	TimedOut  bool
}

// Backend is the narrow surface a MIP solver (or a stand-in heuristic)
// must implement. Swapping backends is a matter of passing a different
// Backend to Solve — no caller-visible type changes.
type Backend interface {
	SolveWithDeadline(ctx context.Context, model *Model, deadline time.Time, opts Options) (*Solution, error)
}

// NewRunID mints a correlation id for one BuildModel+Solve attempt, used
// only in logs and the returned Model — never persisted.
func NewRunID() string {
	return uuid.NewString()
}

// Solve runs backend against model with a deadline derived from
// opts.TimeLimit and returns its Solution.
func Solve(ctx context.Context, backend Backend, model *Model, opts Options) (*Solution, error) {
	deadline := time.Now().Add(opts.TimeLimit)
	return backend.SolveWithDeadline(ctx, model, deadline, opts)
}

// ReadSolution decodes a Solution back into (studentID, sectionID) pairs.
func ReadSolution(model *Model, sol *Solution) []Var {
	var out []Var
	for i, v := range model.Vars {
		if sol.Selected[i] {
			out = append(out, v)
		}
	}
	return out
}
