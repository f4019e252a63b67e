// Package orchestrator sequences Phases 1-5, owns the
// phase-produced state, and surfaces errors with a single propagation
// policy: Phase 1-3 errors are fatal, Phase 4 solver timeouts are
// downgraded to warnings when an incumbent exists, and Phase 5 never
// fails.
package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schedgen/schedgen/internal/config"
	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/phases/rebalancer"
	"github.com/schedgen/schedgen/internal/phases/roomassigner"
	"github.com/schedgen/schedgen/internal/phases/sectionbuilder"
	"github.com/schedgen/schedgen/internal/phases/slotplanner"
	"github.com/schedgen/schedgen/internal/phases/studentassigner"
	"github.com/schedgen/schedgen/internal/schederrors"
	"github.com/schedgen/schedgen/internal/solver"
)

// Orchestrator threads the immutable InputData through the five phases. It
// holds no per-run state itself so one instance can run several schedules
// back to back.
type Orchestrator struct {
	Log     *zap.SugaredLogger
	Backend solver.Backend
	Weights config.SlotWeights
}

// New builds an Orchestrator with the given logger, solver backend, and
// Phase 2 weights. A nil backend defaults to solver.GreedyBackend.
func New(log *zap.SugaredLogger, backend solver.Backend, weights config.SlotWeights) *Orchestrator {
	if backend == nil {
		backend = solver.GreedyBackend{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Orchestrator{Log: log, Backend: backend, Weights: weights}
}

// Run executes Phases 1–5 against data and returns the produced Schedule.
// ctx is checked cooperatively between phases; a cancellation during
// Phases 1–3 or 5 aborts with a PartialResult error and no Schedule. A
// cancellation during Phase 4 does not abort the run: ctx is handed to the
// solver backend alongside the deadline, and the backend still returns a
// feasible incumbent (at worst the trivial all-zero assignment).
func (o *Orchestrator) Run(ctx context.Context, data *domain.InputData, solverOpts solver.Options) (*domain.Schedule, error) {
	return o.RunPinned(ctx, data, solverOpts, nil)
}

// RunPinned behaves like Run but, when previous is non-nil, seeds Phases
// 1-3 with teacher/slot/room hints read off previous's sections. A section
// id that also existed in previous keeps its prior placement wherever that
// placement is still valid against the current input (teacher still
// qualified and under cap, slot still free, room still carrying the required
// features and free at the slot; an undersized pinned room is kept with a
// CapacityBelowRequested warning); sections without a usable hint, or new sections
// entirely, fall back to the ordinary phase algorithms. This lets a
// `schedule` re-run on lightly edited input preserve most of a prior
// schedule instead of recomputing everything from scratch.
func (o *Orchestrator) RunPinned(ctx context.Context, data *domain.InputData, solverOpts solver.Options, previous *domain.Schedule) (*domain.Schedule, error) {
	if solverOpts.TimeLimit <= 0 {
		solverOpts.TimeLimit = config.TimeLimitFor(len(data.Students))
	}

	var teacherPin map[string]string
	var slotPin map[string]domain.Slot
	var roomPin map[string]string
	if previous != nil {
		teacherPin = make(map[string]string, len(previous.Sections))
		slotPin = make(map[string]domain.Slot, len(previous.Sections))
		roomPin = make(map[string]string, len(previous.Sections))
		for _, sec := range previous.Sections {
			teacherPin[sec.ID] = sec.TeacherID
			slotPin[sec.ID] = sec.Slot
			roomPin[sec.ID] = sec.RoomID
		}
	}

	o.Log.Infow("phase 1: building sections", "courses", len(data.Courses))
	sections, err := sectionbuilder.BuildPinned(data, teacherPin)
	if err != nil {
		return nil, err
	}
	if err := o.checkCancelled(ctx); err != nil {
		return nil, err
	}

	o.Log.Infow("phase 2: planning slots", "sections", len(sections))
	if err := slotplanner.PlanPinned(data, sections, o.Weights, slotPin); err != nil {
		return nil, err
	}
	if err := o.checkCancelled(ctx); err != nil {
		return nil, err
	}

	o.Log.Infow("phase 3: assigning rooms")
	roomWarnings, err := roomassigner.AssignPinned(data, sections, roomPin)
	if err != nil {
		return nil, err
	}
	for _, w := range roomWarnings {
		o.Log.Warn(w)
	}
	if err := o.checkCancelled(ctx); err != nil {
		return nil, err
	}

	o.Log.Infow("phase 4: solving student assignment")
	result, assignments, err := studentassigner.Assign(ctx, data, sections, o.Backend, solverOpts, o.Log)
	if err != nil {
		return nil, err
	}
	var warnings []string
	warnings = append(warnings, roomWarnings...)
	if result.TimedOut {
		warnings = append(warnings, "SolverTimeout: using best incumbent found before the time limit, run_id "+result.RunID)
	}

	o.Log.Infow("phase 5: rebalancing")
	cancelledInPhase4 := ctx.Err() != nil
	moves := rebalancer.Rebalance(data, sections, assignments)
	if !cancelledInPhase4 {
		if err := o.checkCancelled(ctx); err != nil {
			return nil, err
		}
	}

	required, elective := fillRates(data, assignments, sections)

	sched := &domain.Schedule{
		GeneratedAt:        time.Now(),
		Sections:           sections,
		StudentAssignments: assignments,
		Metadata: domain.Metadata{
			ObjectiveValue:   result.Objective,
			RequiredFillRate: required,
			ElectiveFillRate: elective,
			RebalanceMoves:   moves,
		},
		Warnings: warnings,
	}
	return sched, nil
}

func (o *Orchestrator) checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return schederrors.New(schederrors.KindData, schederrors.PartialResult, "", "cancelled before the schedule was produced: "+ctx.Err().Error())
	default:
		return nil
	}
}

func fillRates(data *domain.InputData, assignments map[string]map[string]bool, sections []*domain.Section) (required, elective float64) {
	sectionByID := make(map[string]*domain.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
	}

	reqTotal, reqFilled := 0, 0
	elecTotal, elecFilled := 0, 0
	for _, studentID := range data.StudentOrder {
		student := data.Students[studentID]
		assignedCourses := make(map[string]bool)
		for sectionID := range assignments[studentID] {
			if sec := sectionByID[sectionID]; sec != nil {
				assignedCourses[sec.CourseID] = true
			}
		}
		for _, cid := range student.RequiredCourses {
			reqTotal++
			if assignedCourses[cid] {
				reqFilled++
			}
		}
		for _, cid := range student.ElectivePreferences {
			elecTotal++
			if assignedCourses[cid] {
				elecFilled++
			}
		}
	}
	if reqTotal > 0 {
		required = float64(reqFilled) / float64(reqTotal)
	}
	if elecTotal > 0 {
		elective = float64(elecFilled) / float64(elecTotal)
	}
	return required, elective
}
