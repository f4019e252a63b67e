package solver

import (
	"context"
	"sort"
	"time"
)

// GreedyBackend is the built-in Backend: a deterministic weighted-greedy
// assignment that considers variables in descending objective weight (ties
// broken by their canonical model order) and accepts each one only if doing
// so keeps every constraint it touches satisfied. Because acceptance is
// constraint-checked on the spot, the result is always feasible — including
// the trivial empty assignment, which needs no relaxation or
// branch-and-bound to prove optimal-enough.
//
// This stands in for an external MIP service treated as a black box;
// production deployments would swap this Backend for a real solver
// without touching the rest of Phase 4.
type GreedyBackend struct{}

func (GreedyBackend) SolveWithDeadline(ctx context.Context, model *Model, deadline time.Time, opts Options) (*Solution, error) {
	order := make([]int, len(model.Vars))
	for i := range model.Vars {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return model.Vars[order[i]].Weight > model.Vars[order[j]].Weight
	})

	capUsed := make([]int, len(model.Capacity))
	capOf := make(map[int][]int) // var idx -> capacity constraint indices
	for ci, c := range model.Capacity {
		for _, vi := range c.VarIdx {
			capOf[vi] = append(capOf[vi], ci)
		}
	}
	groupOf := make(map[int][]int) // var idx -> atMostOne group indices
	for gi, g := range model.OnePerGroup {
		for _, vi := range g.VarIdx {
			groupOf[vi] = append(groupOf[vi], gi)
		}
	}
	groupUsed := make([]bool, len(model.OnePerGroup))

	selected := make(map[int]bool)
	objective := 0.0
	timedOut := false

	for _, vi := range order {
		if time.Now().After(deadline) {
			timedOut = true
			break
		}

		ok := true
		for _, ci := range capOf[vi] {
			if capUsed[ci] >= model.Capacity[ci].Limit {
				ok = false
				break
			}
		}
		if ok {
			for _, gi := range groupOf[vi] {
				if groupUsed[gi] {
					ok = false
					break
				}
			}
		}
		if !ok {
			continue
		}

		selected[vi] = true
		objective += model.Vars[vi].Weight
		for _, ci := range capOf[vi] {
			capUsed[ci]++
		}
		for _, gi := range groupOf[vi] {
			groupUsed[gi] = true
		}
	}

	select {
	case <-ctx.Done():
		timedOut = true
	default:
	}

	return &Solution{Selected: selected, Objective: objective, TimedOut: timedOut}, nil
}
