// Package slotplanner implements Phase 2: assign a (day,
// period) slot to every section, prioritizing grade separation over
// spreading a course's own sections, which in turn dominates a mild
// earlier-period preference. Reversing that priority order produces
// schedules Phase 4 cannot satisfy, so the weight ordering is load-bearing
// even though the absolute weight values are tunable.
package slotplanner

import (
	"sort"

	"github.com/schedgen/schedgen/internal/config"
	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
)

// Plan assigns sections[i].Slot in place, in the priority order
// grade-separation scoring specifies, and returns an error if some section has no remaining
// feasible slot.
func Plan(data *domain.InputData, sections []*domain.Section, weights config.SlotWeights) error {
	return PlanPinned(data, sections, weights, nil)
}

// PlanPinned behaves like Plan but honors pin, a section-id -> slot hint
// carried over from a previously-produced Schedule. A pinned slot is used
// directly, skipping the penalty search, provided it is still free of the
// section's teacher's unavailability and busy slots; otherwise the section
// falls back to the ordinary penalty-minimizing search. A nil pin makes
// this identical to Plan.
func PlanPinned(data *domain.InputData, sections []*domain.Section, weights config.SlotWeights, pin map[string]domain.Slot) error {
	gradesInUse := allGradesInUse(data)
	order := sortedSectionIndices(data, sections, gradesInUse)
	slots := data.Grid.Slots()

	teacherBusy := make(map[string]map[domain.Slot]bool, len(data.Teachers))
	gradeLoad := make(map[gradeSlot]int)
	courseSlots := make(map[string]map[domain.Slot]int, len(data.Courses))

	for _, idx := range order {
		sec := sections[idx]
		course := data.Courses[sec.CourseID]
		teacher := data.Teachers[sec.TeacherID]

		busy := teacherBusy[sec.TeacherID]

		type candidate struct {
			slot    domain.Slot
			penalty int
		}
		var best *candidate
		if pinned, ok := pin[sec.ID]; ok && !teacher.Unavailable[pinned] && !busy[pinned] {
			best = &candidate{slot: pinned}
		} else {
			for _, slot := range slots {
				if teacher.Unavailable[slot] || busy[slot] {
					continue
				}
				penalty := 0
				for g := range course.GradeRestrictions {
					penalty += gradeLoad[gradeSlot{grade: g, slot: slot}] * weights.Grade
				}
				if courseSlots[sec.CourseID][slot] > 0 {
					penalty += weights.Spread
				}
				penalty += slot.Period * weights.SpreadTime

				if best == nil || penalty < best.penalty ||
					(penalty == best.penalty && lessSlot(slot, best.slot)) {
					best = &candidate{slot: slot, penalty: penalty}
				}
			}
		}

		if best == nil {
			return schederrors.New(schederrors.KindConfiguration, schederrors.NoFeasibleSlot, sec.ID,
				"no slot is free of the teacher's unavailability and busy slots")
		}

		sec.Slot = best.slot
		sec.HasSlot = true

		if busy == nil {
			busy = make(map[domain.Slot]bool)
			teacherBusy[sec.TeacherID] = busy
		}
		busy[best.slot] = true

		for g := range course.GradeRestrictions {
			gradeLoad[gradeSlot{grade: g, slot: best.slot}]++
		}
		if courseSlots[sec.CourseID] == nil {
			courseSlots[sec.CourseID] = make(map[domain.Slot]int)
		}
		courseSlots[sec.CourseID][best.slot]++
	}
	return nil
}

type gradeSlot struct {
	grade int
	slot  domain.Slot
}

func lessSlot(a, b domain.Slot) bool {
	if a.Day != b.Day {
		return a.Day < b.Day
	}
	return a.Period < b.Period
}

func allGradesInUse(data *domain.InputData) map[int]bool {
	grades := make(map[int]bool)
	for _, id := range data.StudentOrder {
		grades[data.Students[id].Grade] = true
	}
	return grades
}

// eligibleGradeCount is how many of the grades actually in use this course
// is restricted to; an unrestricted course counts every grade in use.
func eligibleGradeCount(course *domain.Course, gradesInUse map[int]bool) int {
	if len(course.GradeRestrictions) == 0 {
		return len(gradesInUse)
	}
	n := 0
	for g := range course.GradeRestrictions {
		if gradesInUse[g] {
			n++
		}
	}
	return n
}

// sortedSectionIndices orders section indices by (a) ascending eligible
// grade count (more-restricted courses first), (b) descending course
// section count, (c) course id and section index as a stable tie-break.
func sortedSectionIndices(data *domain.InputData, sections []*domain.Section, gradesInUse map[int]bool) []int {
	idx := make([]int, len(sections))
	for i := range sections {
		idx[i] = i
	}
	eligCount := make(map[string]int, len(data.Courses))
	for _, cid := range data.CourseOrder {
		eligCount[cid] = eligibleGradeCount(data.Courses[cid], gradesInUse)
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := sections[idx[i]], sections[idx[j]]
		ca, cb := data.Courses[a.CourseID], data.Courses[b.CourseID]

		if eligCount[a.CourseID] != eligCount[b.CourseID] {
			return eligCount[a.CourseID] < eligCount[b.CourseID]
		}
		if ca.Sections != cb.Sections {
			return ca.Sections > cb.Sections
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.ID < b.ID
	})
	return idx
}
