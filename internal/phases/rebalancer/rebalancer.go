// Package rebalancer implements Phase 5: local-search moves
// that even out section fills for courses with multiple sections, without
// changing how many sections any student is assigned to or whether their
// required courses are satisfied.
package rebalancer

import (
	"sort"

	"github.com/schedgen/schedgen/internal/domain"
)

// Rebalance mutates rosters and assignments in place and returns the number
// of moves applied.
func Rebalance(data *domain.InputData, sections []*domain.Section, assignments map[string]map[string]bool) int {
	sectionByID := make(map[string]*domain.Section, len(sections))
	byCourse := make(map[string][]*domain.Section, len(data.Courses))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
		byCourse[sec.CourseID] = append(byCourse[sec.CourseID], sec)
	}

	courseIDs := make([]string, 0, len(byCourse))
	for cid, secs := range byCourse {
		if len(secs) >= 2 {
			courseIDs = append(courseIDs, cid)
		}
	}
	sort.Strings(courseIDs)

	totalMoves := 0
	for _, cid := range courseIDs {
		secs := append([]*domain.Section(nil), byCourse[cid]...)
		sort.Slice(secs, func(i, j int) bool { return secs[i].ID < secs[j].ID })

		iterCap := 10 * len(secs)
		for iter := 0; iter < iterCap; iter++ {
			moved := tryOneMove(data, secs, sectionByID, assignments)
			if !moved {
				break
			}
			totalMoves++
		}
	}
	return totalMoves
}

// tryOneMove scans the students of every section of the course, in section
// id order, for one whose move to another section of the same course
// strictly reduces the fill variance,
// applies the first such move found in canonical order, and reports
// whether it made a move.
func tryOneMove(data *domain.InputData, secs []*domain.Section, sectionByID map[string]*domain.Section, assignments map[string]map[string]bool) bool {
	capacities := make(map[string]int, len(secs))
	for _, sec := range secs {
		capacities[sec.ID] = capacity(data, sec)
	}

	baseVariance := fillVariance(secs, capacities)

	for _, from := range secs {
		students := from.RosterIDs()
		for _, studentID := range students {
			for _, to := range secs {
				if to.ID == from.ID {
					continue
				}
				if len(to.Roster)+1 > capacities[to.ID] {
					continue
				}
				if conflicts(studentID, to, from.ID, sectionByID, assignments) {
					continue
				}
				if !eligible(data, studentID, to.CourseID) {
					continue
				}

				delete(from.Roster, studentID)
				to.Roster[studentID] = true
				newVariance := fillVariance(secs, capacities)

				if newVariance < baseVariance {
					delete(assignments[studentID], from.ID)
					if assignments[studentID] == nil {
						assignments[studentID] = make(map[string]bool)
					}
					assignments[studentID][to.ID] = true
					return true
				}

				// undo and keep looking
				delete(to.Roster, studentID)
				from.Roster[studentID] = true
			}
		}
	}
	return false
}

func capacity(data *domain.InputData, sec *domain.Section) int {
	course := data.Courses[sec.CourseID]
	limit := course.MaxStudents
	if room := data.Rooms[sec.RoomID]; room != nil && room.Capacity < limit {
		limit = room.Capacity
	}
	return limit
}

func fillVariance(secs []*domain.Section, capacities map[string]int) float64 {
	n := float64(len(secs))
	if n == 0 {
		return 0
	}
	sum := 0.0
	fills := make([]float64, len(secs))
	for i, sec := range secs {
		fills[i] = float64(len(sec.Roster))
		sum += fills[i]
	}
	mean := sum / n
	variance := 0.0
	for _, f := range fills {
		d := f - mean
		variance += d * d
	}
	return variance / n
}

// conflicts reports whether moving studentID into "to" would collide with
// any other section already assigned to them (excluding the section being
// vacated, identified by fromID).
func conflicts(studentID string, to *domain.Section, fromID string, sectionByID map[string]*domain.Section, assignments map[string]map[string]bool) bool {
	for sectionID := range assignments[studentID] {
		if sectionID == fromID || sectionID == to.ID {
			continue
		}
		if other := sectionByID[sectionID]; other != nil && other.Slot == to.Slot {
			return true
		}
	}
	return false
}

func eligible(data *domain.InputData, studentID, courseID string) bool {
	student := data.Students[studentID]
	course := data.Courses[courseID]
	if course == nil || !course.Restricted(student.Grade) {
		return false
	}
	for _, id := range student.RequiredCourses {
		if id == courseID {
			return true
		}
	}
	for _, id := range student.ElectivePreferences {
		if id == courseID {
			return true
		}
	}
	return false
}
