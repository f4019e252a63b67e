// Package validator implements an independent check of every hard
// invariant (I1-I10) against a produced Schedule, modeled as a flat set of
// checks each producing a typed Violation rather than an inheritance
// hierarchy — this keeps the report schema stable and serializable.
package validator

import (
	"sort"
	"strconv"

	"github.com/schedgen/schedgen/internal/domain"
)

// Violation names the invariant that failed and the entities involved.
type Violation struct {
	Invariant string
	Entities  []string
	Message   string
}

// Metrics are the verbose-mode figures the validator reports.
type Metrics struct {
	CourseFillRate             map[string]float64
	TeacherLoad                map[string]int
	RoomUtilization            map[string]float64
	RequiredCourseSatisfaction float64
	ElectiveRankDistribution   map[int]int
}

// Report is the validator's sole output: never an error, just a pass/fail
// flag with reasons.
type Report struct {
	Passed     bool
	Violations []Violation
	Metrics    Metrics
}

// Validate checks sched against data and returns a Report. It never
// returns an error: an unreadable Schedule is the caller's problem (data
// loading), not the validator's.
func Validate(data *domain.InputData, sched *domain.Schedule) Report {
	var violations []Violation

	sectionByID := make(map[string]*domain.Section, len(sched.Sections))
	for _, sec := range sched.Sections {
		sectionByID[sec.ID] = sec
	}

	violations = append(violations, checkI1I2(data, sched)...)
	violations = append(violations, checkI3I4(sched)...)
	violations = append(violations, checkI5(data, sched)...)
	violations = append(violations, checkI6(data, sched)...)
	violations = append(violations, checkI7I8(data, sched, sectionByID)...)
	violations = append(violations, checkI9(data, sched)...)
	violations = append(violations, checkI10(data, sched)...)

	return Report{
		Passed:     len(violations) == 0,
		Violations: violations,
		Metrics:    computeMetrics(data, sched),
	}
}

// checkI1I2: every section references an existing course/teacher/room, and
// the teacher is qualified for the section's course.
func checkI1I2(data *domain.InputData, sched *domain.Schedule) []Violation {
	var out []Violation
	for _, sec := range sched.Sections {
		if _, ok := data.Courses[sec.CourseID]; !ok {
			out = append(out, Violation{"I1", []string{sec.ID, sec.CourseID}, "section references an unknown course"})
			continue
		}
		teacher, ok := data.Teachers[sec.TeacherID]
		if !ok {
			out = append(out, Violation{"I1", []string{sec.ID, sec.TeacherID}, "section references an unknown teacher"})
		} else if !teacher.Qualified(sec.CourseID) {
			out = append(out, Violation{"I2", []string{sec.ID, sec.TeacherID}, "teacher is not qualified for this section's course"})
		}
		if _, ok := data.Rooms[sec.RoomID]; !ok {
			out = append(out, Violation{"I1", []string{sec.ID, sec.RoomID}, "section references an unknown room"})
		}
	}
	return out
}

// checkI3I4: no two sections sharing a teacher (or room) share a slot.
func checkI3I4(sched *domain.Schedule) []Violation {
	var out []Violation
	byTeacherSlot := make(map[string]string)
	byRoomSlot := make(map[string]string)

	sections := sortedSections(sched.Sections)
	for _, sec := range sections {
		tkey := sec.TeacherID + "@" + slotKey(sec.Slot)
		if prior, ok := byTeacherSlot[tkey]; ok {
			out = append(out, Violation{"I3", []string{prior, sec.ID}, "two sections of the same teacher share a slot"})
		} else {
			byTeacherSlot[tkey] = sec.ID
		}

		rkey := sec.RoomID + "@" + slotKey(sec.Slot)
		if prior, ok := byRoomSlot[rkey]; ok {
			out = append(out, Violation{"I4", []string{prior, sec.ID}, "two sections in the same room share a slot"})
		} else {
			byRoomSlot[rkey] = sec.ID
		}
	}
	return out
}

// checkI5: a section's slot must not be in its teacher's or room's
// unavailable set.
func checkI5(data *domain.InputData, sched *domain.Schedule) []Violation {
	var out []Violation
	for _, sec := range sortedSections(sched.Sections) {
		if teacher := data.Teachers[sec.TeacherID]; teacher != nil && teacher.Unavailable[sec.Slot] {
			out = append(out, Violation{"I5", []string{sec.ID, sec.TeacherID}, "section placed when its teacher is unavailable"})
		}
		if room := data.Rooms[sec.RoomID]; room != nil && room.Unavailable[sec.Slot] {
			out = append(out, Violation{"I5", []string{sec.ID, sec.RoomID}, "section placed when its room is unavailable"})
		}
	}
	return out
}

// checkI6: roster size must not exceed min(course.max_students, room.capacity).
func checkI6(data *domain.InputData, sched *domain.Schedule) []Violation {
	var out []Violation
	for _, sec := range sortedSections(sched.Sections) {
		course := data.Courses[sec.CourseID]
		room := data.Rooms[sec.RoomID]
		if course == nil || room == nil {
			continue
		}
		limit := course.MaxStudents
		if room.Capacity < limit {
			limit = room.Capacity
		}
		if len(sec.Roster) > limit {
			out = append(out, Violation{"I6", []string{sec.ID}, "roster exceeds min(course.max_students, room.capacity)"})
		}
	}
	return out
}

// checkI7I8: no student is in two sections at the same slot (I7), and no
// student is in two sections of the same course (I8).
func checkI7I8(data *domain.InputData, sched *domain.Schedule, sectionByID map[string]*domain.Section) []Violation {
	var out []Violation
	for _, studentID := range sortedKeys(sched.StudentAssignments) {
		bySlot := make(map[string][]string)
		byCourse := make(map[string][]string)
		for _, sectionID := range sortedSet(sched.StudentAssignments[studentID]) {
			sec := sectionByID[sectionID]
			if sec == nil {
				continue
			}
			bySlot[slotKey(sec.Slot)] = append(bySlot[slotKey(sec.Slot)], sectionID)
			byCourse[sec.CourseID] = append(byCourse[sec.CourseID], sectionID)
		}
		for _, ids := range bySlot {
			if len(ids) > 1 {
				out = append(out, Violation{"I7", append([]string{studentID}, ids...), "student has two sections at the same slot"})
			}
		}
		for _, ids := range byCourse {
			if len(ids) > 1 {
				out = append(out, Violation{"I8", append([]string{studentID}, ids...), "student is in two sections of the same course"})
			}
		}
	}
	return out
}

// checkI9: every student in a roster must satisfy the course's grade
// restrictions.
func checkI9(data *domain.InputData, sched *domain.Schedule) []Violation {
	var out []Violation
	for _, sec := range sortedSections(sched.Sections) {
		course := data.Courses[sec.CourseID]
		if course == nil || len(course.GradeRestrictions) == 0 {
			continue
		}
		for _, studentID := range sec.RosterIDs() {
			student := data.Students[studentID]
			if student == nil {
				continue
			}
			if !course.GradeRestrictions[student.Grade] {
				out = append(out, Violation{"I9", []string{sec.ID, studentID}, "student's grade is not in the course's grade_restrictions"})
			}
		}
	}
	return out
}

// checkI10: no teacher exceeds their max_sections count.
func checkI10(data *domain.InputData, sched *domain.Schedule) []Violation {
	var out []Violation
	counts := make(map[string]int)
	for _, sec := range sched.Sections {
		counts[sec.TeacherID]++
	}
	for _, teacherID := range sortedKeysInt(counts) {
		teacher := data.Teachers[teacherID]
		if teacher != nil && counts[teacherID] > teacher.MaxSections {
			out = append(out, Violation{"I10", []string{teacherID}, "teacher exceeds max_sections"})
		}
	}
	return out
}

func computeMetrics(data *domain.InputData, sched *domain.Schedule) Metrics {
	m := Metrics{
		CourseFillRate:           make(map[string]float64),
		TeacherLoad:              make(map[string]int),
		RoomUtilization:          make(map[string]float64),
		ElectiveRankDistribution: make(map[int]int),
	}

	fillByCourse := make(map[string][2]int) // [filled, capacity]
	for _, sec := range sched.Sections {
		course := data.Courses[sec.CourseID]
		room := data.Rooms[sec.RoomID]
		if course == nil {
			continue
		}
		limit := course.MaxStudents
		if room != nil && room.Capacity < limit {
			limit = room.Capacity
		}
		cur := fillByCourse[sec.CourseID]
		cur[0] += len(sec.Roster)
		cur[1] += limit
		fillByCourse[sec.CourseID] = cur

		m.TeacherLoad[sec.TeacherID]++
	}
	for cid, fc := range fillByCourse {
		if fc[1] > 0 {
			m.CourseFillRate[cid] = float64(fc[0]) / float64(fc[1])
		}
	}

	roomSlotsUsed := make(map[string]int)
	for _, sec := range sched.Sections {
		roomSlotsUsed[sec.RoomID]++
	}
	totalSlots := data.Grid.Days * data.Grid.PeriodsPerDay
	for roomID := range data.Rooms {
		if totalSlots > 0 {
			m.RoomUtilization[roomID] = float64(roomSlotsUsed[roomID]) / float64(totalSlots)
		}
	}

	requiredTotal, requiredFilled := 0, 0
	sectionByID := make(map[string]*domain.Section, len(sched.Sections))
	for _, sec := range sched.Sections {
		sectionByID[sec.ID] = sec
	}
	for _, studentID := range data.StudentOrder {
		student := data.Students[studentID]
		assigned := sched.StudentAssignments[studentID]
		assignedCourses := make(map[string]bool)
		for sectionID := range assigned {
			if sec := sectionByID[sectionID]; sec != nil {
				assignedCourses[sec.CourseID] = true
			}
		}
		for _, cid := range student.RequiredCourses {
			requiredTotal++
			if assignedCourses[cid] {
				requiredFilled++
			}
		}
		for rank, cid := range student.ElectivePreferences {
			if assignedCourses[cid] {
				m.ElectiveRankDistribution[rank]++
			}
		}
	}
	if requiredTotal > 0 {
		m.RequiredCourseSatisfaction = float64(requiredFilled) / float64(requiredTotal)
	}

	return m
}

func slotKey(s domain.Slot) string {
	return strconv.Itoa(s.Day) + ":" + strconv.Itoa(s.Period)
}

func sortedSections(secs []*domain.Section) []*domain.Section {
	out := append([]*domain.Section(nil), secs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(m map[string]map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysInt(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
