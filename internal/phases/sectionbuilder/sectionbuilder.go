// Package sectionbuilder implements Phase 1: materialize
// section records from course declarations and assign each one a qualified
// teacher, round-robin, honoring per-teacher section caps.
package sectionbuilder

import (
	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
)

// Build returns sections for every course in data.CourseOrder, each with
// CourseID and TeacherID populated. Slot, room, and roster are left empty
// for later phases to fill in.
func Build(data *domain.InputData) ([]*domain.Section, error) {
	return BuildPinned(data, nil)
}

// BuildPinned behaves like Build but honors pin, a section-id -> teacher-id
// hint carried over from a previously-produced Schedule (a re-run against
// lightly edited input). A pinned teacher is used as-is, without consuming a
// round-robin turn, provided they are still qualified and under their
// max_sections cap; otherwise the section falls back to the ordinary
// round-robin walk. A nil pin makes this identical to Build.
func BuildPinned(data *domain.InputData, pin map[string]string) ([]*domain.Section, error) {
	qualifiedPools := make(map[string][]string, len(data.Courses))
	for _, courseID := range data.CourseOrder {
		var pool []string
		for _, teacherID := range data.TeacherOrder {
			if data.Teachers[teacherID].Qualified(courseID) {
				pool = append(pool, teacherID)
			}
		}
		qualifiedPools[courseID] = pool
	}

	cursor := make(map[string]int, len(data.Courses))
	assignedCount := make(map[string]int, len(data.Teachers))

	var sections []*domain.Section
	for _, courseID := range data.CourseOrder {
		course := data.Courses[courseID]
		pool := qualifiedPools[courseID]

		for i := 0; i < course.Sections; i++ {
			sec := domain.NewSection(courseID, i)

			if teacherID, ok := pin[sec.ID]; ok {
				if teacher := data.Teachers[teacherID]; teacher != nil &&
					teacher.Qualified(courseID) && assignedCount[teacherID] < teacher.MaxSections {
					assignedCount[teacherID]++
					sec.TeacherID = teacherID
					sections = append(sections, sec)
					continue
				}
			}

			teacherID, err := nextTeacher(courseID, pool, cursor, assignedCount, data)
			if err != nil {
				return nil, err
			}
			assignedCount[teacherID]++
			sec.TeacherID = teacherID
			sections = append(sections, sec)
		}
	}
	return sections, nil
}

// nextTeacher advances courseID's round-robin cursor over pool, skipping
// teachers already at their max_sections, and returns the next eligible
// teacher id. A pool whose teachers all have max_sections = 0 counts as
// unqualified rather than overloaded.
func nextTeacher(courseID string, pool []string, cursor, assignedCount map[string]int, data *domain.InputData) (string, error) {
	if len(pool) == 0 {
		return "", schederrors.New(schederrors.KindConfiguration, schederrors.UnqualifiedTeacher, courseID,
			"no teacher is qualified to teach this course")
	}

	start := cursor[courseID]
	anyCapacity := false
	for i := 0; i < len(pool); i++ {
		idx := (start + i) % len(pool)
		teacherID := pool[idx]
		teacher := data.Teachers[teacherID]
		if teacher.MaxSections > 0 {
			anyCapacity = true
		}
		if assignedCount[teacherID] < teacher.MaxSections {
			cursor[courseID] = idx + 1
			return teacherID, nil
		}
	}
	if !anyCapacity {
		return "", schederrors.New(schederrors.KindConfiguration, schederrors.UnqualifiedTeacher, courseID,
			"every qualified teacher has max_sections 0")
	}
	return "", schederrors.New(schederrors.KindConfiguration, schederrors.TeacherOverload, courseID,
		"every qualified teacher is already at their max_sections limit")
}
