// Package testutil builds small InputData fixtures shared across the
// phase packages' tests, so each test file doesn't re-derive the same
// boilerplate entity construction.
package testutil

import "github.com/schedgen/schedgen/internal/domain"

// NewData returns an empty InputData with a 5x7 default grid and
// initialized maps, ready for a test to populate via AddStudent etc.
func NewData() *domain.InputData {
	return &domain.InputData{
		Students: make(map[string]*domain.Student),
		Teachers: make(map[string]*domain.Teacher),
		Courses:  make(map[string]*domain.Course),
		Rooms:    make(map[string]*domain.Room),
		Grid:     domain.DefaultTimeGrid(),
	}
}

func AddStudent(d *domain.InputData, s *domain.Student) {
	d.Students[s.ID] = s
	d.StudentOrder = append(d.StudentOrder, s.ID)
}

func AddTeacher(d *domain.InputData, t *domain.Teacher) {
	d.Teachers[t.ID] = t
	d.TeacherOrder = append(d.TeacherOrder, t.ID)
}

func AddCourse(d *domain.InputData, c *domain.Course) {
	d.Courses[c.ID] = c
	d.CourseOrder = append(d.CourseOrder, c.ID)
}

func AddRoom(d *domain.InputData, r *domain.Room) {
	d.Rooms[r.ID] = r
	d.RoomOrder = append(d.RoomOrder, r.ID)
}
