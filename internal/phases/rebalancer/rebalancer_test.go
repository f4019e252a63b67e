package rebalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/testutil"
)

// B5: two sections of one course, one full and one empty; a student in
// the fuller section with no conflict in the other should move, leaving
// one student in each.
func TestRebalanceMovesStudentToLessFullSection(t *testing.T) {
	data := testutil.NewData()
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 2, Sections: 2})
	testutil.AddRoom(data, &domain.Room{ID: "r1", Capacity: 2})
	testutil.AddRoom(data, &domain.Room{ID: "r2", Capacity: 2})
	for _, id := range []string{"s1", "s2"} {
		testutil.AddStudent(data, &domain.Student{ID: id, ElectivePreferences: []string{"c"}})
	}

	full := domain.NewSection("c", 0)
	full.RoomID = "r1"
	full.Slot = domain.Slot{Day: 0, Period: 0}
	full.Roster = map[string]bool{"s1": true, "s2": true}

	empty := domain.NewSection("c", 1)
	empty.RoomID = "r2"
	empty.Slot = domain.Slot{Day: 1, Period: 0}
	empty.Roster = map[string]bool{}

	assignments := map[string]map[string]bool{
		"s1": {"c-0": true},
		"s2": {"c-0": true},
	}

	moves := Rebalance(data, []*domain.Section{full, empty}, assignments)
	assert.Equal(t, 1, moves)
	assert.Len(t, full.Roster, 1)
	assert.Len(t, empty.Roster, 1)
}

func TestRebalanceNeverIncreasesTotalAssignments(t *testing.T) {
	data := testutil.NewData()
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 5, Sections: 1})
	testutil.AddRoom(data, &domain.Room{ID: "r1", Capacity: 5})
	testutil.AddStudent(data, &domain.Student{ID: "s1", ElectivePreferences: []string{"c"}})

	sec := domain.NewSection("c", 0)
	sec.RoomID = "r1"
	sec.Roster = map[string]bool{"s1": true}
	assignments := map[string]map[string]bool{"s1": {"c-0": true}}

	moves := Rebalance(data, []*domain.Section{sec}, assignments)
	assert.Equal(t, 0, moves)
	assert.Len(t, assignments["s1"], 1)
}
