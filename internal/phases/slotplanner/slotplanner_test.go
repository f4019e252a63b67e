package slotplanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedgen/schedgen/internal/config"
	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/testutil"
)

// S2: two grade-12-restricted courses, one section each, one grade-12
// student requiring both — they must land on distinct slots.
func TestPlanGradeSeparation(t *testing.T) {
	data := testutil.NewData()
	data.Grid = domain.TimeGrid{Days: 1, PeriodsPerDay: 2}
	testutil.AddStudent(data, &domain.Student{ID: "s1", Grade: 12, RequiredCourses: []string{"a", "b"}})
	testutil.AddTeacher(data, &domain.Teacher{ID: "ta", Subjects: map[string]bool{"a": true}})
	testutil.AddTeacher(data, &domain.Teacher{ID: "tb", Subjects: map[string]bool{"b": true}})
	testutil.AddCourse(data, &domain.Course{ID: "a", Sections: 1, GradeRestrictions: map[int]bool{12: true}})
	testutil.AddCourse(data, &domain.Course{ID: "b", Sections: 1, GradeRestrictions: map[int]bool{12: true}})

	secA := domain.NewSection("a", 0)
	secA.TeacherID = "ta"
	secB := domain.NewSection("b", 0)
	secB.TeacherID = "tb"
	sections := []*domain.Section{secA, secB}

	require.NoError(t, Plan(data, sections, config.DefaultSlotWeights()))
	assert.NotEqual(t, secA.Slot, secB.Slot)
}

// S5: a teacher unavailable at (0,0) with one course and a 1x2 grid ends
// up placed at (0,1).
func TestPlanAvoidsTeacherUnavailability(t *testing.T) {
	data := testutil.NewData()
	data.Grid = domain.TimeGrid{Days: 1, PeriodsPerDay: 2}
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, Unavailable: map[domain.Slot]bool{{Day: 0, Period: 0}: true}})
	testutil.AddCourse(data, &domain.Course{ID: "c", Sections: 1})

	sec := domain.NewSection("c", 0)
	sec.TeacherID = "t1"

	require.NoError(t, Plan(data, []*domain.Section{sec}, config.DefaultSlotWeights()))
	assert.Equal(t, domain.Slot{Day: 0, Period: 1}, sec.Slot)
}

func TestPlanPinnedHonorsValidHint(t *testing.T) {
	data := testutil.NewData()
	data.Grid = domain.TimeGrid{Days: 1, PeriodsPerDay: 2}
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}})
	testutil.AddCourse(data, &domain.Course{ID: "c", Sections: 1})

	sec := domain.NewSection("c", 0)
	sec.TeacherID = "t1"

	pin := map[string]domain.Slot{"c-0": {Day: 0, Period: 1}}
	require.NoError(t, PlanPinned(data, []*domain.Section{sec}, config.DefaultSlotWeights(), pin))
	assert.Equal(t, domain.Slot{Day: 0, Period: 1}, sec.Slot)
}

func TestPlanPinnedFallsBackWhenHintConflictsWithUnavailability(t *testing.T) {
	data := testutil.NewData()
	data.Grid = domain.TimeGrid{Days: 1, PeriodsPerDay: 2}
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, Unavailable: map[domain.Slot]bool{{Day: 0, Period: 0}: true}})
	testutil.AddCourse(data, &domain.Course{ID: "c", Sections: 1})

	sec := domain.NewSection("c", 0)
	sec.TeacherID = "t1"

	pin := map[string]domain.Slot{"c-0": {Day: 0, Period: 0}}
	require.NoError(t, PlanPinned(data, []*domain.Section{sec}, config.DefaultSlotWeights(), pin))
	assert.Equal(t, domain.Slot{Day: 0, Period: 1}, sec.Slot)
}

func TestPlanNoFeasibleSlotFails(t *testing.T) {
	data := testutil.NewData()
	data.Grid = domain.TimeGrid{Days: 1, PeriodsPerDay: 1}
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, Unavailable: map[domain.Slot]bool{{Day: 0, Period: 0}: true}})
	testutil.AddCourse(data, &domain.Course{ID: "c", Sections: 1})

	sec := domain.NewSection("c", 0)
	sec.TeacherID = "t1"

	err := Plan(data, []*domain.Section{sec}, config.DefaultSlotWeights())
	require.Error(t, err)
}
