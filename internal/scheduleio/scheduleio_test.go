package scheduleio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/testutil"
	"github.com/schedgen/schedgen/internal/validator"
)

// P5: Write then Read reproduces an equivalent schedule, and the result
// still validates clean.
func TestWriteReadRoundTrip(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddRoom(data, &domain.Room{ID: "r1", Capacity: 2})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 2})
	testutil.AddStudent(data, &domain.Student{ID: "s1", Grade: 9, RequiredCourses: []string{"c"}})

	sched := &domain.Schedule{
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Sections: []*domain.Section{
			{ID: "c-0", CourseID: "c", TeacherID: "t1", RoomID: "r1", Slot: domain.Slot{Day: 1, Period: 2}, Roster: map[string]bool{"s1": true}},
		},
		StudentAssignments: map[string]map[string]bool{"s1": {"c-0": true}},
		Metadata:           domain.Metadata{ObjectiveValue: 1000, RequiredFillRate: 1, ElectiveFillRate: 0, RebalanceMoves: 2},
	}

	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, Write(path, sched))

	got, err := Read(path)
	require.NoError(t, err)

	assert.True(t, sched.GeneratedAt.Equal(got.GeneratedAt))
	require.Len(t, got.Sections, 1)
	assert.Equal(t, sched.Sections[0].ID, got.Sections[0].ID)
	assert.Equal(t, sched.Sections[0].Slot, got.Sections[0].Slot)
	assert.Equal(t, sched.Sections[0].Roster, got.Sections[0].Roster)
	assert.Equal(t, sched.StudentAssignments, got.StudentAssignments)
	assert.Equal(t, sched.Metadata, got.Metadata)

	report := validator.Validate(data, got)
	assert.True(t, report.Passed)
}

func TestMarshalIsSorted(t *testing.T) {
	sched := &domain.Schedule{
		Sections: []*domain.Section{
			{ID: "z-0", CourseID: "z", Roster: map[string]bool{}},
			{ID: "a-0", CourseID: "a", Roster: map[string]bool{}},
		},
		StudentAssignments: map[string]map[string]bool{},
	}
	raw, err := Marshal(sched)
	require.NoError(t, err)
	assert.Regexp(t, `"id": "a-0"[\s\S]*"id": "z-0"`, string(raw))
}
