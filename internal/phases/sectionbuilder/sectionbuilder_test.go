package sectionbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
	"github.com/schedgen/schedgen/internal/testutil"
)

func TestBuildSingleStudentSingleCourse(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"m10": true}, MaxSections: 1, Unavailable: map[domain.Slot]bool{}})
	testutil.AddCourse(data, &domain.Course{ID: "m10", MaxStudents: 1, GradeRestrictions: map[int]bool{10: true}, RequiredFeatures: map[string]bool{}, Sections: 1})

	sections, err := Build(data)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "m10-0", sections[0].ID)
	assert.Equal(t, "t1", sections[0].TeacherID)
}

func TestBuildRoundRobinAcrossMultipleTeachers(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddTeacher(data, &domain.Teacher{ID: "t2", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 2})

	sections, err := Build(data)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.ElementsMatch(t, []string{"t1", "t2"}, []string{sections[0].TeacherID, sections[1].TeacherID})
}

func TestBuildUnqualifiedTeacherFails(t *testing.T) {
	data := testutil.NewData()
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 1})

	_, err := Build(data)
	require.Error(t, err)
	assert.True(t, schederrors.IsCode(err, schederrors.UnqualifiedTeacher))
}

// B2: a teacher with max_sections = 0 is never selected, which here is the
// only qualified teacher, so the course fails as unqualified.
func TestBuildTeacherWithZeroMaxSectionsNeverSelected(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 0})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 1})

	_, err := Build(data)
	require.Error(t, err)
	assert.True(t, schederrors.IsCode(err, schederrors.UnqualifiedTeacher))
}

func TestBuildTeacherOverloadFails(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 2})

	_, err := Build(data)
	require.Error(t, err)
	assert.True(t, schederrors.IsCode(err, schederrors.TeacherOverload))
}

func TestBuildPinnedHonorsValidHint(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddTeacher(data, &domain.Teacher{ID: "t2", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 2})

	sections, err := BuildPinned(data, map[string]string{"c-0": "t2", "c-1": "t1"})
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "t2", sections[0].TeacherID)
	assert.Equal(t, "t1", sections[1].TeacherID)
}

func TestBuildPinnedFallsBackWhenHintInvalid(t *testing.T) {
	data := testutil.NewData()
	testutil.AddTeacher(data, &domain.Teacher{ID: "t1", Subjects: map[string]bool{"c": true}, MaxSections: 1})
	testutil.AddCourse(data, &domain.Course{ID: "c", MaxStudents: 1, Sections: 1})

	// "ghost" does not exist as a teacher at all; the hint must be ignored.
	sections, err := BuildPinned(data, map[string]string{"c-0": "ghost"})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "t1", sections[0].TeacherID)
}
