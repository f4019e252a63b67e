package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedgen/schedgen/internal/schederrors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadValidDataset(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"students.json": `[{"id":"s1","name":"Sam","grade":10,"required_courses":["m10"],"elective_preferences":[]}]`,
		"teachers.json": `[{"id":"t1","name":"T","subjects":["m10"],"max_sections":1,"unavailable":[]}]`,
		"courses.json":  `[{"id":"m10","name":"Math","max_students":1,"grade_restrictions":[10],"required_features":[],"sections":1}]`,
		"rooms.json":    `[{"id":"r1","name":"R1","capacity":1,"features":[],"unavailable":[]}]`,
	})

	data, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, data.Grid.Days)
	assert.Equal(t, 7, data.Grid.PeriodsPerDay)
	assert.Contains(t, data.Students, "s1")
	assert.Contains(t, data.Courses, "m10")
}

func TestLoadCustomTimeGrid(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"students.json": `[]`,
		"teachers.json": `[]`,
		"courses.json":  `[]`,
		"rooms.json":    `[]`,
		"timegrid.json": `{"days":1,"periods_per_day":2}`,
	})

	data, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Grid.Days)
	assert.Equal(t, 2, data.Grid.PeriodsPerDay)
}

func TestLoadDuplicateStudentDifferentGradeRejected(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"students.json": `[{"id":"s1","name":"Sam","grade":10,"required_courses":[],"elective_preferences":[]},
                           {"id":"s1","name":"Sam","grade":11,"required_courses":[],"elective_preferences":[]}]`,
		"teachers.json": `[]`,
		"courses.json":  `[]`,
		"rooms.json":    `[]`,
	})

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, schederrors.IsCode(err, schederrors.DuplicateID))
}

func TestLoadUnknownRequiredCourseRejected(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"students.json": `[{"id":"s1","name":"Sam","grade":10,"required_courses":["ghost"],"elective_preferences":[]}]`,
		"teachers.json": `[]`,
		"courses.json":  `[]`,
		"rooms.json":    `[]`,
	})

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, schederrors.IsCode(err, schederrors.UnknownCourse))
}

func TestLoadMissingRequiredFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
}
