// Package loader reads the four-or-five-file JSON layout
// into a *domain.InputData. It decodes with the standard library, then
// validates structure with go-playground/validator before
// cross-referencing ids.
//
// Full JSON-schema validation and TOML support are left to an external
// collaborator; this package only does the minimal decode + struct-tag
// validation the core needs to build a safe in-memory model.
package loader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
)

var validate = validator.New()

// Load reads students.json, teachers.json, courses.json, rooms.json, and
// the optional timegrid.json from dataDir and returns a validated,
// cross-referenced InputData.
func Load(dataDir string) (*domain.InputData, error) {
	var students []studentDTO
	if err := readJSONArray(dataDir, "students.json", &students, true); err != nil {
		return nil, err
	}
	var teachers []teacherDTO
	if err := readJSONArray(dataDir, "teachers.json", &teachers, true); err != nil {
		return nil, err
	}
	var courses []courseDTO
	if err := readJSONArray(dataDir, "courses.json", &courses, true); err != nil {
		return nil, err
	}
	var rooms []roomDTO
	if err := readJSONArray(dataDir, "rooms.json", &rooms, true); err != nil {
		return nil, err
	}

	grid := domain.DefaultTimeGrid()
	var gridDTO timeGridDTO
	present, err := readJSONObjectIfExists(dataDir, "timegrid.json", &gridDTO)
	if err != nil {
		return nil, err
	}
	if present {
		if err := validate.Struct(gridDTO); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, "timegrid.json", err.Error())
		}
		grid = domain.TimeGrid{Days: gridDTO.Days, PeriodsPerDay: gridDTO.PeriodsPerDay}
	}

	data := &domain.InputData{
		Students: make(map[string]*domain.Student),
		Teachers: make(map[string]*domain.Teacher),
		Courses:  make(map[string]*domain.Course),
		Rooms:    make(map[string]*domain.Room),
		Grid:     grid,
	}

	for _, c := range courses {
		if err := validate.Struct(c); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, c.ID, err.Error())
		}
		if _, dup := data.Courses[c.ID]; dup {
			return nil, schederrors.New(schederrors.KindData, schederrors.DuplicateID, c.ID, "course id appears more than once")
		}
		data.Courses[c.ID] = &domain.Course{
			ID:                c.ID,
			Name:              c.Name,
			MaxStudents:       c.MaxStudents,
			GradeRestrictions: toIntSet(c.GradeRestrictions),
			RequiredFeatures:  toStringSet(c.RequiredFeatures),
			Sections:          c.Sections,
		}
		data.CourseOrder = append(data.CourseOrder, c.ID)
	}

	for _, t := range teachers {
		if err := validate.Struct(t); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, t.ID, err.Error())
		}
		if _, dup := data.Teachers[t.ID]; dup {
			return nil, schederrors.New(schederrors.KindData, schederrors.DuplicateID, t.ID, "teacher id appears more than once")
		}
		unavail := make(map[domain.Slot]bool, len(t.Unavailable))
		for _, s := range t.Unavailable {
			unavail[domain.Slot{Day: s.Day, Period: s.Period}] = true
		}
		data.Teachers[t.ID] = &domain.Teacher{
			ID:          t.ID,
			Name:        t.Name,
			Subjects:    toStringSet(t.Subjects),
			MaxSections: t.MaxSections,
			Unavailable: unavail,
		}
		data.TeacherOrder = append(data.TeacherOrder, t.ID)
	}

	for _, r := range rooms {
		if err := validate.Struct(r); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, r.ID, err.Error())
		}
		if _, dup := data.Rooms[r.ID]; dup {
			return nil, schederrors.New(schederrors.KindData, schederrors.DuplicateID, r.ID, "room id appears more than once")
		}
		unavail := make(map[domain.Slot]bool, len(r.Unavailable))
		for _, s := range r.Unavailable {
			unavail[domain.Slot{Day: s.Day, Period: s.Period}] = true
		}
		data.Rooms[r.ID] = &domain.Room{
			ID:          r.ID,
			Name:        r.Name,
			Capacity:    r.Capacity,
			Features:    toStringSet(r.Features),
			Unavailable: unavail,
		}
		data.RoomOrder = append(data.RoomOrder, r.ID)
	}

	seenGrade := make(map[string]int)
	for _, s := range students {
		if err := validate.Struct(s); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, s.ID, err.Error())
		}
		if prior, dup := seenGrade[s.ID]; dup {
			if prior != s.Grade {
				return nil, schederrors.New(schederrors.KindData, schederrors.DuplicateID, s.ID,
					"student id appears with different grades across files")
			}
			return nil, schederrors.New(schederrors.KindData, schederrors.DuplicateID, s.ID, "student id appears more than once")
		}
		seenGrade[s.ID] = s.Grade

		if err := requireCoursesKnown(data, s.RequiredCourses); err != nil {
			return nil, err
		}
		if err := requireCoursesKnown(data, s.ElectivePreferences); err != nil {
			return nil, err
		}
		if err := noDuplicates(s.RequiredCourses); err != nil {
			return nil, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, s.ID, "duplicate required course")
		}

		data.Students[s.ID] = &domain.Student{
			ID:                  s.ID,
			Name:                s.Name,
			Grade:               s.Grade,
			RequiredCourses:     s.RequiredCourses,
			ElectivePreferences: s.ElectivePreferences,
		}
		data.StudentOrder = append(data.StudentOrder, s.ID)
	}

	for _, t := range data.Teachers {
		for subj := range t.Subjects {
			if _, ok := data.Courses[subj]; !ok {
				return nil, schederrors.New(schederrors.KindData, schederrors.UnknownCourse, subj,
					"teacher "+t.ID+" is qualified for a course that does not exist")
			}
		}
	}

	return data, nil
}

func requireCoursesKnown(data *domain.InputData, ids []string) error {
	for _, id := range ids {
		if _, ok := data.Courses[id]; !ok {
			return schederrors.New(schederrors.KindData, schederrors.UnknownCourse, id, "referenced by a student but not declared in courses.json")
		}
	}
	return nil
}

func noDuplicates(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return schederrors.New(schederrors.KindData, schederrors.MalformedInput, id, "duplicate course id in list")
		}
		seen[id] = true
	}
	return nil
}

func toStringSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func toIntSet(vals []int) map[int]bool {
	out := make(map[int]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}

func readJSONArray(dataDir, filename string, out interface{}, required bool) error {
	path := filepath.Join(dataDir, filename)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, filename, "could not read input file")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, filename, "invalid JSON")
	}
	return nil
}

func readJSONObjectIfExists(dataDir, filename string, out interface{}) (bool, error) {
	path := filepath.Join(dataDir, filename)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, filename, "could not read input file")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, schederrors.Wrap(err, schederrors.KindData, schederrors.MalformedInput, filename, "invalid JSON")
	}
	return true, nil
}
