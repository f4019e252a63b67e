// Package scheduleio converts between domain.Schedule and the wire schema
// (schedule.json), the output format both the validate and
// report subcommand surfaces need to read back.
package scheduleio

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/schedgen/schedgen/internal/domain"
)

type slotDoc struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

type sectionDoc struct {
	ID        string  `json:"id"`
	CourseID  string  `json:"course_id"`
	TeacherID string  `json:"teacher_id"`
	Slot      slotDoc `json:"slot"`
	RoomID    string  `json:"room_id"`
	Roster    []string `json:"roster"`
}

type metadataDoc struct {
	ObjectiveValue   float64 `json:"objective_value"`
	RequiredFillRate float64 `json:"required_fill_rate"`
	ElectiveFillRate float64 `json:"elective_fill_rate"`
	RebalanceMoves   int     `json:"rebalance_moves"`
}

type scheduleDoc struct {
	GeneratedAt        string              `json:"generated_at"`
	Sections           []sectionDoc        `json:"sections"`
	StudentAssignments map[string][]string `json:"student_assignments"`
	Metadata           metadataDoc         `json:"metadata"`
}

// Marshal renders sched as the schedule.json document.
func Marshal(sched *domain.Schedule) ([]byte, error) {
	doc := scheduleDoc{
		GeneratedAt:        sched.GeneratedAt.UTC().Format(time.RFC3339),
		StudentAssignments: make(map[string][]string, len(sched.StudentAssignments)),
		Metadata: metadataDoc{
			ObjectiveValue:   sched.Metadata.ObjectiveValue,
			RequiredFillRate: sched.Metadata.RequiredFillRate,
			ElectiveFillRate: sched.Metadata.ElectiveFillRate,
			RebalanceMoves:   sched.Metadata.RebalanceMoves,
		},
	}
	for _, sec := range sched.Sections {
		doc.Sections = append(doc.Sections, sectionDoc{
			ID:        sec.ID,
			CourseID:  sec.CourseID,
			TeacherID: sec.TeacherID,
			Slot:      slotDoc{Day: sec.Slot.Day, Period: sec.Slot.Period},
			RoomID:    sec.RoomID,
			Roster:    sec.RosterIDs(),
		})
	}
	sort.Slice(doc.Sections, func(i, j int) bool { return doc.Sections[i].ID < doc.Sections[j].ID })

	for studentID := range sched.StudentAssignments {
		doc.StudentAssignments[studentID] = sched.AssignmentIDs(studentID)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Write renders and writes sched to path.
func Write(path string, sched *domain.Schedule) error {
	raw, err := Marshal(sched)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Read loads a schedule.json document back into a domain.Schedule.
func Read(path string) (*domain.Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc scheduleDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	generatedAt, _ := time.Parse(time.RFC3339, doc.GeneratedAt)

	sched := &domain.Schedule{
		GeneratedAt:        generatedAt,
		StudentAssignments: make(map[string]map[string]bool, len(doc.StudentAssignments)),
		Metadata: domain.Metadata{
			ObjectiveValue:   doc.Metadata.ObjectiveValue,
			RequiredFillRate: doc.Metadata.RequiredFillRate,
			ElectiveFillRate: doc.Metadata.ElectiveFillRate,
			RebalanceMoves:   doc.Metadata.RebalanceMoves,
		},
	}
	for _, s := range doc.Sections {
		sec := &domain.Section{
			ID:        s.ID,
			CourseID:  s.CourseID,
			TeacherID: s.TeacherID,
			Slot:      domain.Slot{Day: s.Slot.Day, Period: s.Slot.Period},
			HasSlot:   true,
			RoomID:    s.RoomID,
			HasRoom:   true,
			Roster:    make(map[string]bool, len(s.Roster)),
		}
		for _, studentID := range s.Roster {
			sec.Roster[studentID] = true
		}
		sched.Sections = append(sched.Sections, sec)
	}
	for studentID, sectionIDs := range doc.StudentAssignments {
		set := make(map[string]bool, len(sectionIDs))
		for _, id := range sectionIDs {
			set[id] = true
		}
		sched.StudentAssignments[studentID] = set
	}
	return sched, nil
}
