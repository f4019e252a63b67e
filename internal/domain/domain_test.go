package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeGridSlots(t *testing.T) {
	g := TimeGrid{Days: 2, PeriodsPerDay: 3}
	slots := g.Slots()
	assert.Len(t, slots, 6)
	assert.Equal(t, Slot{Day: 0, Period: 0}, slots[0])
	assert.Equal(t, Slot{Day: 1, Period: 2}, slots[len(slots)-1])
}

func TestCourseRestricted(t *testing.T) {
	open := &Course{GradeRestrictions: map[int]bool{}}
	assert.True(t, open.Restricted(9))
	assert.True(t, open.Restricted(12))

	closed := &Course{GradeRestrictions: map[int]bool{12: true}}
	assert.True(t, closed.Restricted(12))
	assert.False(t, closed.Restricted(11))
}

func TestTeacherQualified(t *testing.T) {
	teach := &Teacher{Subjects: map[string]bool{"math10": true}}
	assert.True(t, teach.Qualified("math10"))
	assert.False(t, teach.Qualified("eng10"))
}

func TestSectionIDAndRoster(t *testing.T) {
	sec := NewSection("math10", 0)
	assert.Equal(t, "math10-0", sec.ID)
	sec.Roster["s2"] = true
	sec.Roster["s1"] = true
	assert.Equal(t, []string{"s1", "s2"}, sec.RosterIDs())
}
