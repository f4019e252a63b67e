// Package roomassigner implements Phase 3: give each slotted
// section a room that carries its course's required features, is free at
// the section's slot, and is sized as close to the course's cap as
// possible without going under it when avoidable.
package roomassigner

import (
	"fmt"
	"sort"

	"github.com/schedgen/schedgen/internal/domain"
	"github.com/schedgen/schedgen/internal/schederrors"
)

// Assign gives sections[i].RoomID in place, processing sections in their
// given (input) order, and returns any CapacityBelowRequested warnings
// alongside a fatal error if some section has no feasible room.
func Assign(data *domain.InputData, sections []*domain.Section) (warnings []string, err error) {
	return AssignPinned(data, sections, nil)
}

// AssignPinned behaves like Assign but honors pin, a section-id -> room-id
// hint carried over from a previously-produced Schedule. A pinned room is
// used directly, skipping the candidate search, provided it still carries
// the course's required features and is free at the section's slot;
// otherwise the section falls back to the ordinary smallest-sufficient-room
// search. A nil pin makes this identical to Assign.
func AssignPinned(data *domain.InputData, sections []*domain.Section, pin map[string]string) (warnings []string, err error) {
	roomBusy := make(map[string]map[domain.Slot]bool, len(data.Rooms))

	for _, sec := range sections {
		course := data.Courses[sec.CourseID]

		if roomID, ok := pin[sec.ID]; ok {
			if room := data.Rooms[roomID]; room != nil && room.HasFeatures(course.RequiredFeatures) &&
				!room.Unavailable[sec.Slot] && !roomBusy[roomID][sec.Slot] {
				sec.RoomID = roomID
				sec.HasRoom = true
				if roomBusy[roomID] == nil {
					roomBusy[roomID] = make(map[domain.Slot]bool)
				}
				roomBusy[roomID][sec.Slot] = true
				if room.Capacity < course.MaxStudents {
					warnings = append(warnings, fmt.Sprintf(
						"CapacityBelowRequested: section %s needs capacity %d but pinned room %s only has %d",
						sec.ID, course.MaxStudents, roomID, room.Capacity))
				}
				continue
			}
		}

		var candidates []string
		for _, roomID := range data.RoomOrder {
			room := data.Rooms[roomID]
			if !room.HasFeatures(course.RequiredFeatures) {
				continue
			}
			if room.Unavailable[sec.Slot] {
				continue
			}
			if roomBusy[roomID][sec.Slot] {
				continue
			}
			candidates = append(candidates, roomID)
		}

		if len(candidates) == 0 {
			return warnings, schederrors.New(schederrors.KindConfiguration, schederrors.NoFeasibleRoom, sec.ID,
				"no room carries the required features and is free at this slot")
		}

		chosen, warning := pickRoom(data, candidates, course.MaxStudents, sec.ID)
		if warning != "" {
			warnings = append(warnings, warning)
		}

		sec.RoomID = chosen
		sec.HasRoom = true
		if roomBusy[chosen] == nil {
			roomBusy[chosen] = make(map[domain.Slot]bool)
		}
		roomBusy[chosen][sec.Slot] = true
	}
	return warnings, nil
}

// pickRoom chooses the smallest candidate room with capacity >= needed; if
// none qualifies it falls back to the largest candidate and reports a
// CapacityBelowRequested warning.
func pickRoom(data *domain.InputData, candidates []string, needed int, sectionID string) (string, string) {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	var bestFit string
	bestFitCap := -1
	var largest string
	largestCap := -1

	for _, roomID := range sorted {
		capacity := data.Rooms[roomID].Capacity
		if capacity > largestCap {
			largest = roomID
			largestCap = capacity
		}
		if capacity >= needed && (bestFit == "" || capacity < bestFitCap) {
			bestFit = roomID
			bestFitCap = capacity
		}
	}

	if bestFit != "" {
		return bestFit, ""
	}
	warning := fmt.Sprintf("CapacityBelowRequested: section %s needs capacity %d but the largest available room %s only has %d",
		sectionID, needed, largest, largestCap)
	return largest, warning
}
