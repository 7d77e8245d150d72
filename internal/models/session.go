package models

import (
	"sort"
	"time"
)

// Victory is the evaluated state of the game
type Victory string

const (
	// VictoryOngoing means no side has won yet
	VictoryOngoing Victory = "ongoing"

	// VictoryMafiaWin means the mafia reached parity with the citizens
	VictoryMafiaWin Victory = "mafia_win"

	// VictoryCitizensWin means every mafia member is out
	VictoryCitizensWin Victory = "citizens_win"
)

// IsOver reports whether one side has won
func (v Victory) IsOver() bool {
	return v == VictoryMafiaWin || v == VictoryCitizensWin
}

// Session is one moderated game
type Session struct {
	// ID identifies the session (a channel or console id)
	ID string

	// PlayerCount is between 7 and 14
	PlayerCount int

	// Roles is the shuffled role list, indexed by slot
	Roles []RoleName

	// Players are the slots, indexed by slot
	Players []*Player

	// SelectionOrder lists confirmed slots in pick order
	SelectionOrder []int

	// PendingSlot is the slot being named, nil when none
	PendingSlot *int

	// Days are keyed by day number
	Days map[int]*Day

	// ActiveDay is the latest day the game is playing
	ActiveDay int

	// ViewDay is the day being inspected, may be earlier than ActiveDay
	ViewDay int

	// Night is the sequencer state, nil outside the night
	Night *NightState

	// Negotiated maps a player to the day they were negotiated
	Negotiated map[int]int

	// UsedAbilities holds one-time roles that already acted
	UsedAbilities map[RoleName]bool

	// CreatedAt is when the session was started
	CreatedAt time.Time

	// UpdatedAt is when the session was last saved
	UpdatedAt time.Time
}

// DayNumbers returns the existing day numbers in ascending order
func (s *Session) DayNumbers() []int {
	days := make([]int, 0, len(s.Days))
	for n := range s.Days {
		days = append(days, n)
	}
	sort.Ints(days)
	return days
}

// SelectionIndex returns the position of slot in the selection order, -1 when unselected
func (s *Session) SelectionIndex(slot int) int {
	for i, id := range s.SelectionOrder {
		if id == slot {
			return i
		}
	}
	return -1
}
