package models

import "sort"

// Player represents one slot at the table
type Player struct {
	// ID is the 0-based slot index, stable for the whole game
	ID int

	// Name is entered by the moderator when the slot is confirmed
	Name string

	// Role is assigned from the shuffled role list and never changes
	Role RoleName

	// Selected indicates the slot has been confirmed with a name
	Selected bool
}

// VoteMap counts votes per player ID. A missing key means zero votes.
type VoteMap map[int]int

// Get returns the vote count for id, zero when absent
func (v VoteMap) Get(id int) int {
	return v[id]
}

// Has reports whether an entry was recorded for id, even if it is zero
func (v VoteMap) Has(id int) bool {
	_, ok := v[id]
	return ok
}

// Clone returns a copy of the map
func (v VoteMap) Clone() VoteMap {
	out := make(VoteMap, len(v))
	for k, c := range v {
		out[k] = c
	}
	return out
}

// IDSet is a set of player IDs. A missing key means not a member.
type IDSet map[int]bool

// Has reports membership
func (s IDSet) Has(id int) bool {
	return s[id]
}

// Add inserts id
func (s IDSet) Add(id int) {
	s[id] = true
}

// IDs returns the members in ascending order
func (s IDSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id, ok := range s {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
