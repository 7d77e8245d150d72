// Package history rebuilds who is alive or dead at any point of the game
// from the per-day elimination records.
package history

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

// Roster is the derived view of every slot for one cumulative elimination map
type Roster struct {
	// All holds every slot, named players first in selection order
	All []*models.Player

	// Alive are the players absent from the elimination map
	Alive []*models.Player

	// Dead are the players present in the elimination map
	Dead []*models.Player
}

// IsAlive reports whether id is among the living players
func (r *Roster) IsAlive(id int) bool {
	for _, p := range r.Alive {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Find returns the player with the given id, nil when absent
func (r *Roster) Find(id int) *models.Player {
	for _, p := range r.All {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// EliminationsUpToDay merges the elimination records of days 1..n in
// ascending order. Later entries overwrite earlier ones and revival
// tombstones remove the player. n past the last day covers every day.
func EliminationsUpToDay(days map[int]*models.Day, n int) map[int]models.Elimination {
	numbers := make([]int, 0, len(days))
	for d := range days {
		if d >= 1 && d <= n {
			numbers = append(numbers, d)
		}
	}
	sort.Ints(numbers)

	out := make(map[int]models.Elimination)
	for _, d := range numbers {
		day := days[d]
		if day == nil {
			continue
		}
		for id, e := range day.Eliminated {
			if e.Revived {
				delete(out, id)
				continue
			}
			out[id] = e
		}
	}
	return out
}

// PlaceholderName is the display name of a slot nobody has claimed yet
func PlaceholderName(slot int) string {
	return fmt.Sprintf("Player %d", slot+1)
}

// ProcessPlayerData materializes every slot into a player and splits them
// by the elimination map. Roles come from the shuffled list so unnamed
// slots still carry theirs.
func ProcessPlayerData(roles []models.RoleName, players []*models.Player, eliminations map[int]models.Elimination, selectionOrder []int) *Roster {
	order := make(map[int]int, len(selectionOrder))
	for i, slot := range selectionOrder {
		if _, ok := order[slot]; !ok {
			order[slot] = i
		}
	}

	all := make([]*models.Player, 0, len(roles))
	for slot, role := range roles {
		p := &models.Player{ID: slot, Name: PlaceholderName(slot), Role: role}
		if slot < len(players) && players[slot] != nil && players[slot].Selected {
			p.Name = players[slot].Name
			p.Selected = true
		}
		all = append(all, p)
	}

	sort.SliceStable(all, func(i, j int) bool {
		oi, iNamed := order[all[i].ID]
		oj, jNamed := order[all[j].ID]
		switch {
		case iNamed && jNamed:
			return oi < oj
		case iNamed != jNamed:
			return iNamed
		default:
			return all[i].ID < all[j].ID
		}
	})

	roster := &Roster{
		All:   all,
		Alive: make([]*models.Player, 0, len(all)),
		Dead:  make([]*models.Player, 0),
	}
	for _, p := range all {
		if _, dead := eliminations[p.ID]; dead {
			roster.Dead = append(roster.Dead, p)
		} else {
			roster.Alive = append(roster.Alive, p)
		}
	}
	return roster
}

// EliminationDayOf returns the first day on which the player enters the
// cumulative elimination view, scanning days 1..currentDay.
func EliminationDayOf(days map[int]*models.Day, id, currentDay int) (int, bool) {
	_, before := EliminationsUpToDay(days, 0)[id]
	for d := 1; d <= currentDay; d++ {
		_, now := EliminationsUpToDay(days, d)[id]
		if now && !before {
			return d, true
		}
		before = now
	}
	return 0, false
}
