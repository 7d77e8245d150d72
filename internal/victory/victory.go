// Package victory decides whether either side has won.
package victory

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/roles"
)

// Check returns citizens_win when the mafia is wiped out, mafia_win when the
// living mafia match or outnumber the living citizens, ongoing otherwise
func Check(aliveMafia, aliveCitizens, totalMafia int) models.Victory {
	if aliveMafia == 0 && totalMafia > 0 {
		return models.VictoryCitizensWin
	}
	if aliveMafia > 0 && aliveMafia >= aliveCitizens {
		return models.VictoryMafiaWin
	}
	return models.VictoryOngoing
}

// Tally counts factions in a roster
type Tally struct {
	AliveMafia    int
	AliveCitizens int
	TotalMafia    int
}

// Count tallies the factions of a roster
func Count(roster *history.Roster) Tally {
	var t Tally
	for _, p := range roster.All {
		if roles.IsMafia(p.Role) {
			t.TotalMafia++
		}
	}
	for _, p := range roster.Alive {
		if roles.IsMafia(p.Role) {
			t.AliveMafia++
		} else {
			t.AliveCitizens++
		}
	}
	return t
}

// Checker evaluates rosters and logs when a side wins
type Checker struct {
	logger zerolog.Logger
}

// NewChecker creates a new victory checker
func NewChecker(logger zerolog.Logger) *Checker {
	return &Checker{
		logger: logger.With().Str("component", "VictoryChecker").Logger(),
	}
}

// Evaluate counts the roster and applies Check
func (c *Checker) Evaluate(roster *history.Roster) models.Victory {
	t := Count(roster)
	v := Check(t.AliveMafia, t.AliveCitizens, t.TotalMafia)

	c.logger.Debug().
		Int("alive_mafia", t.AliveMafia).
		Int("alive_citizens", t.AliveCitizens).
		Int("total_mafia", t.TotalMafia).
		Str("victory", string(v)).
		Msg("Victory check complete")

	if v.IsOver() {
		c.logger.Info().Str("victory", string(v)).Msg("Winner determined")
	}
	return v
}
