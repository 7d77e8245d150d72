// Package trial decides who goes on trial and how a trial ends.
package trial

import (
	"sort"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

// RequiredVotes is the vote threshold for the given number of living players.
// It applies to the open votes that put someone on trial and to the final
// votes that convict a single candidate.
func RequiredVotes(alive int) int {
	switch {
	case alive >= 12:
		return 6
	case alive >= 10:
		return 5
	case alive >= 8:
		return 4
	case alive >= 6:
		return 3
	case alive >= 4:
		return 2
	default:
		return 1
	}
}

// Candidates returns the living players whose open votes reach the threshold,
// in the order of alive
func Candidates(alive []*models.Player, votes models.VoteMap) []*models.Player {
	required := RequiredVotes(len(alive))
	out := make([]*models.Player, 0)
	for _, p := range alive {
		if votes.Get(p.ID) >= required {
			out = append(out, p)
		}
	}
	return out
}

// Resolve computes the trial outcome. A single candidate needs the threshold
// to be convicted, while among several candidates the sole highest count is
// convicted regardless of it. Shared maximums are never broken.
func Resolve(candidates []*models.Player, trialVotes models.VoteMap, aliveCount int) *models.TrialResult {
	result := &models.TrialResult{
		Candidates: make([]int, 0, len(candidates)),
		Required:   RequiredVotes(aliveCount),
	}
	for _, c := range candidates {
		result.Candidates = append(result.Candidates, c.ID)
	}

	if len(candidates) == 0 {
		result.Outcome = models.TrialOutcomeNoCandidates
		return result
	}

	for _, c := range candidates {
		if !trialVotes.Has(c.ID) {
			result.Missing = append(result.Missing, c.ID)
		}
	}
	if len(result.Missing) > 0 {
		sort.Ints(result.Missing)
		result.Outcome = models.TrialOutcomeIncompleteVoting
		return result
	}

	if len(candidates) == 1 {
		id := candidates[0].ID
		result.MaxVotes = trialVotes.Get(id)
		if result.MaxVotes >= result.Required {
			result.Outcome = models.TrialOutcomeElimination
			result.EliminatedID = models.IntPtr(id)
		} else {
			result.Outcome = models.TrialOutcomeAcquittal
		}
		return result
	}

	var top []int
	for _, c := range candidates {
		v := trialVotes.Get(c.ID)
		switch {
		case top == nil || v > result.MaxVotes:
			result.MaxVotes = v
			top = []int{c.ID}
		case v == result.MaxVotes:
			top = append(top, c.ID)
		}
	}

	if len(top) == 1 {
		result.Outcome = models.TrialOutcomeElimination
		result.EliminatedID = models.IntPtr(top[0])
		return result
	}

	sort.Ints(top)
	result.Outcome = models.TrialOutcomeTie
	result.TiedIDs = top
	return result
}

// AvailableChallengees lists the living players that challenger may still
// challenge: not themselves and below the per-day limit.
func AvailableChallengees(challenger int, alive []*models.Player, challenges models.VoteMap, max int) []*models.Player {
	out := make([]*models.Player, 0, len(alive))
	for _, p := range alive {
		if p.ID == challenger {
			continue
		}
		if challenges.Get(p.ID) >= max {
			continue
		}
		out = append(out, p)
	}
	return out
}
