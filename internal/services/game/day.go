package game

import (
	"context"
	"errors"
	"strconv"

	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/state"
	"github.com/KirkDiggler/mafiagod/internal/trial"
)

// Event field keys written by day operations
const (
	FieldOutcome  = "outcome"
	FieldRequired = "required"
)

// SetPhase moves the viewed day to another phase
func (s *service) SetPhase(ctx context.Context, input *SetPhaseInput) (*SetPhaseOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	switch input.Phase {
	case models.PhaseDiscussion, models.PhaseVoting, models.PhaseTrial, models.PhaseNight:
	default:
		return nil, ErrInvalidPhase
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if input.Phase == models.PhaseNight && s.evaluate(store).IsOver() {
			return false, ErrGameOver
		}
		if store.CurrentDay().Phase == input.Phase {
			return false, nil
		}
		return store.SetPhase(input.Phase), nil
	})
	if err != nil {
		return nil, err
	}

	return &SetPhaseOutput{DayResult: result}, nil
}

func validVotes(store *state.Store, votes models.VoteMap) error {
	for id, count := range votes {
		if err := validPlayer(store, id); err != nil {
			return err
		}
		if count < 0 {
			return ErrInvalidVoteCount
		}
	}
	return nil
}

// SaveVotes replaces the open votes of the day
func (s *service) SaveVotes(ctx context.Context, input *SaveVotesInput) (*SaveVotesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if err := validVotes(store, input.Votes); err != nil {
			return false, err
		}
		return store.Update(func(day *models.Day) {
			previous := day.Votes
			day.Votes = input.Votes.Clone()
			for _, id := range changedIDs(previous, day.Votes) {
				store.AddEvent(&models.Event{
					Type:     models.EventTypeVote,
					PlayerID: models.IntPtr(id),
					Count:    models.IntPtr(day.Votes.Get(id)),
				})
			}
		}), nil
	})
	if err != nil {
		return nil, err
	}

	alive := store.Roster().Alive
	return &SaveVotesOutput{
		DayResult:  result,
		Candidates: trial.Candidates(alive, result.Day.Votes),
		Required:   trial.RequiredVotes(len(alive)),
	}, nil
}

// SaveTrialVotes replaces the final votes of the day
func (s *service) SaveTrialVotes(ctx context.Context, input *SaveTrialVotesInput) (*SaveTrialVotesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if err := validVotes(store, input.TrialVotes); err != nil {
			return false, err
		}
		return store.Update(func(day *models.Day) {
			previous := day.TrialVotes
			day.TrialVotes = input.TrialVotes.Clone()
			for _, id := range changedIDs(previous, day.TrialVotes) {
				store.AddEvent(&models.Event{
					Type:     models.EventTypeTrialVote,
					PlayerID: models.IntPtr(id),
					Count:    models.IntPtr(day.TrialVotes.Get(id)),
				})
			}
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &SaveTrialVotesOutput{DayResult: result}, nil
}

// changedIDs lists the entries of next that differ from prev, ascending
func changedIDs(prev, next models.VoteMap) []int {
	set := models.IDSet{}
	for id, count := range next {
		if !prev.Has(id) || prev.Get(id) != count {
			set.Add(id)
		}
	}
	return set.IDs()
}

// ResetVotes clears the open votes
func (s *service) ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		return store.Update(func(day *models.Day) {
			day.Votes = models.VoteMap{}
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &ResetVotesOutput{DayResult: result}, nil
}

// ResetTrialVotes clears the final votes and the trial result
func (s *service) ResetTrialVotes(ctx context.Context, input *ResetTrialVotesInput) (*ResetTrialVotesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		return store.Update(func(day *models.Day) {
			day.TrialVotes = models.VoteMap{}
			day.TrialResult = nil
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &ResetTrialVotesOutput{DayResult: result}, nil
}

// ResetChallenges clears the challenge bookkeeping of the day
func (s *service) ResetChallenges(ctx context.Context, input *ResetChallengesInput) (*ResetChallengesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		return store.Update(func(day *models.Day) {
			day.Challenges = models.VoteMap{}
			day.ChallengeGivers = map[int][]string{}
			day.PlayersWhoGaveChallenges = models.IDSet{}
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &ResetChallengesOutput{DayResult: result}, nil
}

// SetMaxChallenges changes the per-player challenge limit of the day
func (s *service) SetMaxChallenges(ctx context.Context, input *SetMaxChallengesInput) (*SetMaxChallengesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	if input.MaxChallenges < 1 {
		return nil, ErrInvalidMaxChallenges
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		return store.Update(func(day *models.Day) {
			day.MaxChallenges = input.MaxChallenges
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &SetMaxChallengesOutput{DayResult: result}, nil
}

// alivePlayer loads a player who must be alive as of the viewed day
func alivePlayer(store *state.Store, id int) (*models.Player, error) {
	if err := validPlayer(store, id); err != nil {
		return nil, err
	}
	roster := store.Roster()
	if !roster.IsAlive(id) {
		return nil, ErrPlayerEliminated
	}
	return roster.Find(id), nil
}

// RecordSpeaking marks that a player had their turn. A repeat turn changes nothing.
func (s *service) RecordSpeaking(ctx context.Context, input *RecordSpeakingInput) (*RecordSpeakingOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if _, err := alivePlayer(store, input.PlayerID); err != nil {
			return false, err
		}
		if store.CurrentDay().PlayersWhoSpoke.Has(input.PlayerID) {
			return false, nil
		}
		return store.Update(func(day *models.Day) {
			day.PlayersWhoSpoke.Add(input.PlayerID)
			store.AddEvent(&models.Event{
				Type:     models.EventTypeSpeaking,
				PlayerID: models.IntPtr(input.PlayerID),
			})
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &RecordSpeakingOutput{DayResult: result}, nil
}

// RecordChallenge records a challenge. The challengee's count goes up, the
// challenger's name joins their givers and the challenger is marked. Each
// player gives at most one challenge per day.
func (s *service) RecordChallenge(ctx context.Context, input *RecordChallengeInput) (*RecordChallengeOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	if input.ChallengerID == input.ChallengeeID {
		return nil, ErrSelfChallenge
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		challenger, err := alivePlayer(store, input.ChallengerID)
		if err != nil {
			return false, err
		}
		if _, err := alivePlayer(store, input.ChallengeeID); err != nil {
			return false, err
		}

		day := store.CurrentDay()
		if !day.IsReadOnly {
			if day.PlayersWhoGaveChallenges.Has(input.ChallengerID) {
				return false, ErrAlreadyChallenged
			}
			if day.Challenges.Get(input.ChallengeeID) >= day.MaxChallenges {
				return false, ErrChallengeLimitReached
			}
		}

		return store.Update(func(day *models.Day) {
			day.Challenges[input.ChallengeeID]++
			day.ChallengeGivers[input.ChallengeeID] = append(day.ChallengeGivers[input.ChallengeeID], challenger.Name)
			day.PlayersWhoGaveChallenges.Add(input.ChallengerID)
			store.AddEvent(&models.Event{
				Type:     models.EventTypeChallenge,
				PlayerID: models.IntPtr(input.ChallengerID),
				TargetID: models.IntPtr(input.ChallengeeID),
			})
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &RecordChallengeOutput{
		DayResult: result,
		Received:  result.Day.Challenges.Get(input.ChallengeeID),
	}, nil
}

// EliminatePlayer removes a player by moderator decision
func (s *service) EliminatePlayer(ctx context.Context, input *EliminatePlayerInput) (*EliminatePlayerOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	reason := input.Reason
	if reason == "" {
		reason = models.EliminationReasonManual
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if err := validPlayer(store, input.PlayerID); err != nil {
			return false, err
		}
		return store.Eliminate(input.PlayerID, reason), nil
	})
	if err != nil {
		return nil, err
	}

	return &EliminatePlayerOutput{DayResult: result}, nil
}

// RevivePlayer brings a player back
func (s *service) RevivePlayer(ctx context.Context, input *RevivePlayerInput) (*RevivePlayerOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if err := validPlayer(store, input.PlayerID); err != nil {
			return false, err
		}
		return store.Revive(input.PlayerID), nil
	})
	if err != nil {
		return nil, err
	}

	return &RevivePlayerOutput{DayResult: result}, nil
}

// ProcessTrialResults resolves the trial of the viewed day. A conviction
// eliminates the player with reason trial.
func (s *service) ProcessTrialResults(ctx context.Context, input *ProcessTrialResultsInput) (*ProcessTrialResultsOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	var resolved *models.TrialResult
	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		day := store.CurrentDay()
		if day.IsReadOnly {
			return false, nil
		}

		alive := store.Roster().Alive
		resolved = trial.Resolve(trial.Candidates(alive, day.Votes), day.TrialVotes, len(alive))

		if resolved.Outcome == models.TrialOutcomeElimination && resolved.EliminatedID != nil {
			store.Eliminate(*resolved.EliminatedID, models.EliminationReasonTrial)
		}

		return store.Update(func(day *models.Day) {
			day.TrialResult = resolved
			event := &models.Event{
				Type:   models.EventTypeTrialResult,
				Count:  models.IntPtr(resolved.MaxVotes),
				Fields: map[string]string{FieldOutcome: string(resolved.Outcome), FieldRequired: strconv.Itoa(resolved.Required)},
			}
			if resolved.EliminatedID != nil {
				event.PlayerID = models.IntPtr(*resolved.EliminatedID)
			}
			store.AddEvent(event)
		}), nil
	})
	if err != nil {
		return nil, err
	}

	if resolved != nil {
		s.logger.Info().
			Str("session_id", input.SessionID).
			Str("outcome", string(resolved.Outcome)).
			Msg("Trial processed")
	}

	return &ProcessTrialResultsOutput{DayResult: result, Result: resolved}, nil
}

// StartNextDay freezes the active day and opens the next one
func (s *service) StartNextDay(ctx context.Context, input *StartNextDayInput) (*StartNextDayOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if s.evaluate(store).IsOver() {
			return false, ErrGameOver
		}
		store.Session().Night = nil
		store.StartNextDay()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return &StartNextDayOutput{DayResult: result}, nil
}

// FinishCurrentDay freezes the active day without opening another
func (s *service) FinishCurrentDay(ctx context.Context, input *FinishCurrentDayInput) (*FinishCurrentDayOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	_, result, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		return store.FinishCurrentDay(), nil
	})
	if err != nil {
		return nil, err
	}

	return &FinishCurrentDayOutput{DayResult: result}, nil
}

// SwitchToDay changes the day being viewed
func (s *service) SwitchToDay(ctx context.Context, input *SwitchToDayInput) (*SwitchToDayOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, _, err := s.mutate(ctx, input.SessionID, func(store *state.Store) (bool, error) {
		if err := store.SwitchToDay(input.Day); err != nil {
			if errors.Is(err, state.ErrDayNotFound) {
				return false, ErrDayNotFound
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return &SwitchToDayOutput{
		Day:      store.CurrentDay(),
		IsActive: store.IsViewingActive(),
	}, nil
}
