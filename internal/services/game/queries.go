package game

import (
	"context"

	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/trial"
)

// GetCurrentDay returns the viewed day
func (s *service) GetCurrentDay(ctx context.Context, input *GetCurrentDayInput) (*GetCurrentDayOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetCurrentDayOutput{
		Day:       store.CurrentDay(),
		ActiveDay: store.Session().ActiveDay,
		IsActive:  store.IsViewingActive(),
	}, nil
}

// GetRoster returns the players as of the viewed day
func (s *service) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetRosterOutput{
		Roster:       store.Roster(),
		Eliminations: store.EliminationsUpToDay(store.Session().ViewDay),
	}, nil
}

// GetTrialCandidates returns who currently qualifies for trial
func (s *service) GetTrialCandidates(ctx context.Context, input *GetTrialCandidatesInput) (*GetTrialCandidatesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	alive := store.Roster().Alive
	return &GetTrialCandidatesOutput{
		Candidates: trial.Candidates(alive, store.CurrentDay().Votes),
		Required:   trial.RequiredVotes(len(alive)),
	}, nil
}

// GetAvailableChallengees returns who a player may still challenge
func (s *service) GetAvailableChallengees(ctx context.Context, input *GetAvailableChallengeesInput) (*GetAvailableChallengeesOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := validPlayer(store, input.ChallengerID); err != nil {
		return nil, err
	}

	day := store.CurrentDay()
	if day.PlayersWhoGaveChallenges.Has(input.ChallengerID) {
		return &GetAvailableChallengeesOutput{Players: []*models.Player{}}, nil
	}

	return &GetAvailableChallengeesOutput{
		Players: trial.AvailableChallengees(input.ChallengerID, store.Roster().Alive, day.Challenges, day.MaxChallenges),
	}, nil
}

// GetVictory evaluates the game as of the active day
func (s *service) GetVictory(ctx context.Context, input *GetVictoryInput) (*GetVictoryOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetVictoryOutput{Victory: s.evaluate(store)}, nil
}

// ListDays summarizes every day of the game
func (s *service) ListDays(ctx context.Context, input *ListDaysInput) (*ListDaysOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session := store.Session()
	output := &ListDaysOutput{Days: make([]*DaySummary, 0, len(session.Days))}
	for _, n := range session.DayNumbers() {
		day := session.Days[n]
		output.Days = append(output.Days, &DaySummary{
			Number:       n,
			Phase:        day.Phase,
			IsReadOnly:   day.IsReadOnly,
			IsActive:     n == session.ActiveDay,
			IsViewed:     n == session.ViewDay,
			Eliminations: countEliminations(day.Eliminated),
			Events:       len(day.Events),
		})
	}

	return output, nil
}

func countEliminations(entries map[int]models.Elimination) int {
	n := 0
	for _, e := range entries {
		if !e.Revived {
			n++
		}
	}
	return n
}

// GetDayEvents returns the event log of a day
func (s *service) GetDayEvents(ctx context.Context, input *GetDayEventsInput) (*GetDayEventsOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	n := input.Day
	if n == 0 {
		n = store.Session().ViewDay
	}

	day, ok := store.Session().Days[n]
	if !ok {
		return nil, ErrDayNotFound
	}

	return &GetDayEventsOutput{Day: n, Events: day.Events}, nil
}

// GetEliminationDay returns the day a player was eliminated, scanning up to the viewed day
func (s *service) GetEliminationDay(ctx context.Context, input *GetEliminationDayInput) (*GetEliminationDayOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := validPlayer(store, input.PlayerID); err != nil {
		return nil, err
	}

	session := store.Session()
	day, found := history.EliminationDayOf(session.Days, input.PlayerID, session.ViewDay)
	output := &GetEliminationDayOutput{Day: day, Found: found}
	if found {
		output.Elimination = session.Days[day].Eliminated[input.PlayerID]
	}

	return output, nil
}
