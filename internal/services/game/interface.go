package game

import "context"

// Service defines the moderator operations of a game
type Service interface {
	// StartGame shuffles the roles for a new table and opens day one
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// SelectPlayer marks a slot as the one being named
	SelectPlayer(ctx context.Context, input *SelectPlayerInput) (*SelectPlayerOutput, error)

	// ConfirmPlayer names a slot and reveals its role
	ConfirmPlayer(ctx context.Context, input *ConfirmPlayerInput) (*ConfirmPlayerOutput, error)

	// ResetGame discards the session
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// GetGodView lists every role by faction
	GetGodView(ctx context.Context, input *GetGodViewInput) (*GetGodViewOutput, error)

	// SetPhase moves the viewed day to another phase
	SetPhase(ctx context.Context, input *SetPhaseInput) (*SetPhaseOutput, error)

	// SaveVotes replaces the open votes of the day
	SaveVotes(ctx context.Context, input *SaveVotesInput) (*SaveVotesOutput, error)

	// SaveTrialVotes replaces the final votes of the day
	SaveTrialVotes(ctx context.Context, input *SaveTrialVotesInput) (*SaveTrialVotesOutput, error)

	// ResetVotes clears the open votes
	ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error)

	// ResetTrialVotes clears the final votes and the trial result
	ResetTrialVotes(ctx context.Context, input *ResetTrialVotesInput) (*ResetTrialVotesOutput, error)

	// ResetChallenges clears the challenge bookkeeping
	ResetChallenges(ctx context.Context, input *ResetChallengesInput) (*ResetChallengesOutput, error)

	// SetMaxChallenges changes the per-player challenge limit of the day
	SetMaxChallenges(ctx context.Context, input *SetMaxChallengesInput) (*SetMaxChallengesOutput, error)

	// RecordSpeaking marks that a player had their turn
	RecordSpeaking(ctx context.Context, input *RecordSpeakingInput) (*RecordSpeakingOutput, error)

	// RecordChallenge records a challenge from one player to another
	RecordChallenge(ctx context.Context, input *RecordChallengeInput) (*RecordChallengeOutput, error)

	// EliminatePlayer removes a player by moderator decision
	EliminatePlayer(ctx context.Context, input *EliminatePlayerInput) (*EliminatePlayerOutput, error)

	// RevivePlayer brings a player back
	RevivePlayer(ctx context.Context, input *RevivePlayerInput) (*RevivePlayerOutput, error)

	// ProcessTrialResults resolves the trial and applies a conviction
	ProcessTrialResults(ctx context.Context, input *ProcessTrialResultsInput) (*ProcessTrialResultsOutput, error)

	// StartNextDay freezes the active day and opens the next one
	StartNextDay(ctx context.Context, input *StartNextDayInput) (*StartNextDayOutput, error)

	// FinishCurrentDay freezes the active day without opening another
	FinishCurrentDay(ctx context.Context, input *FinishCurrentDayInput) (*FinishCurrentDayOutput, error)

	// SwitchToDay changes the day being viewed
	SwitchToDay(ctx context.Context, input *SwitchToDayInput) (*SwitchToDayOutput, error)

	// GetCurrentDay returns the viewed day
	GetCurrentDay(ctx context.Context, input *GetCurrentDayInput) (*GetCurrentDayOutput, error)

	// GetRoster returns the players as of the viewed day
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// GetTrialCandidates returns who currently qualifies for trial
	GetTrialCandidates(ctx context.Context, input *GetTrialCandidatesInput) (*GetTrialCandidatesOutput, error)

	// GetAvailableChallengees returns who a player may still challenge
	GetAvailableChallengees(ctx context.Context, input *GetAvailableChallengeesInput) (*GetAvailableChallengeesOutput, error)

	// GetVictory evaluates the game as of the active day
	GetVictory(ctx context.Context, input *GetVictoryInput) (*GetVictoryOutput, error)

	// ListDays summarizes every day of the game
	ListDays(ctx context.Context, input *ListDaysInput) (*ListDaysOutput, error)

	// GetDayEvents returns the event log of a day
	GetDayEvents(ctx context.Context, input *GetDayEventsInput) (*GetDayEventsOutput, error)

	// GetEliminationDay returns the day a player was eliminated
	GetEliminationDay(ctx context.Context, input *GetEliminationDayInput) (*GetEliminationDayOutput, error)
}
