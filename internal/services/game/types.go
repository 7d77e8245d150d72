package game

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
)

// Config holds configuration for the game service
type Config struct {
	// MaxChallenges is the per-player challenge limit of new days, 0 means the default
	MaxChallenges int

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Shuffler      shuffle.Shuffler
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        zerolog.Logger
}

// DayResult is shared by the outputs of day mutators
type DayResult struct {
	// Applied is false when nothing changed, such as on a read-only viewed day
	Applied bool

	// Day is the viewed day after the operation
	Day *models.Day

	// Victory is evaluated after the operation
	Victory models.Victory
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	// SessionID identifies the moderator's session
	SessionID string

	// PlayerCount is between 7 and 14
	PlayerCount int
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	Session *models.Session
}

// SelectPlayerInput contains parameters for selecting a slot
type SelectPlayerInput struct {
	SessionID string
	SlotIndex int
}

// SelectPlayerOutput contains the result of selecting a slot
type SelectPlayerOutput struct {
	// Pending is true when the slot now waits for a name
	Pending bool

	// AlreadyAssigned is true when the slot was named before
	AlreadyAssigned bool
}

// ConfirmPlayerInput contains parameters for naming a slot
type ConfirmPlayerInput struct {
	SessionID string
	SlotIndex int
	Name      string
}

// ConfirmPlayerOutput contains the revealed role
type ConfirmPlayerOutput struct {
	Player *models.Player
	Role   models.Role

	// Remaining is how many slots still need a name
	Remaining int
}

// ResetGameInput contains parameters for discarding a game
type ResetGameInput struct {
	SessionID string
}

// ResetGameOutput contains the result of discarding a game
type ResetGameOutput struct {
	Success bool
}

// GodViewEntry is one line of the moderator's role overview
type GodViewEntry struct {
	Player *models.Player
	Role   models.Role
	Alive  bool
}

// GetGodViewInput contains parameters for the role overview
type GetGodViewInput struct {
	SessionID string
}

// GetGodViewOutput lists each faction by role priority
type GetGodViewOutput struct {
	Mafia    []*GodViewEntry
	Citizens []*GodViewEntry
}

// SetPhaseInput contains parameters for changing phase
type SetPhaseInput struct {
	SessionID string
	Phase     models.Phase
}

// SetPhaseOutput contains the result of changing phase
type SetPhaseOutput struct {
	DayResult
}

// SaveVotesInput contains the open votes of the day
type SaveVotesInput struct {
	SessionID string
	Votes     models.VoteMap
}

// SaveVotesOutput contains the saved votes and who now qualifies for trial
type SaveVotesOutput struct {
	DayResult
	Candidates []*models.Player
	Required   int
}

// SaveTrialVotesInput contains the final votes of the day
type SaveTrialVotesInput struct {
	SessionID  string
	TrialVotes models.VoteMap
}

// SaveTrialVotesOutput contains the result of saving final votes
type SaveTrialVotesOutput struct {
	DayResult
}

type ResetVotesInput struct {
	SessionID string
}

type ResetVotesOutput struct {
	DayResult
}

type ResetTrialVotesInput struct {
	SessionID string
}

type ResetTrialVotesOutput struct {
	DayResult
}

type ResetChallengesInput struct {
	SessionID string
}

type ResetChallengesOutput struct {
	DayResult
}

// SetMaxChallengesInput contains the new challenge limit
type SetMaxChallengesInput struct {
	SessionID     string
	MaxChallenges int
}

type SetMaxChallengesOutput struct {
	DayResult
}

// RecordSpeakingInput contains the player who finished speaking
type RecordSpeakingInput struct {
	SessionID string
	PlayerID  int
}

type RecordSpeakingOutput struct {
	DayResult
}

// RecordChallengeInput contains both sides of a challenge
type RecordChallengeInput struct {
	SessionID    string
	ChallengerID int
	ChallengeeID int
}

type RecordChallengeOutput struct {
	DayResult

	// Received is how many challenges the challengee has now
	Received int
}

// EliminatePlayerInput contains the player to remove
type EliminatePlayerInput struct {
	SessionID string
	PlayerID  int

	// Reason defaults to manual
	Reason models.EliminationReason
}

type EliminatePlayerOutput struct {
	DayResult
}

// RevivePlayerInput contains the player to bring back
type RevivePlayerInput struct {
	SessionID string
	PlayerID  int
}

type RevivePlayerOutput struct {
	DayResult
}

type ProcessTrialResultsInput struct {
	SessionID string
}

// ProcessTrialResultsOutput contains the trial outcome
type ProcessTrialResultsOutput struct {
	DayResult
	Result *models.TrialResult
}

type StartNextDayInput struct {
	SessionID string
}

type StartNextDayOutput struct {
	DayResult
}

type FinishCurrentDayInput struct {
	SessionID string
}

type FinishCurrentDayOutput struct {
	DayResult
}

// SwitchToDayInput contains the day to view
type SwitchToDayInput struct {
	SessionID string
	Day       int
}

type SwitchToDayOutput struct {
	Day *models.Day

	// IsActive is false when inspecting history
	IsActive bool
}

type GetCurrentDayInput struct {
	SessionID string
}

type GetCurrentDayOutput struct {
	Day       *models.Day
	ActiveDay int
	IsActive  bool
}

type GetRosterInput struct {
	SessionID string
}

// GetRosterOutput contains the players as of the viewed day
type GetRosterOutput struct {
	Roster *history.Roster

	// Eliminations is the cumulative elimination view of the viewed day
	Eliminations map[int]models.Elimination
}

type GetTrialCandidatesInput struct {
	SessionID string
}

type GetTrialCandidatesOutput struct {
	Candidates []*models.Player
	Required   int
}

type GetAvailableChallengeesInput struct {
	SessionID    string
	ChallengerID int
}

type GetAvailableChallengeesOutput struct {
	Players []*models.Player
}

type GetVictoryInput struct {
	SessionID string
}

type GetVictoryOutput struct {
	Victory models.Victory
}

type ListDaysInput struct {
	SessionID string
}

// DaySummary is one line of the day list
type DaySummary struct {
	Number       int
	Phase        models.Phase
	IsReadOnly   bool
	IsActive     bool
	IsViewed     bool
	Eliminations int
	Events       int
}

type ListDaysOutput struct {
	Days []*DaySummary
}

// GetDayEventsInput selects a day, zero means the viewed day
type GetDayEventsInput struct {
	SessionID string
	Day       int
}

type GetDayEventsOutput struct {
	Day    int
	Events []*models.Event
}

type GetEliminationDayInput struct {
	SessionID string
	PlayerID  int
}

type GetEliminationDayOutput struct {
	Day   int
	Found bool

	// Elimination is the record that removed the player, set when Found
	Elimination models.Elimination
}
