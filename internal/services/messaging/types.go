package messaging

import (
	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/night"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
)

// TimeFormat is how event timestamps are shown
const TimeFormat = "15:04:05"

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Shuffler picks among message variants, nil means time-seeded
	Shuffler shuffle.Shuffler
}

// DescribeEventInput contains the event and the players to name
type DescribeEventInput struct {
	Event  *models.Event
	Roster *history.Roster
}

// DescribeEventOutput contains the rendered log line
type DescribeEventOutput struct {
	// Time is the event timestamp formatted with TimeFormat
	Time string

	// Description is the human readable line
	Description string
}

type DescribeEliminationInput struct {
	PlayerName  string
	Elimination models.Elimination
}

type DescribeEliminationOutput struct {
	// Reason is e.g. "killed by the mafia on night 2"
	Reason string

	// Message includes the player name
	Message string
}

type GetPhaseLabelInput struct {
	Phase models.Phase
}

type GetPhaseLabelOutput struct {
	Label string
}

// GetNightPhaseMessageInput describes the phase to narrate
type GetNightPhaseMessageInput struct {
	Phase        models.NightPhaseKind
	Leader       *night.Leader
	Holder       *models.Player
	CanNegotiate bool
}

type GetNightPhaseMessageOutput struct {
	Title       string
	Narration   string
	Instruction string
}

type GetTrialResultMessageInput struct {
	Result *models.TrialResult
	Roster *history.Roster
}

type GetTrialResultMessageOutput struct {
	Title   string
	Message string
}

type GetVictoryMessageInput struct {
	Victory models.Victory
}

type GetVictoryMessageOutput struct {
	Title   string
	Message string
}

type GetErrorMessageInput struct {
	Err error
}

type GetErrorMessageOutput struct {
	Title   string
	Message string
}
