package night

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/models"
	rules "github.com/KirkDiggler/mafiagod/internal/night"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
)

// Inquiry results recorded for the reporter
const (
	ResultNegotiated    = "negotiated"
	ResultNotNegotiated = "not_negotiated"
)

// Event field keys written by night actions
const (
	FieldPhase   = "phase"
	FieldAction  = "action"
	FieldResult  = "result"
	FieldTargets = "targets"
)

// Config holds configuration for the night service
type Config struct {
	// MaxChallenges is the per-player challenge limit of new days, 0 means the default
	MaxChallenges int

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        zerolog.Logger
}

// View is what the moderator sees during the night
type View struct {
	// Night is the sequencer state
	Night *models.NightState

	// Phase is the current phase, nil once every phase is done
	Phase *models.NightPhase

	// Holder is the living player acting in a citizen phase, nil otherwise
	Holder *models.Player

	// Targets are the players selectable in the current phase
	Targets []*models.Player

	// Leader directs the mafia, nil when no mafia is alive
	Leader *rules.Leader

	// CanNegotiate is true when the negotiate action is available
	CanNegotiate bool

	// Victory is evaluated as of the night's day
	Victory models.Victory
}

type BeginNightInput struct {
	SessionID string
}

type BeginNightOutput struct {
	View
}

type GetNightInput struct {
	SessionID string
}

type GetNightOutput struct {
	View
}

// SelectTargetInput toggles PlayerID in the selection
type SelectTargetInput struct {
	SessionID string
	PlayerID  int
}

type SelectTargetOutput struct {
	View
}

// SetMafiaActionInput picks kill or negotiate for the mafia phase
type SetMafiaActionInput struct {
	SessionID string
	Action    models.NightAction
}

type SetMafiaActionOutput struct {
	View
}

type ConfirmActionInput struct {
	SessionID string
}

// ConfirmActionOutput contains the applied action and the next phase
type ConfirmActionOutput struct {
	View
	Record *models.NightActionRecord
}

type SkipPhaseInput struct {
	SessionID string
}

type SkipPhaseOutput struct {
	View
	Record *models.NightActionRecord
}

type CompleteNightInput struct {
	SessionID string
}

// CompleteNightOutput tells whether a new day started or the game ended
type CompleteNightOutput struct {
	Victory models.Victory

	// Actions are every confirmed or skipped phase of the night
	Actions []models.NightActionRecord

	// NextDay is the new discussion day, nil when the game is over
	NextDay *models.Day
}
