package night

import "context"

// Service runs the night sequence of the active day
type Service interface {
	// BeginNight moves the active day into the night and fixes the phase list
	BeginNight(ctx context.Context, input *BeginNightInput) (*BeginNightOutput, error)

	// GetNight returns the current phase and its targets
	GetNight(ctx context.Context, input *GetNightInput) (*GetNightOutput, error)

	// SelectTarget toggles a player in the current selection
	SelectTarget(ctx context.Context, input *SelectTargetInput) (*SelectTargetOutput, error)

	// SetMafiaAction switches the mafia between killing and negotiating
	SetMafiaAction(ctx context.Context, input *SetMafiaActionInput) (*SetMafiaActionOutput, error)

	// ConfirmAction applies the current selection and advances
	ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error)

	// SkipPhase records a no-op for the current phase and advances
	SkipPhase(ctx context.Context, input *SkipPhaseInput) (*SkipPhaseOutput, error)

	// CompleteNight ends the night once every phase is done
	CompleteNight(ctx context.Context, input *CompleteNightInput) (*CompleteNightOutput, error)
}
