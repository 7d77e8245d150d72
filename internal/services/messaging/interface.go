package messaging

import "context"

// Service builds the moderator-facing text of the game
type Service interface {
	// DescribeEvent renders one entry of a day log
	DescribeEvent(ctx context.Context, input *DescribeEventInput) (*DescribeEventOutput, error)

	// DescribeElimination explains why a player is out
	DescribeElimination(ctx context.Context, input *DescribeEliminationInput) (*DescribeEliminationOutput, error)

	// GetPhaseLabel returns the display name of a day phase
	GetPhaseLabel(ctx context.Context, input *GetPhaseLabelInput) (*GetPhaseLabelOutput, error)

	// GetNightPhaseMessage returns the narration the moderator reads for a night phase
	GetNightPhaseMessage(ctx context.Context, input *GetNightPhaseMessageInput) (*GetNightPhaseMessageOutput, error)

	// GetTrialResultMessage explains a processed trial
	GetTrialResultMessage(ctx context.Context, input *GetTrialResultMessageInput) (*GetTrialResultMessageOutput, error)

	// GetVictoryMessage announces the end of the game
	GetVictoryMessage(ctx context.Context, input *GetVictoryMessageInput) (*GetVictoryMessageOutput, error)

	// GetErrorMessage returns a moderator-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
