package models

// TrialOutcome is the result kind of a processed trial
type TrialOutcome string

const (
	// TrialOutcomeNoCandidates means nobody reached the vote threshold
	TrialOutcomeNoCandidates TrialOutcome = "no_candidates"

	// TrialOutcomeIncompleteVoting means some candidate has no final votes yet
	TrialOutcomeIncompleteVoting TrialOutcome = "incomplete_voting"

	// TrialOutcomeElimination means a candidate was convicted
	TrialOutcomeElimination TrialOutcome = "elimination"

	// TrialOutcomeAcquittal means the single candidate was acquitted
	TrialOutcomeAcquittal TrialOutcome = "acquittal"

	// TrialOutcomeTie means several candidates share the highest count and the moderator decides
	TrialOutcomeTie TrialOutcome = "tie_for_elimination"
)

// TrialResult records the outcome of a trial
type TrialResult struct {
	// Outcome is the result kind
	Outcome TrialOutcome

	// Candidates are the players that were on trial
	Candidates []int

	// EliminatedID is set when Outcome is elimination
	EliminatedID *int

	// TiedIDs lists the candidates sharing the highest count on a tie
	TiedIDs []int

	// MaxVotes is the highest final vote count among candidates
	MaxVotes int

	// Required is the vote threshold that applied
	Required int

	// Missing lists candidates without final votes on incomplete voting
	Missing []int
}
