package models

// NightPhaseKind identifies who wakes up in a night phase
type NightPhaseKind string

const (
	NightPhaseMafia       NightPhaseKind = "mafia"
	NightPhaseDetective   NightPhaseKind = "detective"
	NightPhaseReporter    NightPhaseKind = "reporter"
	NightPhaseSniper      NightPhaseKind = "sniper"
	NightPhaseDoctor      NightPhaseKind = "doctor"
	NightPhaseConstantine NightPhaseKind = "constantine"
)

// NightPhase is one step in the night sequence
type NightPhase struct {
	// Kind is who wakes up
	Kind NightPhaseKind

	// Action is the default action of the phase
	Action NightAction

	// MaxTargets is how many players may be selected
	MaxTargets int
}

// NightActionRecord is what the moderator confirmed for a phase
type NightActionRecord struct {
	// Phase is the phase the action belongs to
	Phase NightPhaseKind

	// Action is the action taken, or skip
	Action NightAction

	// TargetIDs are the chosen players
	TargetIDs []int

	// Result is the informational answer for inquiries (faction, negotiated or not)
	Result string
}

// NightState tracks the sequencer between moderator actions
type NightState struct {
	// Day is the day whose night this is
	Day int

	// Phases is fixed when the night begins
	Phases []NightPhase

	// Current indexes into Phases
	Current int

	// Selected holds the current selection in pick order
	Selected []int

	// MafiaAction is kill unless the moderator switched to negotiate
	MafiaAction NightAction

	// Actions are the confirmed or skipped phases in order
	Actions []NightActionRecord

	// Complete is set once the last phase is confirmed or skipped
	Complete bool
}

// CurrentPhase returns the active phase, nil when the night is complete
func (n *NightState) CurrentPhase() *NightPhase {
	if n == nil || n.Complete || n.Current < 0 || n.Current >= len(n.Phases) {
		return nil
	}
	return &n.Phases[n.Current]
}
