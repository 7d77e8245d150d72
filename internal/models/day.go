package models

// Phase represents where a day is in its flow
type Phase string

const (
	// PhaseDiscussion is open discussion with speaking turns and challenges
	PhaseDiscussion Phase = "discussion"

	// PhaseVoting collects open votes to put players on trial
	PhaseVoting Phase = "voting"

	// PhaseTrial collects final votes for the trial candidates
	PhaseTrial Phase = "trial"

	// PhaseCompleted marks a frozen day
	PhaseCompleted Phase = "completed"

	// PhaseNight is the night that follows the day
	PhaseNight Phase = "night"
)

// IsValid reports whether p is a known phase
func (p Phase) IsValid() bool {
	switch p {
	case PhaseDiscussion, PhaseVoting, PhaseTrial, PhaseCompleted, PhaseNight:
		return true
	}
	return false
}

// DefaultMaxChallenges is how many challenges a player may receive per day
const DefaultMaxChallenges = 2

// EliminationReason tags why a player left the game
type EliminationReason string

const (
	// EliminationReasonManual is a moderator elimination
	EliminationReasonManual EliminationReason = "manual"

	// EliminationReasonTrial is a conviction by the city
	EliminationReasonTrial EliminationReason = "trial"

	// EliminationReasonMafiaKill is the mafia's night kill
	EliminationReasonMafiaKill EliminationReason = "mafia_kill"

	// EliminationReasonSniperShot is the sniper's shot
	EliminationReasonSniperShot EliminationReason = "sniper_shot"
)

// Elimination is one entry of a day's elimination map
type Elimination struct {
	// Reason is why the player was removed
	Reason EliminationReason

	// Day is the day (or night of the day) the entry was written
	Day int

	// Revived marks a tombstone that cancels an elimination recorded on an earlier day
	Revived bool
}

// Day holds everything that happened during one day and the night after it
type Day struct {
	// Number is 1-based and increases monotonically
	Number int

	// Phase is the current phase of the day
	Phase Phase

	// Votes are open-discussion votes per player
	Votes VoteMap

	// TrialVotes are final votes per trial candidate
	TrialVotes VoteMap

	// Challenges counts challenges received per player
	Challenges VoteMap

	// ChallengeGivers lists the names of players who challenged each player
	ChallengeGivers map[int][]string

	// PlayersWhoSpoke holds players who had their speaking turn
	PlayersWhoSpoke IDSet

	// PlayersWhoGaveChallenges holds players who already gave a challenge
	PlayersWhoGaveChallenges IDSet

	// TrialResult is the last processed trial, nil until processed
	TrialResult *TrialResult

	// MaxChallenges is the per-player challenge limit for the day
	MaxChallenges int

	// IsReadOnly freezes the day once completed
	IsReadOnly bool

	// Eliminated records only what happened during this day
	Eliminated map[int]Elimination

	// Events is the append-only log of the day
	Events []*Event
}

// NewDay returns a fresh day with empty sub-state
func NewDay(number int) *Day {
	return &Day{
		Number:                   number,
		Phase:                    PhaseDiscussion,
		Votes:                    VoteMap{},
		TrialVotes:               VoteMap{},
		Challenges:               VoteMap{},
		ChallengeGivers:          map[int][]string{},
		PlayersWhoSpoke:          IDSet{},
		PlayersWhoGaveChallenges: IDSet{},
		MaxChallenges:            DefaultMaxChallenges,
		Eliminated:               map[int]Elimination{},
		Events:                   []*Event{},
	}
}

// IsCompleted reports whether the day is frozen
func (d *Day) IsCompleted() bool {
	return d.Phase == PhaseCompleted || d.IsReadOnly
}
