package models

import "time"

// EventType tags a day event
type EventType string

const (
	EventTypePhaseChange EventType = "phase_change"
	EventTypeElimination EventType = "elimination"
	EventTypeRevival     EventType = "revival"
	EventTypeSpeaking    EventType = "speaking"
	EventTypeChallenge   EventType = "challenge"
	EventTypeVote        EventType = "vote"
	EventTypeTrialVote   EventType = "trial_vote"
	EventTypeTrialResult EventType = "trial_result"
	EventTypeDayStart    EventType = "day_start"
	EventTypeDayComplete EventType = "day_complete"
	EventTypeNightAction EventType = "night_action"
)

// Event is one entry in a day's log. Descriptions are rendered by the
// presentation layer from these fields.
type Event struct {
	// ID is unique within the session
	ID string

	// Type is the kind of event
	Type EventType

	// Timestamp is when the event was recorded, in UTC
	Timestamp time.Time

	// Day is the day the event belongs to
	Day int

	// PlayerID is the subject of the event, if any
	PlayerID *int

	// TargetID is the object of the event (challengee, night target), if any
	TargetID *int

	// Count carries a vote count when relevant
	Count *int

	// Fields holds free-form details such as reason, phase or outcome
	Fields map[string]string
}

// IntPtr is a small helper for optional event fields
func IntPtr(v int) *int {
	return &v
}
