package night

// NightError is a custom error type for night-related errors
type NightError string

// Error implements the error interface
func (e NightError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  NightError = "no game in progress for this session"
	ErrMissingSessionID NightError = "session ID is required"
	ErrGameOver         NightError = "the game is over, finish the day instead"
	ErrNotActiveDay     NightError = "switch back to the active day first"
	ErrDayCompleted     NightError = "the active day is already completed"
	ErrNightNotStarted  NightError = "the night has not started"
	ErrNightComplete    NightError = "every night phase is done"
	ErrNightIncomplete  NightError = "some night phases are still open"
	ErrInvalidTarget    NightError = "player cannot be targeted in this phase"
	ErrNoTargetSelected NightError = "select a target or skip the phase"
	ErrWrongPhase       NightError = "action is not available in this phase"
	ErrInvalidAction    NightError = "unknown mafia action"
	ErrCannotNegotiate  NightError = "the mafia cannot negotiate tonight"
	ErrNilConfig        NightError = "config cannot be nil"
	ErrNilSessionRepo   NightError = "session repository cannot be nil"
	ErrNilClock         NightError = "clock cannot be nil"
	ErrNilUUIDGenerator NightError = "UUID generator cannot be nil"
)
