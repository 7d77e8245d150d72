package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound       GameError = "no game in progress for this session"
	ErrInvalidPlayerCount    GameError = "player count must be between 7 and 14"
	ErrInvalidSlot           GameError = "slot index out of range"
	ErrEmptyName             GameError = "player name cannot be empty"
	ErrSlotAlreadyAssigned   GameError = "slot has already been assigned"
	ErrInvalidPlayer         GameError = "player does not exist"
	ErrPlayerEliminated      GameError = "player has been eliminated"
	ErrInvalidPhase          GameError = "invalid phase"
	ErrInvalidVoteCount      GameError = "vote count cannot be negative"
	ErrInvalidMaxChallenges  GameError = "challenge limit must be at least 1"
	ErrSelfChallenge         GameError = "a player cannot challenge themselves"
	ErrChallengeLimitReached GameError = "player has received the maximum number of challenges"
	ErrAlreadyChallenged     GameError = "player has already given a challenge today"
	ErrGameOver              GameError = "the game is over, finish the day instead"
	ErrDayNotFound           GameError = "day not found"
	ErrMissingSessionID      GameError = "session ID is required"
	ErrNilConfig             GameError = "config cannot be nil"
	ErrNilSessionRepo        GameError = "session repository cannot be nil"
	ErrNilShuffler           GameError = "shuffler cannot be nil"
	ErrNilClock              GameError = "clock cannot be nil"
	ErrNilUUIDGenerator      GameError = "UUID generator cannot be nil"
)
