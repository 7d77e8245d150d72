// Package state owns the per-day records of a session. Every mutation goes
// through Update so completed days stay frozen.
package state

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
)

// Event field keys
const (
	FieldReason = "reason"
	FieldPhase  = "phase"
	FieldFrom   = "from"
	FieldName   = "name"
)

// Config holds what a store needs
type Config struct {
	Session       *models.Session
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        zerolog.Logger

	// MaxChallenges applies to days opened by the store, 0 keeps the default
	MaxChallenges int
}

// Store wraps one session's days
type Store struct {
	session *models.Session
	clock   clock.Clock
	uuid    uuid.UUID
	logger  zerolog.Logger

	maxChallenges int
}

// New creates a store over an existing session. A session without days
// gets day one.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Session == nil {
		return nil, ErrNilSession
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &Store{
		session: cfg.Session,
		clock:   cfg.Clock,
		uuid:    cfg.UUIDGenerator,
		logger:  cfg.Logger.With().Str("component", "DayStore").Str("session_id", cfg.Session.ID).Logger(),

		maxChallenges: cfg.MaxChallenges,
	}

	if s.session.Days == nil {
		s.session.Days = map[int]*models.Day{}
	}
	if len(s.session.Days) == 0 {
		day := s.newDay(1)
		s.session.Days[1] = day
		s.session.ActiveDay = 1
		s.session.ViewDay = 1
		s.appendEvent(day, &models.Event{Type: models.EventTypeDayStart})
	}
	if s.session.ViewDay == 0 {
		s.session.ViewDay = s.session.ActiveDay
	}
	return s, nil
}

func (s *Store) newDay(number int) *models.Day {
	day := models.NewDay(number)
	if s.maxChallenges > 0 {
		day.MaxChallenges = s.maxChallenges
	}
	return day
}

// Session returns the wrapped session
func (s *Store) Session() *models.Session {
	return s.session
}

// CurrentDay returns the day being viewed
func (s *Store) CurrentDay() *models.Day {
	return s.session.Days[s.session.ViewDay]
}

// ActiveDay returns the latest day of the game
func (s *Store) ActiveDay() *models.Day {
	return s.session.Days[s.session.ActiveDay]
}

// IsViewingActive reports whether the viewed day is the active one
func (s *Store) IsViewingActive() bool {
	return s.session.ViewDay == s.session.ActiveDay
}

// Update applies fn to the viewed day unless it is read-only
func (s *Store) Update(fn func(day *models.Day)) bool {
	day := s.CurrentDay()
	if day == nil {
		s.logger.Debug().Int("day", s.session.ViewDay).Msg("Ignoring update of missing day")
		return false
	}
	if day.IsReadOnly {
		s.logger.Debug().Int("day", day.Number).Msg("Ignoring update of read-only day")
		return false
	}
	fn(day)
	s.touch()
	return true
}

// AddEvent stamps event and appends it to the viewed day's log
func (s *Store) AddEvent(event *models.Event) bool {
	return s.Update(func(day *models.Day) {
		s.appendEvent(day, event)
	})
}

func (s *Store) appendEvent(day *models.Day, event *models.Event) {
	event.ID = s.uuid.NewUUID()
	event.Timestamp = s.clock.Now()
	event.Day = day.Number
	day.Events = append(day.Events, event)
}

func (s *Store) touch() {
	s.session.UpdatedAt = s.clock.Now()
}

// SetPhase moves the viewed day to phase and logs the change
func (s *Store) SetPhase(phase models.Phase) bool {
	return s.Update(func(day *models.Day) {
		from := day.Phase
		day.Phase = phase
		s.appendEvent(day, &models.Event{
			Type:   models.EventTypePhaseChange,
			Fields: map[string]string{FieldFrom: string(from), FieldPhase: string(phase)},
		})
	})
}

// StartNextDay freezes the active day and opens the next one. Both the
// active and viewed pointers move to the new day.
func (s *Store) StartNextDay() *models.Day {
	if active := s.ActiveDay(); active != nil {
		s.freeze(active)
	}

	next := s.newDay(s.session.ActiveDay + 1)
	s.session.Days[next.Number] = next
	s.session.ActiveDay = next.Number
	s.session.ViewDay = next.Number
	s.appendEvent(next, &models.Event{Type: models.EventTypeDayStart})
	s.touch()

	s.logger.Info().Int("day", next.Number).Msg("Day started")
	return next
}

// FinishCurrentDay freezes the active day without opening another.
// It reports whether anything changed.
func (s *Store) FinishCurrentDay() bool {
	active := s.ActiveDay()
	if active == nil || active.IsReadOnly {
		return false
	}
	s.freeze(active)
	s.touch()
	s.logger.Info().Int("day", active.Number).Msg("Day finished")
	return true
}

func (s *Store) freeze(day *models.Day) {
	if day.IsReadOnly {
		return
	}
	s.appendEvent(day, &models.Event{Type: models.EventTypeDayComplete})
	day.Phase = models.PhaseCompleted
	day.IsReadOnly = true
}

// SwitchToDay moves only the viewed pointer
func (s *Store) SwitchToDay(n int) error {
	if _, ok := s.session.Days[n]; !ok {
		return ErrDayNotFound
	}
	s.session.ViewDay = n
	return nil
}

// EliminationsUpToDay is the cumulative elimination view as of day n
func (s *Store) EliminationsUpToDay(n int) map[int]models.Elimination {
	return history.EliminationsUpToDay(s.session.Days, n)
}

// Roster derives the players as of the viewed day
func (s *Store) Roster() *history.Roster {
	return s.RosterAt(s.session.ViewDay)
}

// RosterAt derives the players as of day n
func (s *Store) RosterAt(n int) *history.Roster {
	return history.ProcessPlayerData(s.session.Roles, s.session.Players, s.EliminationsUpToDay(n), s.session.SelectionOrder)
}

// IsEliminated reports whether id is dead as of the viewed day
func (s *Store) IsEliminated(id int) bool {
	_, dead := s.EliminationsUpToDay(s.session.ViewDay)[id]
	return dead
}

// Eliminate records id as eliminated on the viewed day. Already eliminated
// players and read-only days are no-ops.
func (s *Store) Eliminate(id int, reason models.EliminationReason) bool {
	if s.IsEliminated(id) {
		s.logger.Debug().Int("player_id", id).Msg("Player already eliminated")
		return false
	}
	return s.Update(func(day *models.Day) {
		day.Eliminated[id] = models.Elimination{Reason: reason, Day: day.Number}
		s.appendEvent(day, &models.Event{
			Type:     models.EventTypeElimination,
			PlayerID: models.IntPtr(id),
			Fields:   map[string]string{FieldReason: string(reason)},
		})
	})
}

// Revive brings id back as of the viewed day. An elimination written on the
// same day is removed; one written earlier is cancelled with a tombstone.
func (s *Store) Revive(id int) bool {
	if !s.IsEliminated(id) {
		s.logger.Debug().Int("player_id", id).Msg("Player is not eliminated")
		return false
	}
	return s.Update(func(day *models.Day) {
		delete(day.Eliminated, id)
		if _, earlier := s.EliminationsUpToDay(day.Number - 1)[id]; earlier {
			day.Eliminated[id] = models.Elimination{Day: day.Number, Revived: true}
		}
		s.appendEvent(day, &models.Event{
			Type:     models.EventTypeRevival,
			PlayerID: models.IntPtr(id),
		})
	})
}
