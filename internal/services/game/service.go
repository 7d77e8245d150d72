package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/models"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
	"github.com/KirkDiggler/mafiagod/internal/roles"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
	"github.com/KirkDiggler/mafiagod/internal/state"
	"github.com/KirkDiggler/mafiagod/internal/victory"
)

// service implements the Service interface
type service struct {
	maxChallenges int
	sessionRepo   sessionRepo.Repository
	shuffler      shuffle.Shuffler
	clock         clock.Clock
	uuid          uuid.UUID
	logger        zerolog.Logger
	victory       *victory.Checker
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger.With().Str("component", "GameService").Logger()

	return &service{
		maxChallenges: cfg.MaxChallenges,
		sessionRepo:   cfg.SessionRepo,
		shuffler:      cfg.Shuffler,
		clock:         cfg.Clock,
		uuid:          cfg.UUIDGenerator,
		logger:        logger,
		victory:       victory.NewChecker(cfg.Logger),
	}, nil
}

// load fetches a session and wraps it in a day store
func (s *service) load(ctx context.Context, sessionID string) (*state.Store, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return s.newStore(session)
}

func (s *service) newStore(session *models.Session) (*state.Store, error) {
	return state.New(&state.Config{
		Session:       session,
		Clock:         s.clock,
		UUIDGenerator: s.uuid,
		Logger:        s.logger,
		MaxChallenges: s.maxChallenges,
	})
}

func (s *service) save(ctx context.Context, store *state.Store) error {
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: store.Session(),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// evaluate checks victory as of the active day
func (s *service) evaluate(store *state.Store) models.Victory {
	return s.victory.Evaluate(store.RosterAt(store.Session().ActiveDay))
}

// mutate runs fn against a loaded store and saves when something changed
func (s *service) mutate(ctx context.Context, sessionID string, fn func(store *state.Store) (bool, error)) (*state.Store, DayResult, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, DayResult{}, err
	}

	applied, err := fn(store)
	if err != nil {
		return nil, DayResult{}, err
	}

	if applied {
		if err := s.save(ctx, store); err != nil {
			return nil, DayResult{}, err
		}
	}

	return store, DayResult{
		Applied: applied,
		Day:     store.CurrentDay(),
		Victory: s.evaluate(store),
	}, nil
}

func validPlayer(store *state.Store, id int) error {
	if id < 0 || id >= len(store.Session().Roles) {
		return ErrInvalidPlayer
	}
	return nil
}

// StartGame shuffles the roles for a new table and opens day one
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	list, ok := roles.ForCount(input.PlayerCount)
	if !ok {
		return nil, ErrInvalidPlayerCount
	}

	shuffled := shuffle.Permute(s.shuffler, list)
	players := make([]*models.Player, len(shuffled))
	for i := range shuffled {
		players[i] = &models.Player{ID: i}
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:             input.SessionID,
		PlayerCount:    input.PlayerCount,
		Roles:          shuffled,
		Players:        players,
		SelectionOrder: []int{},
		Negotiated:     map[int]int{},
		UsedAbilities:  map[models.RoleName]bool{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	store, err := s.newStore(session)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", input.SessionID).
		Int("player_count", input.PlayerCount).
		Msg("Game started")

	return &StartGameOutput{Session: session}, nil
}

// SelectPlayer marks a slot as the one being named
func (s *service) SelectPlayer(ctx context.Context, input *SelectPlayerInput) (*SelectPlayerOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	session := store.Session()

	if input.SlotIndex < 0 || input.SlotIndex >= len(session.Players) {
		return nil, ErrInvalidSlot
	}

	if session.Players[input.SlotIndex].Selected {
		return &SelectPlayerOutput{AlreadyAssigned: true}, nil
	}

	slot := input.SlotIndex
	session.PendingSlot = &slot
	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	return &SelectPlayerOutput{Pending: true}, nil
}

// ConfirmPlayer names a slot and reveals its role
func (s *service) ConfirmPlayer(ctx context.Context, input *ConfirmPlayerInput) (*ConfirmPlayerOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	session := store.Session()

	if input.SlotIndex < 0 || input.SlotIndex >= len(session.Players) {
		return nil, ErrInvalidSlot
	}

	player := session.Players[input.SlotIndex]
	if player.Selected {
		return nil, ErrSlotAlreadyAssigned
	}

	player.Name = name
	player.Role = session.Roles[input.SlotIndex]
	player.Selected = true
	session.SelectionOrder = append(session.SelectionOrder, input.SlotIndex)
	session.PendingSlot = nil
	session.UpdatedAt = s.clock.Now()

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", session.ID).
		Int("slot", input.SlotIndex).
		Msg("Player confirmed")

	return &ConfirmPlayerOutput{
		Player:    player,
		Role:      roles.Lookup(player.Role),
		Remaining: len(session.Players) - len(session.SelectionOrder),
	}, nil
}

// ResetGame discards the session
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		SessionID: input.SessionID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info().Str("session_id", input.SessionID).Msg("Game reset")

	return &ResetGameOutput{Success: true}, nil
}

// GetGodView lists every role by faction, highest priority first
func (s *service) GetGodView(ctx context.Context, input *GetGodViewInput) (*GetGodViewOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	roster := store.RosterAt(store.Session().ActiveDay)
	output := &GetGodViewOutput{
		Mafia:    []*GodViewEntry{},
		Citizens: []*GodViewEntry{},
	}

	for _, p := range roster.All {
		entry := &GodViewEntry{
			Player: p,
			Role:   roles.Lookup(p.Role),
			Alive:  roster.IsAlive(p.ID),
		}
		if entry.Role.Faction == models.FactionMafia {
			output.Mafia = append(output.Mafia, entry)
		} else {
			output.Citizens = append(output.Citizens, entry)
		}
	}

	byPriority := func(entries []*GodViewEntry) {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Role.Priority != entries[j].Role.Priority {
				return entries[i].Role.Priority > entries[j].Role.Priority
			}
			return entries[i].Player.ID < entries[j].Player.ID
		})
	}
	byPriority(output.Mafia)
	byPriority(output.Citizens)

	return output, nil
}
