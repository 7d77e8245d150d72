package night

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/models"
	rules "github.com/KirkDiggler/mafiagod/internal/night"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
	"github.com/KirkDiggler/mafiagod/internal/roles"
	"github.com/KirkDiggler/mafiagod/internal/state"
	"github.com/KirkDiggler/mafiagod/internal/victory"
)

// service implements the Service interface
type service struct {
	maxChallenges int
	sessionRepo   sessionRepo.Repository
	clock         clock.Clock
	uuid          uuid.UUID
	logger        zerolog.Logger
	victory       *victory.Checker
}

// New creates a new night service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		maxChallenges: cfg.MaxChallenges,
		sessionRepo:   cfg.SessionRepo,
		clock:         cfg.Clock,
		uuid:          cfg.UUIDGenerator,
		logger:        cfg.Logger.With().Str("component", "NightService").Logger(),
		victory:       victory.NewChecker(cfg.Logger),
	}, nil
}

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

// loadNight loads a session whose open active day is in the night and being viewed
func (s *service) loadNight(ctx context.Context, sessionID string) (*state.Store, *models.NightState, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	nightState := store.Session().Night
	if nightState == nil || nightState.Day != store.Session().ActiveDay {
		return nil, nil, ErrNightNotStarted
	}

	if !store.IsViewingActive() {
		return nil, nil, ErrNotActiveDay
	}

	if store.ActiveDay().IsReadOnly {
		return nil, nil, ErrDayCompleted
	}

	return store, nightState, nil
}

func (s *service) targetInput(store *state.Store) *rules.TargetInput {
	roster := store.RosterAt(store.Session().ActiveDay)
	used := store.Session().UsedAbilities
	if used == nil {
		used = map[models.RoleName]bool{}
	}
	return &rules.TargetInput{
		Alive:         roster.Alive,
		Dead:          roster.Dead,
		UsedAbilities: used,
	}
}

func (s *service) view(store *state.Store, nightState *models.NightState) View {
	roster := store.RosterAt(store.Session().ActiveDay)
	aliveMafia := rules.Mafia(roster.Alive)

	v := View{
		Night:        nightState,
		Phase:        nightState.CurrentPhase(),
		Targets:      []*models.Player{},
		Leader:       rules.CurrentMafiaLeader(aliveMafia),
		CanNegotiate: rules.CanNegotiate(aliveMafia, len(rules.Mafia(roster.All))),
		Victory:      s.victory.Evaluate(roster),
	}

	if v.Phase != nil {
		v.Targets = rules.Targets(v.Phase.Kind, s.targetInput(store))
		if role, ok := rules.RoleFor(v.Phase.Kind); ok {
			v.Holder = rules.Holder(roster.Alive, role)
		}
	}
	return v
}

// BeginNight moves the active day into the night and fixes the phase list
// from the players alive at dusk
func (s *service) BeginNight(ctx context.Context, input *BeginNightInput) (*BeginNightOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	session := store.Session()

	if !store.IsViewingActive() {
		return nil, ErrNotActiveDay
	}

	if existing := session.Night; existing != nil && existing.Day == session.ActiveDay {
		return &BeginNightOutput{View: s.view(store, existing)}, nil
	}

	if store.ActiveDay().IsReadOnly {
		return nil, ErrDayCompleted
	}

	roster := store.RosterAt(session.ActiveDay)
	if s.victory.Evaluate(roster).IsOver() {
		return nil, ErrGameOver
	}

	if store.CurrentDay().Phase != models.PhaseNight {
		store.SetPhase(models.PhaseNight)
	}

	session.Night = &models.NightState{
		Day:         session.ActiveDay,
		Phases:      rules.BuildPhases(roster.Alive),
		Selected:    []int{},
		MafiaAction: models.NightActionMafiaKill,
		Actions:     []models.NightActionRecord{},
	}

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("day", session.ActiveDay).
		Int("phases", len(session.Night.Phases)).
		Msg("Night started")

	return &BeginNightOutput{View: s.view(store, session.Night)}, nil
}

// GetNight returns the current phase and its targets
func (s *service) GetNight(ctx context.Context, input *GetNightInput) (*GetNightOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetNightOutput{View: s.view(store, nightState)}, nil
}

// SelectTarget toggles a player in the current selection
func (s *service) SelectTarget(ctx context.Context, input *SelectTargetInput) (*SelectTargetOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	phase := nightState.CurrentPhase()
	if phase == nil {
		return nil, ErrNightComplete
	}

	if !rules.IsTarget(phase.Kind, s.targetInput(store), input.PlayerID) {
		return nil, ErrInvalidTarget
	}

	nightState.Selected = rules.ToggleTarget(nightState.Selected, input.PlayerID, phase.MaxTargets)
	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	return &SelectTargetOutput{View: s.view(store, nightState)}, nil
}

// SetMafiaAction switches the mafia between killing and negotiating
func (s *service) SetMafiaAction(ctx context.Context, input *SetMafiaActionInput) (*SetMafiaActionOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	phase := nightState.CurrentPhase()
	if phase == nil {
		return nil, ErrNightComplete
	}
	if phase.Kind != models.NightPhaseMafia {
		return nil, ErrWrongPhase
	}

	switch input.Action {
	case models.NightActionMafiaKill:
	case models.NightActionMafiaNegotiate:
		v := s.view(store, nightState)
		if !v.CanNegotiate {
			return nil, ErrCannotNegotiate
		}
	default:
		return nil, ErrInvalidAction
	}

	nightState.MafiaAction = input.Action
	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	return &SetMafiaActionOutput{View: s.view(store, nightState)}, nil
}

// ConfirmAction applies the current selection and advances to the next phase
func (s *service) ConfirmAction(ctx context.Context, input *ConfirmActionInput) (*ConfirmActionOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	phase := nightState.CurrentPhase()
	if phase == nil {
		return nil, ErrNightComplete
	}

	if len(nightState.Selected) == 0 {
		return nil, ErrNoTargetSelected
	}

	in := s.targetInput(store)
	for _, id := range nightState.Selected {
		if !rules.IsTarget(phase.Kind, in, id) {
			return nil, ErrInvalidTarget
		}
	}

	record := s.apply(store, nightState, phase)
	s.advance(store, nightState, record)

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	return &ConfirmActionOutput{View: s.view(store, nightState), Record: &record}, nil
}

// apply performs the state change of a confirmed phase
func (s *service) apply(store *state.Store, nightState *models.NightState, phase *models.NightPhase) models.NightActionRecord {
	session := store.Session()
	targets := append([]int{}, nightState.Selected...)
	record := models.NightActionRecord{
		Phase:     phase.Kind,
		Action:    phase.Action,
		TargetIDs: targets,
	}
	target := targets[0]

	switch phase.Kind {
	case models.NightPhaseMafia:
		record.Action = nightState.MafiaAction
		if record.Action == models.NightActionMafiaNegotiate {
			if session.Negotiated == nil {
				session.Negotiated = map[int]int{}
			}
			session.Negotiated[target] = nightState.Day
		} else {
			store.Eliminate(target, models.EliminationReasonMafiaKill)
		}
	case models.NightPhaseDetective:
		record.Result = string(roles.Lookup(session.Roles[target]).Faction)
	case models.NightPhaseReporter:
		record.Result = ResultNotNegotiated
		if _, ok := session.Negotiated[target]; ok {
			record.Result = ResultNegotiated
		}
	case models.NightPhaseSniper:
		if store.Eliminate(target, models.EliminationReasonSniperShot) {
			s.markUsed(session, models.RoleSniper)
		}
	case models.NightPhaseDoctor:
		// The save is informational; the mafia kill stands
	case models.NightPhaseConstantine:
		if store.Revive(target) {
			s.markUsed(session, models.RoleConstantine)
		}
	}

	return record
}

func (s *service) markUsed(session *models.Session, role models.RoleName) {
	if session.UsedAbilities == nil {
		session.UsedAbilities = map[models.RoleName]bool{}
	}
	session.UsedAbilities[role] = true
}

// advance logs the record and moves to the next phase
func (s *service) advance(store *state.Store, nightState *models.NightState, record models.NightActionRecord) {
	nightState.Actions = append(nightState.Actions, record)

	event := &models.Event{
		Type: models.EventTypeNightAction,
		Fields: map[string]string{
			FieldPhase:  string(record.Phase),
			FieldAction: string(record.Action),
		},
	}
	if len(record.TargetIDs) > 0 {
		event.TargetID = models.IntPtr(record.TargetIDs[0])
		ids := make([]string, len(record.TargetIDs))
		for i, id := range record.TargetIDs {
			ids[i] = strconv.Itoa(id)
		}
		event.Fields[FieldTargets] = strings.Join(ids, ",")
	}
	if record.Result != "" {
		event.Fields[FieldResult] = record.Result
	}
	store.AddEvent(event)

	s.logger.Info().
		Str("session_id", store.Session().ID).
		Int("day", nightState.Day).
		Str("phase", string(record.Phase)).
		Str("action", string(record.Action)).
		Ints("targets", record.TargetIDs).
		Msg("Night action recorded")

	nightState.Current++
	nightState.Selected = []int{}
	nightState.MafiaAction = models.NightActionMafiaKill
	if nightState.Current >= len(nightState.Phases) {
		nightState.Complete = true
	}
}

// SkipPhase records a no-op for the current phase and advances
func (s *service) SkipPhase(ctx context.Context, input *SkipPhaseInput) (*SkipPhaseOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	phase := nightState.CurrentPhase()
	if phase == nil {
		return nil, ErrNightComplete
	}

	record := models.NightActionRecord{
		Phase:     phase.Kind,
		Action:    models.NightActionSkip,
		TargetIDs: []int{},
	}
	s.advance(store, nightState, record)

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	return &SkipPhaseOutput{View: s.view(store, nightState), Record: &record}, nil
}

// CompleteNight ends the night. While the game goes on the day is frozen
// and the next discussion day opens; otherwise the day is only finished.
func (s *service) CompleteNight(ctx context.Context, input *CompleteNightInput) (*CompleteNightOutput, error) {
	if input == nil {
		return nil, ErrMissingSessionID
	}

	store, nightState, err := s.loadNight(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !nightState.Complete {
		return nil, ErrNightIncomplete
	}

	session := store.Session()
	v := s.victory.Evaluate(store.RosterAt(session.ActiveDay))
	output := &CompleteNightOutput{
		Victory: v,
		Actions: nightState.Actions,
	}

	session.Night = nil
	if v.IsOver() {
		store.FinishCurrentDay()
	} else {
		output.NextDay = store.StartNextDay()
	}

	if err := s.save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("victory", string(v)).
		Msg("Night completed")

	return output, nil
}
