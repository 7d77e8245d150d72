package messaging

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/night"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
	shuffleMocks "github.com/KirkDiggler/mafiagod/internal/shuffle/mocks"
	"github.com/KirkDiggler/mafiagod/internal/state"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockShuffler *shuffleMocks.MockShuffler
	service      Service
	ctx          context.Context
	roster       *history.Roster
	testTime     time.Time
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockShuffler = shuffleMocks.NewMockShuffler(s.mockCtrl)
	s.mockShuffler.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

	svc, err := NewService(&ServiceConfig{Shuffler: s.mockShuffler})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	ann := &models.Player{ID: 0, Name: "Ann", Role: models.RoleMafiaBoss, Selected: true}
	bob := &models.Player{ID: 1, Name: "Bob", Role: models.RoleDetective, Selected: true}
	s.roster = &history.Roster{
		All:   []*models.Player{ann, bob},
		Alive: []*models.Player{ann, bob},
		Dead:  []*models.Player{},
	}
}

func (s *MessagingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *MessagingServiceTestSuite) describe(e *models.Event) *DescribeEventOutput {
	out, err := s.service.DescribeEvent(s.ctx, &DescribeEventInput{Event: e, Roster: s.roster})
	s.Require().NoError(err)
	return out
}

func (s *MessagingServiceTestSuite) TestDescribeEvent() {
	testCases := []struct {
		name     string
		event    *models.Event
		expected string
	}{
		{
			name:     "day start",
			event:    &models.Event{Type: models.EventTypeDayStart, Day: 2},
			expected: "Day 2 started",
		},
		{
			name: "phase change",
			event: &models.Event{
				Type:   models.EventTypePhaseChange,
				Fields: map[string]string{state.FieldFrom: "discussion", state.FieldPhase: "voting"},
			},
			expected: "Phase changed from Discussion to Voting",
		},
		{
			name: "mafia kill",
			event: &models.Event{
				Type:     models.EventTypeElimination,
				Day:      3,
				PlayerID: models.IntPtr(1),
				Fields:   map[string]string{state.FieldReason: string(models.EliminationReasonMafiaKill)},
			},
			expected: "Bob was killed by the mafia on night 3",
		},
		{
			name: "challenge",
			event: &models.Event{
				Type:     models.EventTypeChallenge,
				PlayerID: models.IntPtr(0),
				TargetID: models.IntPtr(1),
			},
			expected: "Ann challenged Bob",
		},
		{
			name:     "vote",
			event:    &models.Event{Type: models.EventTypeVote, PlayerID: models.IntPtr(1), Count: models.IntPtr(4)},
			expected: "Bob has 4 votes",
		},
		{
			name:     "unknown player falls back to placeholder",
			event:    &models.Event{Type: models.EventTypeSpeaking, PlayerID: models.IntPtr(6)},
			expected: "Player 7 had their speaking turn",
		},
		{
			name: "trial conviction",
			event: &models.Event{
				Type:     models.EventTypeTrialResult,
				PlayerID: models.IntPtr(0),
				Fields:   map[string]string{game.FieldOutcome: string(models.TrialOutcomeElimination)},
			},
			expected: "Trial: Ann was convicted",
		},
		{
			name: "detective inquiry",
			event: &models.Event{
				Type: models.EventTypeNightAction,
				Fields: map[string]string{
					nightService.FieldPhase:   string(models.NightPhaseDetective),
					nightService.FieldAction:  string(models.NightActionDetectiveInquiry),
					nightService.FieldTargets: "0",
					nightService.FieldResult:  string(models.FactionMafia),
				},
			},
			expected: "Night: the detective checked Ann (mafia)",
		},
		{
			name: "doctor saves two",
			event: &models.Event{
				Type: models.EventTypeNightAction,
				Fields: map[string]string{
					nightService.FieldPhase:   string(models.NightPhaseDoctor),
					nightService.FieldAction:  string(models.NightActionDoctorSave),
					nightService.FieldTargets: "0,1",
				},
			},
			expected: "Night: the doctor saved Ann, Bob",
		},
		{
			name: "skipped phase",
			event: &models.Event{
				Type: models.EventTypeNightAction,
				Fields: map[string]string{
					nightService.FieldPhase:  string(models.NightPhaseSniper),
					nightService.FieldAction: string(models.NightActionSkip),
				},
			},
			expected: "Night: sniper phase skipped",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, s.describe(tc.event).Description)
		})
	}
}

func (s *MessagingServiceTestSuite) TestDescribeEventTimestamp() {
	out := s.describe(&models.Event{Type: models.EventTypeDayStart, Day: 1, Timestamp: s.testTime})
	s.Equal("12:00:00", out.Time)

	out = s.describe(&models.Event{Type: models.EventTypeDayStart, Day: 1})
	s.Empty(out.Time)
}

func (s *MessagingServiceTestSuite) TestDescribeEventNil() {
	_, err := s.service.DescribeEvent(s.ctx, &DescribeEventInput{})
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestDescribeElimination() {
	out, err := s.service.DescribeElimination(s.ctx, &DescribeEliminationInput{
		PlayerName:  "Bob",
		Elimination: models.Elimination{Reason: models.EliminationReasonSniperShot, Day: 2},
	})
	s.Require().NoError(err)
	s.Equal("shot by the sniper on night 2", out.Reason)
	s.Equal("Bob was shot by the sniper on night 2", out.Message)
}

func (s *MessagingServiceTestSuite) TestGetPhaseLabel() {
	out, err := s.service.GetPhaseLabel(s.ctx, &GetPhaseLabelInput{Phase: models.PhaseTrial})
	s.Require().NoError(err)
	s.Equal("Trial", out.Label)
}

func (s *MessagingServiceTestSuite) TestGetNightPhaseMessageLeaders() {
	ann := s.roster.All[0]

	out, err := s.service.GetNightPhaseMessage(s.ctx, &GetNightPhaseMessageInput{
		Phase:  models.NightPhaseMafia,
		Leader: &night.Leader{Player: ann, Kind: night.LeaderBoss},
	})
	s.Require().NoError(err)
	s.Equal("The Mafia", out.Title)
	s.Equal("The mafia wakes up and chooses a victim.", out.Narration)
	s.Contains(out.Instruction, "Ann, the boss")

	out, err = s.service.GetNightPhaseMessage(s.ctx, &GetNightPhaseMessageInput{
		Phase:        models.NightPhaseMafia,
		Leader:       &night.Leader{Player: ann, Kind: night.LeaderNegotiator},
		CanNegotiate: true,
	})
	s.Require().NoError(err)
	s.Contains(out.Instruction, "the negotiator, names the target")
	s.Contains(out.Instruction, "offer a deal")

	out, err = s.service.GetNightPhaseMessage(s.ctx, &GetNightPhaseMessageInput{
		Phase:  models.NightPhaseMafia,
		Leader: &night.Leader{Kind: night.LeaderCollective},
	})
	s.Require().NoError(err)
	s.Contains(out.Instruction, "together")
}

func (s *MessagingServiceTestSuite) TestGetNightPhaseMessageHolder() {
	out, err := s.service.GetNightPhaseMessage(s.ctx, &GetNightPhaseMessageInput{
		Phase:  models.NightPhaseDetective,
		Holder: s.roster.All[1],
	})
	s.Require().NoError(err)
	s.Equal("The Detective (Bob)", out.Title)
	s.Equal("Select one player to inquire about.", out.Instruction)

	out, err = s.service.GetNightPhaseMessage(s.ctx, &GetNightPhaseMessageInput{
		Phase: models.NightPhaseDoctor,
	})
	s.Require().NoError(err)
	s.Contains(out.Instruction, "Nobody holds this role")
}

func (s *MessagingServiceTestSuite) TestGetTrialResultMessage() {
	out, err := s.service.GetTrialResultMessage(s.ctx, &GetTrialResultMessageInput{
		Result: &models.TrialResult{
			Outcome:      models.TrialOutcomeElimination,
			Candidates:   []int{0},
			EliminatedID: models.IntPtr(0),
			MaxVotes:     5,
			Required:     4,
		},
		Roster: s.roster,
	})
	s.Require().NoError(err)
	s.Equal("Guilty", out.Title)
	s.Equal("Ann was convicted with 5 votes (4 required).", out.Message)

	out, err = s.service.GetTrialResultMessage(s.ctx, &GetTrialResultMessageInput{
		Result: &models.TrialResult{
			Outcome:    models.TrialOutcomeTie,
			Candidates: []int{0, 1},
			TiedIDs:    []int{0, 1},
			MaxVotes:   3,
		},
		Roster: s.roster,
	})
	s.Require().NoError(err)
	s.Equal("Ann, Bob are tied with 3 votes. The moderator decides.", out.Message)

	out, err = s.service.GetTrialResultMessage(s.ctx, &GetTrialResultMessageInput{
		Result: &models.TrialResult{Outcome: models.TrialOutcomeIncompleteVoting, Missing: []int{1}},
		Roster: s.roster,
	})
	s.Require().NoError(err)
	s.Equal("Final votes are missing for Bob.", out.Message)
}

func (s *MessagingServiceTestSuite) TestGetVictoryMessage() {
	out, err := s.service.GetVictoryMessage(s.ctx, &GetVictoryMessageInput{Victory: models.VictoryMafiaWin})
	s.Require().NoError(err)
	s.Equal("The Mafia Wins", out.Title)
	s.Equal("The mafia now controls the city.", out.Message)

	out, err = s.service.GetVictoryMessage(s.ctx, &GetVictoryMessageInput{Victory: models.VictoryCitizensWin})
	s.Require().NoError(err)
	s.Equal("The Citizens Win", out.Title)

	out, err = s.service.GetVictoryMessage(s.ctx, &GetVictoryMessageInput{Victory: models.VictoryOngoing})
	s.Require().NoError(err)
	s.Equal("Game in progress", out.Title)
}

func (s *MessagingServiceTestSuite) TestGetErrorMessage() {
	testCases := []struct {
		name  string
		err   error
		title string
	}{
		{name: "session not found", err: game.ErrSessionNotFound, title: "No game"},
		{name: "wrapped night session not found", err: fmt.Errorf("load: %w", nightService.ErrSessionNotFound), title: "No game"},
		{name: "game over", err: nightService.ErrGameOver, title: "Game over"},
		{name: "history", err: nightService.ErrNotActiveDay, title: "Viewing history"},
		{name: "game rule", err: game.ErrSelfChallenge, title: "Not allowed"},
		{name: "unknown", err: fmt.Errorf("redis down"), title: "Something went wrong"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: tc.err})
			s.Require().NoError(err)
			s.Equal(tc.title, out.Title)
		})
	}
}

func (s *MessagingServiceTestSuite) TestRoleLabel() {
	s.Equal("Mafia Boss", RoleLabel(models.RoleMafiaBoss))
	s.Equal("Citizen", RoleLabel(models.RoleSimpleCitizen))
	s.Equal("joker", RoleLabel(models.RoleName("joker")))
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}
