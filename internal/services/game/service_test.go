package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mafiagod/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/mafiagod/internal/common/uuid/mocks"
	"github.com/KirkDiggler/mafiagod/internal/models"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/mafiagod/internal/repositories/session/mocks"
	shuffleMocks "github.com/KirkDiggler/mafiagod/internal/shuffle/mocks"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockShuffler    *shuffleMocks.MockShuffler
	mockClock       *mocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	gameService     Service
	mockedService   Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testSessionID string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockShuffler = shuffleMocks.NewMockShuffler(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "test-channel-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-event-id").AnyTimes()

	// Keep the catalog order so every test knows who holds which role
	s.mockShuffler.EXPECT().Intn(gomock.Any()).DoAndReturn(func(n int) int { return n - 1 }).AnyTimes()

	svc, err := New(&Config{
		SessionRepo:   sessionRepo.NewMemory(),
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zerolog.Nop(),
	})
	s.Require().NoError(err)
	s.gameService = svc

	mocked, err := New(&Config{
		SessionRepo:   s.mockSessionRepo,
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zerolog.Nop(),
	})
	s.Require().NoError(err)
	s.mockedService = mocked
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// startGame starts a table and names every slot "P<slot>"
func (s *GameServiceTestSuite) startGame(count int) {
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: count})
	s.Require().NoError(err)

	for i := 0; i < count; i++ {
		_, err := s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{
			SessionID: s.testSessionID,
			SlotIndex: i,
			Name:      fmt.Sprintf("P%d", i),
		})
		s.Require().NoError(err)
	}
}

func (s *GameServiceTestSuite) roster() *GetRosterOutput {
	out, err := s.gameService.GetRoster(s.ctx, &GetRosterInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	return out
}

func (s *GameServiceTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Shuffler: s.mockShuffler, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilSessionRepo)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilShuffler)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo, Shuffler: s.mockShuffler, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo, Shuffler: s.mockShuffler, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

// StartGame Tests

func (s *GameServiceTestSuite) TestStartGame_HappyPath() {
	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: 7})
	s.Require().NoError(err)

	session := output.Session
	s.Equal(7, session.PlayerCount)
	s.Len(session.Roles, 7)
	s.Len(session.Players, 7)
	s.Empty(session.SelectionOrder)
	s.Equal(models.RoleMafiaBoss, session.Roles[0])
	s.Equal(1, session.ActiveDay)

	day := session.Days[1]
	s.Require().NotNil(day)
	s.Equal(models.PhaseDiscussion, day.Phase)
	s.Equal(models.EventTypeDayStart, day.Events[0].Type)
	s.Equal(s.testTime, session.CreatedAt)
}

func (s *GameServiceTestSuite) TestStartGame_InvalidPlayerCount() {
	for _, count := range []int{0, 6, 15} {
		output, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: count})
		s.ErrorIs(err, ErrInvalidPlayerCount)
		s.Nil(output)
	}

	_, err := s.gameService.GetCurrentDay(s.ctx, &GetCurrentDayInput{SessionID: s.testSessionID})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *GameServiceTestSuite) TestStartGame_ReplacesSession() {
	s.startGame(7)

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: 9})
	s.Require().NoError(err)

	roster := s.roster()
	s.Len(roster.Roster.All, 9)
	s.False(roster.Roster.All[0].Selected)
}

func (s *GameServiceTestSuite) TestStartGame_SaveError() {
	expectedError := errors.New("redis down")
	s.mockSessionRepo.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		Return(expectedError)

	output, err := s.mockedService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: 7})

	s.Require().Error(err)
	s.ErrorIs(err, expectedError)
	s.Nil(output)
}

// Assignment Tests

func (s *GameServiceTestSuite) TestSelectAndConfirmPlayer() {
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: 7})
	s.Require().NoError(err)

	sel, err := s.gameService.SelectPlayer(s.ctx, &SelectPlayerInput{SessionID: s.testSessionID, SlotIndex: 3})
	s.Require().NoError(err)
	s.True(sel.Pending)

	confirmed, err := s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{SessionID: s.testSessionID, SlotIndex: 3, Name: "  Ann  "})
	s.Require().NoError(err)
	s.Equal("Ann", confirmed.Player.Name)
	s.Equal(models.RoleDetective, confirmed.Role.Name)
	s.Equal(6, confirmed.Remaining)

	sel, err = s.gameService.SelectPlayer(s.ctx, &SelectPlayerInput{SessionID: s.testSessionID, SlotIndex: 3})
	s.Require().NoError(err)
	s.True(sel.AlreadyAssigned)
	s.False(sel.Pending)

	_, err = s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{SessionID: s.testSessionID, SlotIndex: 3, Name: "Bob"})
	s.ErrorIs(err, ErrSlotAlreadyAssigned)

	_, err = s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{SessionID: s.testSessionID, SlotIndex: 1, Name: "Cid"})
	s.Require().NoError(err)

	roster := s.roster().Roster
	s.Equal("Ann", roster.All[0].Name)
	s.Equal("Cid", roster.All[1].Name)
	s.Equal("Player 1", roster.All[2].Name)
}

func (s *GameServiceTestSuite) TestConfirmPlayer_Validation() {
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{SessionID: s.testSessionID, PlayerCount: 7})
	s.Require().NoError(err)

	_, err = s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{SessionID: s.testSessionID, SlotIndex: 0, Name: "   "})
	s.ErrorIs(err, ErrEmptyName)

	_, err = s.gameService.ConfirmPlayer(s.ctx, &ConfirmPlayerInput{SessionID: s.testSessionID, SlotIndex: 7, Name: "Ann"})
	s.ErrorIs(err, ErrInvalidSlot)

	_, err = s.gameService.SelectPlayer(s.ctx, &SelectPlayerInput{SessionID: s.testSessionID, SlotIndex: -1})
	s.ErrorIs(err, ErrInvalidSlot)

	s.False(s.roster().Roster.All[0].Selected)
}

func (s *GameServiceTestSuite) TestResetGame() {
	s.startGame(7)

	out, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.True(out.Success)

	_, err = s.gameService.GetRoster(s.ctx, &GetRosterInput{SessionID: s.testSessionID})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *GameServiceTestSuite) TestGetGodView() {
	s.startGame(10)

	out, err := s.gameService.GetGodView(s.ctx, &GetGodViewInput{SessionID: s.testSessionID})
	s.Require().NoError(err)

	s.Require().Len(out.Mafia, 3)
	s.Equal(models.RoleMafiaBoss, out.Mafia[0].Role.Name)
	s.Equal(models.RoleNegotiator, out.Mafia[1].Role.Name)
	s.Equal(models.RoleSimpleMafia, out.Mafia[2].Role.Name)

	s.Require().Len(out.Citizens, 7)
	s.Equal(models.RoleDoctor, out.Citizens[0].Role.Name)
	s.Equal(models.RoleDetective, out.Citizens[1].Role.Name)
	s.Equal(models.RoleSimpleCitizen, out.Citizens[6].Role.Name)
	s.True(out.Citizens[0].Alive)
}

// Day Tests

func (s *GameServiceTestSuite) TestSetPhase() {
	s.startGame(7)

	out, err := s.gameService.SetPhase(s.ctx, &SetPhaseInput{SessionID: s.testSessionID, Phase: models.PhaseVoting})
	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal(models.PhaseVoting, out.Day.Phase)
	s.Equal(models.VictoryOngoing, out.Victory)

	_, err = s.gameService.SetPhase(s.ctx, &SetPhaseInput{SessionID: s.testSessionID, Phase: models.PhaseCompleted})
	s.ErrorIs(err, ErrInvalidPhase)

	_, err = s.gameService.SetPhase(s.ctx, &SetPhaseInput{SessionID: s.testSessionID, Phase: "lunch"})
	s.ErrorIs(err, ErrInvalidPhase)
}

func (s *GameServiceTestSuite) TestSaveVotes_Candidates() {
	s.startGame(8)

	out, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{
		SessionID: s.testSessionID,
		Votes:     models.VoteMap{4: 4, 5: 3, 6: 5},
	})
	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal(4, out.Required)
	s.Require().Len(out.Candidates, 2)

	last := out.Day.Events[len(out.Day.Events)-1]
	s.Equal(models.EventTypeVote, last.Type)

	_, err = s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{20: 1}})
	s.ErrorIs(err, ErrInvalidPlayer)

	_, err = s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{1: -1}})
	s.ErrorIs(err, ErrInvalidVoteCount)
}

func (s *GameServiceTestSuite) TestProcessTrialResults_SingleConviction() {
	s.startGame(8)

	_, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{5: 4}})
	s.Require().NoError(err)
	_, err = s.gameService.SaveTrialVotes(s.ctx, &SaveTrialVotesInput{SessionID: s.testSessionID, TrialVotes: models.VoteMap{5: 4}})
	s.Require().NoError(err)

	out, err := s.gameService.ProcessTrialResults(s.ctx, &ProcessTrialResultsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(models.TrialOutcomeElimination, out.Result.Outcome)
	s.Require().NotNil(out.Day.TrialResult)

	roster := s.roster()
	s.False(roster.Roster.IsAlive(5))
	s.Equal(models.EliminationReasonTrial, roster.Eliminations[5].Reason)
}

func (s *GameServiceTestSuite) TestProcessTrialResults_Tie() {
	s.startGame(8)

	_, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{5: 4, 6: 4}})
	s.Require().NoError(err)
	_, err = s.gameService.SaveTrialVotes(s.ctx, &SaveTrialVotesInput{SessionID: s.testSessionID, TrialVotes: models.VoteMap{5: 3, 6: 3}})
	s.Require().NoError(err)

	out, err := s.gameService.ProcessTrialResults(s.ctx, &ProcessTrialResultsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(models.TrialOutcomeTie, out.Result.Outcome)
	s.Len(s.roster().Roster.Dead, 0)

	reset, err := s.gameService.ResetTrialVotes(s.ctx, &ResetTrialVotesInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Nil(reset.Day.TrialResult)
	s.Empty(reset.Day.TrialVotes)
}

func (s *GameServiceTestSuite) TestProcessTrialResults_Incomplete() {
	s.startGame(8)

	_, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{5: 4, 6: 4}})
	s.Require().NoError(err)
	_, err = s.gameService.SaveTrialVotes(s.ctx, &SaveTrialVotesInput{SessionID: s.testSessionID, TrialVotes: models.VoteMap{5: 3}})
	s.Require().NoError(err)

	out, err := s.gameService.ProcessTrialResults(s.ctx, &ProcessTrialResultsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(models.TrialOutcomeIncompleteVoting, out.Result.Outcome)
	s.Equal([]int{6}, out.Result.Missing)
}

func (s *GameServiceTestSuite) TestRecordChallenge() {
	s.startGame(7)

	_, err := s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 2, ChallengeeID: 2})
	s.ErrorIs(err, ErrSelfChallenge)

	out, err := s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 1, ChallengeeID: 4})
	s.Require().NoError(err)
	s.Equal(1, out.Received)

	out, err = s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 2, ChallengeeID: 4})
	s.Require().NoError(err)
	s.Equal(2, out.Received)
	s.Equal([]string{"P1", "P2"}, out.Day.ChallengeGivers[4])
	s.True(out.Day.PlayersWhoGaveChallenges.Has(1))
	s.False(out.Day.PlayersWhoSpoke.Has(1))

	_, err = s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 1, ChallengeeID: 5})
	s.ErrorIs(err, ErrAlreadyChallenged)

	given, err := s.gameService.GetAvailableChallengees(s.ctx, &GetAvailableChallengeesInput{SessionID: s.testSessionID, ChallengerID: 1})
	s.Require().NoError(err)
	s.Empty(given.Players)

	_, err = s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 3, ChallengeeID: 4})
	s.ErrorIs(err, ErrChallengeLimitReached)

	avail, err := s.gameService.GetAvailableChallengees(s.ctx, &GetAvailableChallengeesInput{SessionID: s.testSessionID, ChallengerID: 3})
	s.Require().NoError(err)
	s.Len(avail.Players, 5)

	_, err = s.gameService.SetMaxChallenges(s.ctx, &SetMaxChallengesInput{SessionID: s.testSessionID, MaxChallenges: 0})
	s.ErrorIs(err, ErrInvalidMaxChallenges)

	_, err = s.gameService.SetMaxChallenges(s.ctx, &SetMaxChallengesInput{SessionID: s.testSessionID, MaxChallenges: 3})
	s.Require().NoError(err)
	_, err = s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 3, ChallengeeID: 4})
	s.Require().NoError(err)

	reset, err := s.gameService.ResetChallenges(s.ctx, &ResetChallengesInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Empty(reset.Day.Challenges)
	s.Empty(reset.Day.ChallengeGivers)
	s.Empty(reset.Day.PlayersWhoGaveChallenges)

	_, err = s.gameService.RecordChallenge(s.ctx, &RecordChallengeInput{SessionID: s.testSessionID, ChallengerID: 1, ChallengeeID: 5})
	s.NoError(err)
}

func (s *GameServiceTestSuite) TestRecordSpeaking() {
	s.startGame(7)

	out, err := s.gameService.RecordSpeaking(s.ctx, &RecordSpeakingInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	s.True(out.Day.PlayersWhoSpoke.Has(4))
	s.True(out.Applied)

	again, err := s.gameService.RecordSpeaking(s.ctx, &RecordSpeakingInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	s.False(again.Applied)

	events, err := s.gameService.GetDayEvents(s.ctx, &GetDayEventsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	speaking := 0
	for _, e := range events.Events {
		if e.Type == models.EventTypeSpeaking {
			speaking++
		}
	}
	s.Equal(1, speaking)

	_, err = s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: 5})
	s.Require().NoError(err)
	_, err = s.gameService.RecordSpeaking(s.ctx, &RecordSpeakingInput{SessionID: s.testSessionID, PlayerID: 5})
	s.ErrorIs(err, ErrPlayerEliminated)
}

func (s *GameServiceTestSuite) TestReadOnlyDayIsNotMutated() {
	s.startGame(7)

	_, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{4: 2}})
	s.Require().NoError(err)
	_, err = s.gameService.StartNextDay(s.ctx, &StartNextDayInput{SessionID: s.testSessionID})
	s.Require().NoError(err)

	switched, err := s.gameService.SwitchToDay(s.ctx, &SwitchToDayInput{SessionID: s.testSessionID, Day: 1})
	s.Require().NoError(err)
	s.False(switched.IsActive)

	votes, err := s.gameService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID, Votes: models.VoteMap{4: 6}})
	s.Require().NoError(err)
	s.False(votes.Applied)
	s.Equal(2, votes.Day.Votes.Get(4))

	elim, err := s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	s.False(elim.Applied)

	phase, err := s.gameService.SetPhase(s.ctx, &SetPhaseInput{SessionID: s.testSessionID, Phase: models.PhaseVoting})
	s.Require().NoError(err)
	s.False(phase.Applied)
	s.Equal(models.PhaseCompleted, phase.Day.Phase)

	trialOut, err := s.gameService.ProcessTrialResults(s.ctx, &ProcessTrialResultsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.False(trialOut.Applied)
	s.Nil(trialOut.Result)

	_, err = s.gameService.SwitchToDay(s.ctx, &SwitchToDayInput{SessionID: s.testSessionID, Day: 9})
	s.ErrorIs(err, ErrDayNotFound)
}

func (s *GameServiceTestSuite) TestEliminateReviveAcrossDays() {
	s.startGame(7)

	_, err := s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	_, err = s.gameService.StartNextDay(s.ctx, &StartNextDayInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.False(s.roster().Roster.IsAlive(4))

	out, err := s.gameService.RevivePlayer(s.ctx, &RevivePlayerInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	s.True(out.Applied)
	s.True(s.roster().Roster.IsAlive(4))

	elimDay, err := s.gameService.GetEliminationDay(s.ctx, &GetEliminationDayInput{SessionID: s.testSessionID, PlayerID: 4})
	s.Require().NoError(err)
	s.True(elimDay.Found)
	s.Equal(1, elimDay.Day)
	s.Equal(models.EliminationReasonManual, elimDay.Elimination.Reason)

	_, err = s.gameService.SwitchToDay(s.ctx, &SwitchToDayInput{SessionID: s.testSessionID, Day: 1})
	s.Require().NoError(err)
	s.False(s.roster().Roster.IsAlive(4))

	days, err := s.gameService.ListDays(s.ctx, &ListDaysInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Require().Len(days.Days, 2)
	s.True(days.Days[0].IsViewed)
	s.True(days.Days[0].IsReadOnly)
	s.True(days.Days[1].IsActive)
	s.Equal(1, days.Days[0].Eliminations)
	s.Equal(0, days.Days[1].Eliminations)
}

func (s *GameServiceTestSuite) TestVictoryBlocksNight() {
	s.startGame(7)

	_, err := s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: 0})
	s.Require().NoError(err)
	out, err := s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: 1})
	s.Require().NoError(err)
	s.Equal(models.VictoryCitizensWin, out.Victory)

	_, err = s.gameService.SetPhase(s.ctx, &SetPhaseInput{SessionID: s.testSessionID, Phase: models.PhaseNight})
	s.ErrorIs(err, ErrGameOver)

	_, err = s.gameService.StartNextDay(s.ctx, &StartNextDayInput{SessionID: s.testSessionID})
	s.ErrorIs(err, ErrGameOver)

	finished, err := s.gameService.FinishCurrentDay(s.ctx, &FinishCurrentDayInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.True(finished.Applied)
	s.True(finished.Day.IsReadOnly)

	again, err := s.gameService.FinishCurrentDay(s.ctx, &FinishCurrentDayInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.False(again.Applied)
}

func (s *GameServiceTestSuite) TestMafiaWin() {
	s.startGame(7)

	for _, id := range []int{2, 3, 4} {
		_, err := s.gameService.EliminatePlayer(s.ctx, &EliminatePlayerInput{SessionID: s.testSessionID, PlayerID: id})
		s.Require().NoError(err)
	}

	out, err := s.gameService.GetVictory(s.ctx, &GetVictoryInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(models.VictoryMafiaWin, out.Victory)
}

func (s *GameServiceTestSuite) TestGetDayEvents() {
	s.startGame(7)

	_, err := s.gameService.RecordSpeaking(s.ctx, &RecordSpeakingInput{SessionID: s.testSessionID, PlayerID: 2})
	s.Require().NoError(err)

	out, err := s.gameService.GetDayEvents(s.ctx, &GetDayEventsInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(1, out.Day)
	s.Require().Len(out.Events, 2)
	s.Equal(models.EventTypeDayStart, out.Events[0].Type)
	s.Equal(models.EventTypeSpeaking, out.Events[1].Type)
	s.Equal(s.testTime, out.Events[1].Timestamp)

	_, err = s.gameService.GetDayEvents(s.ctx, &GetDayEventsInput{SessionID: s.testSessionID, Day: 4})
	s.ErrorIs(err, ErrDayNotFound)
}

func (s *GameServiceTestSuite) TestSessionErrors() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.mockedService.GetCurrentDay(s.ctx, &GetCurrentDayInput{SessionID: s.testSessionID})
	s.ErrorIs(err, ErrSessionNotFound)

	expectedError := errors.New("connection refused")
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(nil, expectedError)

	_, err = s.mockedService.SaveVotes(s.ctx, &SaveVotesInput{SessionID: s.testSessionID})
	s.ErrorIs(err, expectedError)

	_, err = s.mockedService.GetRoster(s.ctx, &GetRosterInput{})
	s.ErrorIs(err, ErrMissingSessionID)
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}
