package discord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mafiagod/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/mafiagod/internal/common/uuid/mocks"
	sessionRepo "github.com/KirkDiggler/mafiagod/internal/repositories/session"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
	shuffleMocks "github.com/KirkDiggler/mafiagod/internal/shuffle/mocks"
)

type MafiaCommandTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockShuffler *shuffleMocks.MockShuffler
	mockClock    *mocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	command      *MafiaCommand
	ctx          context.Context

	testTime  time.Time
	channelID string
}

func (s *MafiaCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockShuffler = shuffleMocks.NewMockShuffler(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.channelID = "test-channel-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-event-id").AnyTimes()
	s.mockShuffler.EXPECT().Intn(gomock.Any()).DoAndReturn(func(n int) int { return n - 1 }).AnyTimes()

	repo := sessionRepo.NewMemory()

	gameSvc, err := game.New(&game.Config{
		SessionRepo:   repo,
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zerolog.Nop(),
	})
	s.Require().NoError(err)

	nightSvc, err := nightService.New(&nightService.Config{
		SessionRepo:   repo,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zerolog.Nop(),
	})
	s.Require().NoError(err)

	msgSvc, err := messaging.NewService(&messaging.ServiceConfig{Shuffler: s.mockShuffler})
	s.Require().NoError(err)

	s.command = NewMafiaCommand(&MafiaCommandConfig{
		DefaultPlayerCount: 7,
		GameService:        gameSvc,
		NightService:       nightSvc,
		Messaging:          msgSvc,
		Logger:             zerolog.Nop(),
	})
}

func (s *MafiaCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// sub builds a subcommand option from name/value pairs. Ints are sent as
// float64 the way Discord decodes them.
func sub(name string, kv ...any) *discordgo.ApplicationCommandInteractionDataOption {
	opt := &discordgo.ApplicationCommandInteractionDataOption{
		Name: name,
		Type: discordgo.ApplicationCommandOptionSubCommand,
	}
	for i := 0; i+1 < len(kv); i += 2 {
		child := &discordgo.ApplicationCommandInteractionDataOption{Name: kv[i].(string)}
		switch v := kv[i+1].(type) {
		case int:
			child.Type = discordgo.ApplicationCommandOptionInteger
			child.Value = float64(v)
		case string:
			child.Type = discordgo.ApplicationCommandOptionString
			child.Value = v
		}
		opt.Options = append(opt.Options, child)
	}
	return opt
}

func (s *MafiaCommandTestSuite) exec(name string, kv ...any) *discordgo.InteractionResponseData {
	data, err := s.command.Execute(s.ctx, s.channelID, sub(name, kv...))
	s.Require().NoError(err, name)
	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags&discordgo.MessageFlagsEphemeral)
	return data
}

func (s *MafiaCommandTestSuite) startNamed() {
	s.exec("start")
	for i, name := range []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay", "Gus"} {
		s.exec("name", "slot", i+1, "name", name)
	}
}

func (s *MafiaCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("mafia", cmd.Name)
	s.LessOrEqual(len(cmd.Options), 25)

	for _, opt := range cmd.Options {
		_, ok := s.command.subcommands()[opt.Name]
		s.True(ok, opt.Name)
	}
}

func (s *MafiaCommandTestSuite) TestUnknownSubcommand() {
	_, err := s.command.Execute(s.ctx, s.channelID, sub("dance"))
	s.ErrorIs(err, ErrUnknownSubcommand)

	_, err = s.command.Execute(s.ctx, s.channelID, nil)
	s.ErrorIs(err, ErrUnknownSubcommand)
}

func (s *MafiaCommandTestSuite) TestStartAndName() {
	data := s.exec("start")
	s.Contains(data.Embeds[0].Description, "7 players")

	data = s.exec("name", "slot", 1, "name", "Ann")
	s.Equal("Ann is the Mafia Boss", data.Embeds[0].Title)
	s.Equal(colorMafia, data.Embeds[0].Color)
	s.Equal("6 slots left to name", data.Embeds[0].Footer.Text)

	_, err := s.command.Execute(s.ctx, s.channelID, sub("name", "slot", 1, "name", "Zed"))
	s.ErrorIs(err, game.ErrSlotAlreadyAssigned)
}

func (s *MafiaCommandTestSuite) TestStartWithPlayers() {
	data := s.exec("start", "players", 10)
	s.Contains(data.Embeds[0].Description, "10 players")
}

func (s *MafiaCommandTestSuite) TestRosterShowsEliminations() {
	s.startNamed()
	s.exec("eliminate", "slot", 5)

	data := s.exec("roster")
	s.Contains(data.Embeds[0].Description, "~~")
	s.Contains(data.Embeds[0].Description, "removed by the moderator on day 1")
	s.Equal("6 alive, 1 out", data.Embeds[0].Footer.Text)
}

func (s *MafiaCommandTestSuite) TestVoteMergesIntoDay() {
	s.startNamed()
	s.exec("phase", "phase", "voting")
	s.exec("vote", "slot", 5, "votes", 4)
	data := s.exec("vote", "slot", 6, "votes", 1)

	s.Equal("Votes", data.Embeds[0].Title)
	s.Contains(data.Embeds[0].Description, "Eve (#5)")

	out, err := s.command.gameService.GetCurrentDay(s.ctx, &game.GetCurrentDayInput{SessionID: s.channelID})
	s.Require().NoError(err)
	s.Equal(4, out.Day.Votes.Get(4))
	s.Equal(1, out.Day.Votes.Get(5))
}

func (s *MafiaCommandTestSuite) TestVictoryEmbedAppended() {
	s.startNamed()
	s.exec("eliminate", "slot", 1)

	data := s.exec("eliminate", "slot", 2)
	s.Require().Len(data.Embeds, 2)
	s.Equal("The Citizens Win", data.Embeds[1].Title)

	data = s.exec("victory")
	s.Equal("The Citizens Win", data.Embeds[0].Title)
}

func (s *MafiaCommandTestSuite) TestNightFromPhase() {
	s.startNamed()

	data := s.exec("phase", "phase", "night")
	s.Equal("Night 1: The Mafia (1/3)", data.Embeds[0].Title)
	s.Require().Len(data.Components, 2)

	menu := data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	s.Len(menu.Options, 6)
	s.Equal(1, menu.MaxValues)
}

func (s *MafiaCommandTestSuite) TestHistoryIsReadOnly() {
	s.startNamed()
	s.exec("nextday")
	s.exec("day", "number", 1)

	data := s.exec("speak", "slot", 3)
	s.Equal("Nothing changed", data.Embeds[0].Title)

	data = s.exec("days")
	s.Contains(data.Embeds[0].Description, "read-only")

	data = s.exec("events", "number", 1)
	s.Contains(data.Embeds[0].Description, "`12:00:00` Day 1 started")
}

func (s *MafiaCommandTestSuite) TestErrorResponse() {
	data := errorResponse(s.ctx, s.command.messaging, zerolog.Nop(), game.ErrSessionNotFound)
	s.Equal("No game", data.Embeds[0].Title)
	s.Equal(colorError, data.Embeds[0].Color)

	data = errorResponse(s.ctx, s.command.messaging, zerolog.Nop(), fmt.Errorf("boom"))
	s.Equal("Something went wrong", data.Embeds[0].Title)
}

func TestMafiaCommandSuite(t *testing.T) {
	suite.Run(t, new(MafiaCommandTestSuite))
}
