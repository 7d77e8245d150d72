package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/roles"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
)

// ErrUnknownSubcommand is returned for subcommands the bot does not register
var ErrUnknownSubcommand = errors.New("unknown subcommand")

// MafiaCommandConfig holds the dependencies of the /mafia command
type MafiaCommandConfig struct {
	DefaultPlayerCount int

	GameService  game.Service
	NightService nightService.Service
	Messaging    messaging.Service

	Logger zerolog.Logger
}

// MafiaCommand handles the /mafia command. Every response is ephemeral since
// the moderator sees the roles.
type MafiaCommand struct {
	BaseCommand
	defaultPlayers int
	gameService    game.Service
	nightService   nightService.Service
	messaging      messaging.Service
	logger         zerolog.Logger
}

type subcommandFunc func(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error)

func subcommand(name, description string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     opts,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// NewMafiaCommand creates a new mafia command handler
func NewMafiaCommand(cfg *MafiaCommandConfig) *MafiaCommand {
	minPlayers := float64(roles.MinPlayers)
	defaultPlayers := cfg.DefaultPlayerCount
	if defaultPlayers == 0 {
		defaultPlayers = roles.DefaultPlayers
	}

	return &MafiaCommand{
		BaseCommand: BaseCommand{
			Name:        "mafia",
			Description: "Moderate a game of Mafia",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("start", "Start a new game and shuffle the roles", &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "players",
					Description: "Number of players",
					MinValue:    &minPlayers,
					MaxValue:    float64(roles.MaxPlayers),
				}),
				subcommand("name", "Name the player of a slot and reveal their role",
					slotOption("slot", "Slot number"),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Player name",
						Required:    true,
					}),
				subcommand("roster", "Show players as of the viewed day"),
				subcommand("god", "Show every role by faction"),
				subcommand("phase", "Change the phase of the day", &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "phase",
					Description: "New phase",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Discussion", Value: string(models.PhaseDiscussion)},
						{Name: "Voting", Value: string(models.PhaseVoting)},
						{Name: "Trial", Value: string(models.PhaseTrial)},
						{Name: "Night", Value: string(models.PhaseNight)},
					},
				}),
				subcommand("speak", "Record a speaking turn", slotOption("slot", "Speaker")),
				subcommand("challenge", "Record a challenge", slotOption("from", "Challenger"), slotOption("to", "Challenged player")),
				subcommand("maxchallenges", "Set the per-player challenge limit", intOption("limit", "Challenges a player may receive", true)),
				subcommand("vote", "Set the open votes of a player", slotOption("slot", "Player"), intOption("votes", "Vote count", true)),
				subcommand("final", "Set the final trial votes of a candidate", slotOption("slot", "Candidate"), intOption("votes", "Vote count", true)),
				subcommand("verdict", "Process the trial"),
				subcommand("eliminate", "Eliminate a player", slotOption("slot", "Player")),
				subcommand("revive", "Bring a player back", slotOption("slot", "Player")),
				subcommand("night", "Begin or show the night"),
				subcommand("nextday", "Freeze today and start the next day"),
				subcommand("finish", "Freeze the current day"),
				subcommand("day", "View another day", intOption("number", "Day number", true)),
				subcommand("days", "List every day"),
				subcommand("events", "Show the event log of a day", intOption("number", "Day number, the viewed day by default", false)),
				subcommand("victory", "Evaluate the win condition"),
				subcommand("reset", "Discard the current game"),
			},
		},
		defaultPlayers: defaultPlayers,
		gameService:    cfg.GameService,
		nightService:   cfg.NightService,
		messaging:      cfg.Messaging,
		logger:         cfg.Logger.With().Str("component", "MafiaCommand").Logger(),
	}
}

func (c *MafiaCommand) subcommands() map[string]subcommandFunc {
	return map[string]subcommandFunc{
		"start":         c.handleStart,
		"name":          c.handleName,
		"roster":        c.handleRoster,
		"god":           c.handleGodView,
		"phase":         c.handlePhase,
		"speak":         c.handleSpeak,
		"challenge":     c.handleChallenge,
		"maxchallenges": c.handleMaxChallenges,
		"vote":          c.handleVote,
		"final":         c.handleFinal,
		"verdict":       c.handleVerdict,
		"eliminate":     c.handleEliminate,
		"revive":        c.handleRevive,
		"night":         c.handleNight,
		"nextday":       c.handleNextDay,
		"finish":        c.handleFinish,
		"day":           c.handleDay,
		"days":          c.handleDays,
		"events":        c.handleEvents,
		"victory":       c.handleVictory,
		"reset":         c.handleReset,
	}
}

// Handle processes a Discord interaction for the mafia command
func (c *MafiaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	response, err := c.Execute(ctx, i.ChannelID, data.Options[0])
	if err != nil {
		response = errorResponse(ctx, c.messaging, c.logger, err)
	}
	return RespondWithEphemeralData(s, i, response)
}

// Execute runs one subcommand for the session of a channel
func (c *MafiaCommand) Execute(ctx context.Context, sessionID string, opt *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	if opt == nil {
		return nil, ErrUnknownSubcommand
	}
	fn, ok := c.subcommands()[opt.Name]
	if !ok {
		return nil, ErrUnknownSubcommand
	}

	c.logger.Debug().Str("session_id", sessionID).Str("subcommand", opt.Name).Msg("Handling subcommand")
	return fn(ctx, sessionID, optionsOf(opt))
}

// slot converts a 1-based slot option into a player ID
func slot(opts options, name string) int {
	return opts.Int(name, 0) - 1
}

// resultData turns a day mutation into a response, noting read-only no-ops
func (c *MafiaCommand) resultData(ctx context.Context, result game.DayResult, title, description string) (*discordgo.InteractionResponseData, error) {
	if !result.Applied {
		return embedData(messageEmbed("Nothing changed", "The viewed day is read-only or already in that state.", colorNotice)), nil
	}

	embeds := []*discordgo.MessageEmbed{messageEmbed(title, description, colorCitizen)}
	victory, err := victoryEmbed(ctx, c.messaging, result.Victory)
	if err != nil {
		return nil, err
	}
	if victory != nil {
		embeds = append(embeds, victory)
	}
	return embedData(embeds...), nil
}

func (c *MafiaCommand) handleStart(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.StartGame(ctx, &game.StartGameInput{
		SessionID:   sessionID,
		PlayerCount: opts.Int("players", c.defaultPlayers),
	})
	if err != nil {
		return nil, err
	}
	return embedData(messageEmbed(
		"Game started",
		fmt.Sprintf("%d players. Use `/mafia name` to name each slot and reveal its role.", out.Session.PlayerCount),
		colorCitizen,
	)), nil
}

func (c *MafiaCommand) handleName(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	id := slot(opts, "slot")

	selected, err := c.gameService.SelectPlayer(ctx, &game.SelectPlayerInput{SessionID: sessionID, SlotIndex: id})
	if err != nil {
		return nil, err
	}
	if selected.AlreadyAssigned {
		return nil, game.ErrSlotAlreadyAssigned
	}

	out, err := c.gameService.ConfirmPlayer(ctx, &game.ConfirmPlayerInput{
		SessionID: sessionID,
		SlotIndex: id,
		Name:      opts.String("name", ""),
	})
	if err != nil {
		return nil, err
	}
	return embedData(renderRevealEmbed(out)), nil
}

func (c *MafiaCommand) handleRoster(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	roster, err := c.gameService.GetRoster(ctx, &game.GetRosterInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	day, err := c.gameService.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	reasons := map[int]string{}
	for id, elim := range roster.Eliminations {
		if elim.Revived {
			continue
		}
		out, err := c.messaging.DescribeElimination(ctx, &messaging.DescribeEliminationInput{Elimination: elim})
		if err != nil {
			return nil, err
		}
		reasons[id] = out.Reason
	}
	return embedData(renderRosterEmbed(day, roster, reasons)), nil
}

func (c *MafiaCommand) handleGodView(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.GetGodView(ctx, &game.GetGodViewInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return embedData(renderGodViewEmbed(out)), nil
}

func (c *MafiaCommand) handlePhase(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	phase := models.Phase(opts.String("phase", ""))
	if phase == models.PhaseNight {
		return c.handleNight(ctx, sessionID, opts)
	}

	out, err := c.gameService.SetPhase(ctx, &game.SetPhaseInput{SessionID: sessionID, Phase: phase})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, messaging.PhaseLabel(out.Day.Phase), fmt.Sprintf("Day %d", out.Day.Number))
}

func (c *MafiaCommand) handleSpeak(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	id := slot(opts, "slot")
	out, err := c.gameService.RecordSpeaking(ctx, &game.RecordSpeakingInput{SessionID: sessionID, PlayerID: id})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Speaking turn", fmt.Sprintf("Slot %d spoke", id+1))
}

func (c *MafiaCommand) handleChallenge(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	from, to := slot(opts, "from"), slot(opts, "to")
	out, err := c.gameService.RecordChallenge(ctx, &game.RecordChallengeInput{
		SessionID:    sessionID,
		ChallengerID: from,
		ChallengeeID: to,
	})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Challenge",
		fmt.Sprintf("Slot %d has %d of %d challenges", to+1, out.Received, out.Day.MaxChallenges))
}

func (c *MafiaCommand) handleMaxChallenges(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.SetMaxChallenges(ctx, &game.SetMaxChallengesInput{
		SessionID:     sessionID,
		MaxChallenges: opts.Int("limit", 0),
	})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Challenge limit", fmt.Sprintf("%d per player", out.Day.MaxChallenges))
}

func (c *MafiaCommand) handleVote(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	day, err := c.gameService.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	votes := day.Day.Votes.Clone()
	votes[slot(opts, "slot")] = opts.Int("votes", 0)

	out, err := c.gameService.SaveVotes(ctx, &game.SaveVotesInput{SessionID: sessionID, Votes: votes})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Votes",
		fmt.Sprintf("%d votes put a player on trial.\nCandidates: %s", out.Required, renderPlayers(out.Candidates)))
}

func (c *MafiaCommand) handleFinal(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	day, err := c.gameService.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	votes := day.Day.TrialVotes.Clone()
	votes[slot(opts, "slot")] = opts.Int("votes", 0)

	out, err := c.gameService.SaveTrialVotes(ctx, &game.SaveTrialVotesInput{SessionID: sessionID, TrialVotes: votes})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Final votes", "Saved")
}

func (c *MafiaCommand) handleVerdict(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.ProcessTrialResults(ctx, &game.ProcessTrialResultsInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	if out.Result == nil {
		return c.resultData(ctx, out.DayResult, "", "")
	}

	roster, err := c.gameService.GetRoster(ctx, &game.GetRosterInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	msg, err := c.messaging.GetTrialResultMessage(ctx, &messaging.GetTrialResultMessageInput{
		Result: out.Result,
		Roster: roster.Roster,
	})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, msg.Title, msg.Message)
}

func (c *MafiaCommand) handleEliminate(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	id := slot(opts, "slot")
	out, err := c.gameService.EliminatePlayer(ctx, &game.EliminatePlayerInput{
		SessionID: sessionID,
		PlayerID:  id,
		Reason:    models.EliminationReasonManual,
	})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Eliminated", fmt.Sprintf("Slot %d is out", id+1))
}

func (c *MafiaCommand) handleRevive(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	id := slot(opts, "slot")
	out, err := c.gameService.RevivePlayer(ctx, &game.RevivePlayerInput{SessionID: sessionID, PlayerID: id})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, "Revived", fmt.Sprintf("Slot %d is back", id+1))
}

func (c *MafiaCommand) handleNight(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.nightService.BeginNight(ctx, &nightService.BeginNightInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return nightResponse(ctx, c.messaging, out.View, nil)
}

func (c *MafiaCommand) handleNextDay(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.StartNextDay(ctx, &game.StartNextDayInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, fmt.Sprintf("Day %d", out.Day.Number), "Discussion is open")
}

func (c *MafiaCommand) handleFinish(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.FinishCurrentDay(ctx, &game.FinishCurrentDayInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return c.resultData(ctx, out.DayResult, fmt.Sprintf("Day %d completed", out.Day.Number), "The day is now read-only")
}

func (c *MafiaCommand) handleDay(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	if _, err := c.gameService.SwitchToDay(ctx, &game.SwitchToDayInput{
		SessionID: sessionID,
		Day:       opts.Int("number", 0),
	}); err != nil {
		return nil, err
	}
	return c.handleRoster(ctx, sessionID, opts)
}

func (c *MafiaCommand) handleDays(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.ListDays(ctx, &game.ListDaysInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return embedData(renderDaysEmbed(out.Days)), nil
}

func (c *MafiaCommand) handleEvents(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.GetDayEvents(ctx, &game.GetDayEventsInput{
		SessionID: sessionID,
		Day:       opts.Int("number", 0),
	})
	if err != nil {
		return nil, err
	}
	roster, err := c.gameService.GetRoster(ctx, &game.GetRosterInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	lines := make([]*messaging.DescribeEventOutput, 0, len(out.Events))
	for _, e := range out.Events {
		line, err := c.messaging.DescribeEvent(ctx, &messaging.DescribeEventInput{Event: e, Roster: roster.Roster})
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return embedData(renderEventsEmbed(out.Day, lines)), nil
}

func (c *MafiaCommand) handleVictory(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.GetVictory(ctx, &game.GetVictoryInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	embed, err := victoryEmbed(ctx, c.messaging, out.Victory)
	if err != nil {
		return nil, err
	}
	if embed == nil {
		embed = messageEmbed("Game in progress", "No side has won yet.", colorNotice)
	}
	return embedData(embed), nil
}

func (c *MafiaCommand) handleReset(ctx context.Context, sessionID string, opts options) (*discordgo.InteractionResponseData, error) {
	if _, err := c.gameService.ResetGame(ctx, &game.ResetGameInput{SessionID: sessionID}); err != nil {
		return nil, err
	}
	return embedData(messageEmbed("Game discarded", "Use `/mafia start` to begin a new one.", colorNotice)), nil
}
