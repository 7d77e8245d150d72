// Package console is the local moderator console. It reads commands from a
// line editor and renders the game state as tables.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
)

// ErrQuit is returned by Execute when the moderator leaves the console
var ErrQuit = errors.New("quit")

const prompt = "mafia> "

// Config holds the configuration for the console
type Config struct {
	// SessionID keys the console's game in storage
	SessionID string

	// DefaultPlayerCount is used by start without an argument
	DefaultPlayerCount int

	// Countdown lengths for the timer command
	SpeakingTime  time.Duration
	ChallengeTime time.Duration

	GameService  game.Service
	NightService nightService.Service
	Messaging    messaging.Service

	// Out defaults to stdout
	Out io.Writer

	Logger zerolog.Logger
}

type handlerFunc func(ctx context.Context, cmd *Command) error

// Console dispatches moderator commands to the services
type Console struct {
	config   *Config
	out      io.Writer
	logger   zerolog.Logger
	handlers map[string]handlerFunc
	help     []helpEntry

	game      game.Service
	night     nightService.Service
	messaging messaging.Service
}

type helpEntry struct {
	usage       string
	description string
}

// New creates a new console
func New(cfg *Config) (*Console, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.NightService == nil {
		return nil, errors.New("night service cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	c := &Console{
		config:    cfg,
		out:       out,
		logger:    cfg.Logger.With().Str("component", "Console").Logger(),
		game:      cfg.GameService,
		night:     cfg.NightService,
		messaging: cfg.Messaging,
	}
	c.register()
	return c, nil
}

func (c *Console) handle(name, usage, description string, fn handlerFunc, aliases ...string) {
	c.handlers[name] = fn
	for _, alias := range aliases {
		c.handlers[alias] = fn
	}
	c.help = append(c.help, helpEntry{usage: usage, description: description})
}

func (c *Console) register() {
	c.handlers = make(map[string]handlerFunc)

	c.handle("help", "help", "show this list", c.handleHelp, "?")
	c.handle("start", "start [players]", "start a new game and shuffle roles", c.handleStart)
	c.handle("name", "name <slot> <name>", "name the player of a slot and reveal their role", c.handleName)
	c.handle("roster", "roster", "show players as of the viewed day", c.handleRoster, "r")
	c.handle("god", "god", "show every role by faction", c.handleGodView)
	c.handle("phase", "phase <discussion|voting|trial|night>", "change the phase of the day", c.handlePhase)
	c.handle("speak", "speak <slot>", "record a speaking turn", c.handleSpeak)
	c.handle("challenge", "challenge <from> <to>", "record a challenge", c.handleChallenge)
	c.handle("challengees", "challengees <slot>", "list who a player may challenge", c.handleChallengees)
	c.handle("maxchallenges", "maxchallenges <n>", "set the per-player challenge limit", c.handleMaxChallenges)
	c.handle("resetchallenges", "resetchallenges", "clear the day's challenges", c.handleResetChallenges)
	c.handle("timer", "timer <speak|challenge>", "run a countdown", c.handleTimer)
	c.handle("vote", "vote <slot=count>... | vote reset", "record open votes", c.handleVote)
	c.handle("candidates", "candidates", "show the trial candidates", c.handleCandidates)
	c.handle("final", "final <slot=count>... | final reset", "record final trial votes", c.handleFinal)
	c.handle("verdict", "verdict", "process the trial", c.handleVerdict)
	c.handle("kill", "kill <slot>", "eliminate a player", c.handleKill)
	c.handle("revive", "revive <slot>", "bring a player back", c.handleRevive)
	c.handle("night", "night", "begin or show the night", c.handleNight, "n")
	c.handle("target", "target <slot>...", "toggle night targets", c.handleTarget, "t")
	c.handle("action", "action <kill|negotiate>", "choose the mafia action", c.handleAction)
	c.handle("confirm", "confirm", "confirm the current night phase", c.handleConfirm)
	c.handle("skip", "skip", "skip the current night phase", c.handleSkip)
	c.handle("dawn", "dawn", "complete the night", c.handleDawn)
	c.handle("nextday", "nextday", "freeze today and start the next day", c.handleNextDay)
	c.handle("finish", "finish", "freeze the current day", c.handleFinish)
	c.handle("day", "day <n>", "view another day", c.handleDay)
	c.handle("days", "days", "list every day", c.handleDays)
	c.handle("events", "events [n]", "show the event log of a day", c.handleEvents, "log")
	c.handle("eliminated", "eliminated <slot>", "show when a player was eliminated", c.handleEliminated)
	c.handle("victory", "victory", "evaluate the win condition", c.handleVictory)
	c.handle("reset", "reset", "discard the current game", c.handleReset)
	c.handle("quit", "quit", "leave the console", c.handleQuit, "exit")
}

// Commands returns every command name and alias, sorted
func (c *Console) Commands() []string {
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one console line
func (c *Console) Execute(ctx context.Context, line string) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}

	fn, ok := c.handlers[cmd.Name]
	if !ok {
		return fmt.Errorf("unknown command %q, type help", cmd.Name)
	}
	return fn(ctx, cmd)
}

// Run reads commands until quit, EOF or ctx is cancelled
func (c *Console) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var matches []string
		for _, name := range c.Commands() {
			if strings.HasPrefix(name, strings.ToLower(input)) {
				matches = append(matches, name)
			}
		}
		return matches
	})

	color.New(color.FgHiWhite, color.Bold).Fprintln(c.out, "Mafia moderator console. Type help for commands.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if err := c.Execute(ctx, input); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			c.printError(ctx, err)
		}
	}
}

func (c *Console) printError(ctx context.Context, err error) {
	var parseErr ParseError
	if errors.As(err, &parseErr) {
		color.New(color.FgRed).Fprintln(c.out, capitalize(parseErr.Error()))
		return
	}

	out, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil || out.Title == "Something went wrong" {
		c.logger.Error().Err(err).Msg("Command failed")
		color.New(color.FgRed).Fprintln(c.out, err.Error())
		return
	}
	color.New(color.FgRed).Fprintf(c.out, "%s: %s\n", out.Title, out.Message)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *Console) handleHelp(ctx context.Context, cmd *Command) error {
	c.renderHelp()
	return nil
}

func (c *Console) handleQuit(ctx context.Context, cmd *Command) error {
	return ErrQuit
}

func (c *Console) handleStart(ctx context.Context, cmd *Command) error {
	count := c.config.DefaultPlayerCount
	if len(cmd.Args) > 0 {
		n, err := cmd.Int(0)
		if err != nil {
			return err
		}
		count = n
	}

	out, err := c.game.StartGame(ctx, &game.StartGameInput{
		SessionID:   c.config.SessionID,
		PlayerCount: count,
	})
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(c.out, "Game started with %d players. Name each slot with: name <slot> <name>\n", out.Session.PlayerCount)
	return c.handleRoster(ctx, cmd)
}

func (c *Console) handleName(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	name := cmd.Rest(1)
	if name == "" {
		return ErrMissingArg
	}

	selected, err := c.game.SelectPlayer(ctx, &game.SelectPlayerInput{
		SessionID: c.config.SessionID,
		SlotIndex: id,
	})
	if err != nil {
		return err
	}
	if selected.AlreadyAssigned {
		return game.ErrSlotAlreadyAssigned
	}

	out, err := c.game.ConfirmPlayer(ctx, &game.ConfirmPlayerInput{
		SessionID: c.config.SessionID,
		SlotIndex: id,
		Name:      name,
	})
	if err != nil {
		return err
	}

	c.renderReveal(out)
	return nil
}

func (c *Console) handleRoster(ctx context.Context, cmd *Command) error {
	out, err := c.game.GetRoster(ctx, &game.GetRosterInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	day, err := c.game.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	return c.renderRoster(ctx, day, out)
}

func (c *Console) handleGodView(ctx context.Context, cmd *Command) error {
	out, err := c.game.GetGodView(ctx, &game.GetGodViewInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderGodView(out)
	return nil
}

func (c *Console) handlePhase(ctx context.Context, cmd *Command) error {
	raw, err := cmd.Arg(0)
	if err != nil {
		return err
	}

	phase := models.Phase(strings.ToLower(raw))
	if phase == models.PhaseNight {
		return c.handleNight(ctx, cmd)
	}

	out, err := c.game.SetPhase(ctx, &game.SetPhaseInput{
		SessionID: c.config.SessionID,
		Phase:     phase,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Phase: %s", messaging.PhaseLabel(out.Day.Phase)))
	return nil
}

func (c *Console) handleSpeak(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	out, err := c.game.RecordSpeaking(ctx, &game.RecordSpeakingInput{
		SessionID: c.config.SessionID,
		PlayerID:  id,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Slot %d spoke", id+1))
	return nil
}

func (c *Console) handleChallenge(ctx context.Context, cmd *Command) error {
	from, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	to, err := cmd.Slot(1)
	if err != nil {
		return err
	}

	out, err := c.game.RecordChallenge(ctx, &game.RecordChallengeInput{
		SessionID:    c.config.SessionID,
		ChallengerID: from,
		ChallengeeID: to,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Slot %d has %d of %d challenges", to+1, out.Received, out.Day.MaxChallenges))
	return nil
}

func (c *Console) handleChallengees(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	out, err := c.game.GetAvailableChallengees(ctx, &game.GetAvailableChallengeesInput{
		SessionID:    c.config.SessionID,
		ChallengerID: id,
	})
	if err != nil {
		return err
	}
	c.renderPlayers("Can be challenged", out.Players)
	return nil
}

func (c *Console) handleMaxChallenges(ctx context.Context, cmd *Command) error {
	n, err := cmd.Int(0)
	if err != nil {
		return err
	}
	out, err := c.game.SetMaxChallenges(ctx, &game.SetMaxChallengesInput{
		SessionID:     c.config.SessionID,
		MaxChallenges: n,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Challenge limit: %d", out.Day.MaxChallenges))
	return nil
}

func (c *Console) handleResetChallenges(ctx context.Context, cmd *Command) error {
	out, err := c.game.ResetChallenges(ctx, &game.ResetChallengesInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, "Challenges cleared")
	return nil
}

func (c *Console) handleTimer(ctx context.Context, cmd *Command) error {
	kind, err := cmd.Arg(0)
	if err != nil {
		return err
	}

	var d time.Duration
	switch strings.ToLower(kind) {
	case "speak", "speaking":
		d = c.config.SpeakingTime
	case "challenge":
		d = c.config.ChallengeTime
	default:
		return ErrMissingArg
	}

	return Countdown(ctx, d, time.Second, func(remaining time.Duration) {
		if remaining == 0 {
			color.New(color.FgYellow, color.Bold).Fprintln(c.out, "Time!")
			return
		}
		fmt.Fprintf(c.out, "%s\n", remaining)
	})
}

func (c *Console) handleVote(ctx context.Context, cmd *Command) error {
	if len(cmd.Args) == 1 && strings.EqualFold(cmd.Args[0], "reset") {
		out, err := c.game.ResetVotes(ctx, &game.ResetVotesInput{SessionID: c.config.SessionID})
		if err != nil {
			return err
		}
		c.renderResult(out.DayResult, "Votes cleared")
		return nil
	}

	updates, err := ParseVotes(cmd.Args)
	if err != nil {
		return err
	}
	day, err := c.game.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}

	out, err := c.game.SaveVotes(ctx, &game.SaveVotesInput{
		SessionID: c.config.SessionID,
		Votes:     Merge(day.Day.Votes, updates),
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("%d votes put a player on trial", out.Required))
	c.renderPlayers("Candidates", out.Candidates)
	return nil
}

func (c *Console) handleCandidates(ctx context.Context, cmd *Command) error {
	out, err := c.game.GetTrialCandidates(ctx, &game.GetTrialCandidatesInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d votes required\n", out.Required)
	c.renderPlayers("Candidates", out.Candidates)
	return nil
}

func (c *Console) handleFinal(ctx context.Context, cmd *Command) error {
	if len(cmd.Args) == 1 && strings.EqualFold(cmd.Args[0], "reset") {
		out, err := c.game.ResetTrialVotes(ctx, &game.ResetTrialVotesInput{SessionID: c.config.SessionID})
		if err != nil {
			return err
		}
		c.renderResult(out.DayResult, "Final votes cleared")
		return nil
	}

	updates, err := ParseVotes(cmd.Args)
	if err != nil {
		return err
	}
	day, err := c.game.GetCurrentDay(ctx, &game.GetCurrentDayInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}

	out, err := c.game.SaveTrialVotes(ctx, &game.SaveTrialVotesInput{
		SessionID:  c.config.SessionID,
		TrialVotes: Merge(day.Day.TrialVotes, updates),
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, "Final votes saved")
	return nil
}

func (c *Console) handleVerdict(ctx context.Context, cmd *Command) error {
	out, err := c.game.ProcessTrialResults(ctx, &game.ProcessTrialResultsInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	if out.Result == nil {
		c.renderResult(out.DayResult, "")
		return nil
	}

	roster, err := c.game.GetRoster(ctx, &game.GetRosterInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	msg, err := c.messaging.GetTrialResultMessage(ctx, &messaging.GetTrialResultMessageInput{
		Result: out.Result,
		Roster: roster.Roster,
	})
	if err != nil {
		return err
	}

	c.heading(msg.Title)
	fmt.Fprintln(c.out, msg.Message)
	return c.renderVictory(ctx, out.Victory)
}

func (c *Console) handleKill(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	out, err := c.game.EliminatePlayer(ctx, &game.EliminatePlayerInput{
		SessionID: c.config.SessionID,
		PlayerID:  id,
		Reason:    models.EliminationReasonManual,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Slot %d eliminated", id+1))
	return c.renderVictory(ctx, out.Victory)
}

func (c *Console) handleRevive(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	out, err := c.game.RevivePlayer(ctx, &game.RevivePlayerInput{
		SessionID: c.config.SessionID,
		PlayerID:  id,
	})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Slot %d revived", id+1))
	return nil
}

func (c *Console) handleNight(ctx context.Context, cmd *Command) error {
	out, err := c.night.BeginNight(ctx, &nightService.BeginNightInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	return c.renderNight(ctx, out.View)
}

func (c *Console) handleTarget(ctx context.Context, cmd *Command) error {
	if len(cmd.Args) == 0 {
		return ErrMissingArg
	}

	var view nightService.View
	for i := range cmd.Args {
		id, err := cmd.Slot(i)
		if err != nil {
			return err
		}
		out, err := c.night.SelectTarget(ctx, &nightService.SelectTargetInput{
			SessionID: c.config.SessionID,
			PlayerID:  id,
		})
		if err != nil {
			return err
		}
		view = out.View
	}
	return c.renderNight(ctx, view)
}

func (c *Console) handleAction(ctx context.Context, cmd *Command) error {
	raw, err := cmd.Arg(0)
	if err != nil {
		return err
	}

	action := models.NightActionMafiaKill
	if strings.HasPrefix(strings.ToLower(raw), "neg") {
		action = models.NightActionMafiaNegotiate
	}

	out, err := c.night.SetMafiaAction(ctx, &nightService.SetMafiaActionInput{
		SessionID: c.config.SessionID,
		Action:    action,
	})
	if err != nil {
		return err
	}
	return c.renderNight(ctx, out.View)
}

func (c *Console) handleConfirm(ctx context.Context, cmd *Command) error {
	out, err := c.night.ConfirmAction(ctx, &nightService.ConfirmActionInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderRecord(out.Record)
	return c.renderNight(ctx, out.View)
}

func (c *Console) handleSkip(ctx context.Context, cmd *Command) error {
	out, err := c.night.SkipPhase(ctx, &nightService.SkipPhaseInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderRecord(out.Record)
	return c.renderNight(ctx, out.View)
}

func (c *Console) handleDawn(ctx context.Context, cmd *Command) error {
	out, err := c.night.CompleteNight(ctx, &nightService.CompleteNightInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}

	if out.NextDay != nil {
		c.heading(fmt.Sprintf("Day %d", out.NextDay.Number))
	}
	if err := c.renderVictory(ctx, out.Victory); err != nil {
		return err
	}
	return c.handleRoster(ctx, cmd)
}

func (c *Console) handleNextDay(ctx context.Context, cmd *Command) error {
	out, err := c.game.StartNextDay(ctx, &game.StartNextDayInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Day %d started", out.Day.Number))
	return nil
}

func (c *Console) handleFinish(ctx context.Context, cmd *Command) error {
	out, err := c.game.FinishCurrentDay(ctx, &game.FinishCurrentDayInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderResult(out.DayResult, fmt.Sprintf("Day %d completed", out.Day.Number))
	return nil
}

func (c *Console) handleDay(ctx context.Context, cmd *Command) error {
	n, err := cmd.Int(0)
	if err != nil {
		return err
	}
	out, err := c.game.SwitchToDay(ctx, &game.SwitchToDayInput{
		SessionID: c.config.SessionID,
		Day:       n,
	})
	if err != nil {
		return err
	}
	if out.IsActive {
		c.heading(fmt.Sprintf("Day %d (active)", out.Day.Number))
	} else {
		c.heading(fmt.Sprintf("Day %d (read-only)", out.Day.Number))
	}
	return c.handleRoster(ctx, cmd)
}

func (c *Console) handleDays(ctx context.Context, cmd *Command) error {
	out, err := c.game.ListDays(ctx, &game.ListDaysInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	c.renderDays(out.Days)
	return nil
}

func (c *Console) handleEvents(ctx context.Context, cmd *Command) error {
	day := 0
	if len(cmd.Args) > 0 {
		n, err := cmd.Int(0)
		if err != nil {
			return err
		}
		day = n
	}

	out, err := c.game.GetDayEvents(ctx, &game.GetDayEventsInput{
		SessionID: c.config.SessionID,
		Day:       day,
	})
	if err != nil {
		return err
	}
	roster, err := c.game.GetRoster(ctx, &game.GetRosterInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	return c.renderEvents(ctx, out.Day, out.Events, roster.Roster)
}

func (c *Console) handleEliminated(ctx context.Context, cmd *Command) error {
	id, err := cmd.Slot(0)
	if err != nil {
		return err
	}
	out, err := c.game.GetEliminationDay(ctx, &game.GetEliminationDayInput{
		SessionID: c.config.SessionID,
		PlayerID:  id,
	})
	if err != nil {
		return err
	}
	if !out.Found {
		fmt.Fprintf(c.out, "Slot %d is alive\n", id+1)
		return nil
	}

	msg, err := c.messaging.DescribeElimination(ctx, &messaging.DescribeEliminationInput{
		PlayerName:  fmt.Sprintf("Slot %d", id+1),
		Elimination: out.Elimination,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg.Message)
	return nil
}

func (c *Console) handleVictory(ctx context.Context, cmd *Command) error {
	out, err := c.game.GetVictory(ctx, &game.GetVictoryInput{SessionID: c.config.SessionID})
	if err != nil {
		return err
	}
	if !out.Victory.IsOver() {
		fmt.Fprintln(c.out, "No side has won yet.")
		return nil
	}
	return c.renderVictory(ctx, out.Victory)
}

func (c *Console) handleReset(ctx context.Context, cmd *Command) error {
	if _, err := c.game.ResetGame(ctx, &game.ResetGameInput{SessionID: c.config.SessionID}); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(c.out, "Game discarded")
	return nil
}
