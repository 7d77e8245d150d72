package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     zerolog.Logger
	locks      *sessionLocks

	gameService  game.Service
	nightService nightService.Service
	messaging    messaging.Service
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// DefaultPlayerCount is used when start has no players option
	DefaultPlayerCount int

	GameService  game.Service
	NightService nightService.Service
	Messaging    messaging.Service

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
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

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:      session,
		commands:     make(map[string]CommandHandler),
		commandIDs:   make(map[string]string),
		config:       cfg,
		logger:       cfg.Logger.With().Str("component", "DiscordBot").Logger(),
		locks:        newSessionLocks(),
		gameService:  cfg.GameService,
		nightService: cfg.NightService,
		messaging:    cfg.Messaging,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	mafiaCmd := NewMafiaCommand(&MafiaCommandConfig{
		DefaultPlayerCount: b.config.DefaultPlayerCount,
		GameService:        b.gameService,
		NightService:       b.nightService,
		Messaging:          b.messaging,
		Logger:             b.logger,
	})
	if err := b.RegisterCommand(mafiaCmd); err != nil {
		return fmt.Errorf("failed to register mafia command: %w", err)
	}

	b.logger.Info().Msg("Bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Error().Err(err).Str("command", cmdName).Msg("Failed to delete command")
		} else {
			b.logger.Debug().Str("command", cmdName).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to the session user when no application ID is configured
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for the configured guild
// when set and globally otherwise
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("Registered command")

	return nil
}

// Component custom IDs of the night controls
const (
	SelectNightTarget    = "night_target"
	ButtonNightConfirm   = "night_confirm"
	ButtonNightSkip      = "night_skip"
	ButtonNightKill      = "night_kill"
	ButtonNightNegotiate = "night_negotiate"
	ButtonNightDawn      = "night_dawn"
)

// handleInteraction handles Discord interactions one at a time per channel
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	unlock := b.locks.lock(i.ChannelID)
	defer unlock()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Err(err).Str("command", name).Msg("Error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error().Err(err).Str("custom_id", i.MessageComponentData().CustomID).Msg("Error handling component interaction")
		}
	}
}

// handleComponentInteraction drives the night sequencer from the controls on
// the night message. The channel ID is the session ID.
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	data := i.MessageComponentData()
	sessionID := i.ChannelID

	var view nightService.View
	var record *models.NightActionRecord
	var err error

	switch data.CustomID {
	case SelectNightTarget:
		view, err = b.applySelection(ctx, sessionID, data.Values)
	case ButtonNightConfirm:
		var out *nightService.ConfirmActionOutput
		out, err = b.nightService.ConfirmAction(ctx, &nightService.ConfirmActionInput{SessionID: sessionID})
		if err == nil {
			view, record = out.View, out.Record
		}
	case ButtonNightSkip:
		var out *nightService.SkipPhaseOutput
		out, err = b.nightService.SkipPhase(ctx, &nightService.SkipPhaseInput{SessionID: sessionID})
		if err == nil {
			view, record = out.View, out.Record
		}
	case ButtonNightKill, ButtonNightNegotiate:
		action := models.NightActionMafiaKill
		if data.CustomID == ButtonNightNegotiate {
			action = models.NightActionMafiaNegotiate
		}
		var out *nightService.SetMafiaActionOutput
		out, err = b.nightService.SetMafiaAction(ctx, &nightService.SetMafiaActionInput{SessionID: sessionID, Action: action})
		if err == nil {
			view = out.View
		}
	case ButtonNightDawn:
		return b.handleDawn(ctx, s, i, sessionID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", data.CustomID))
	}

	if err != nil {
		return b.respondError(ctx, s, i, err)
	}

	response, err := nightResponse(ctx, b.messaging, view, record)
	if err != nil {
		return b.respondError(ctx, s, i, err)
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: response,
	})
}

// applySelection toggles targets until the selection matches values.
// Deselections go first so the eviction of a full selection never fires.
func (b *Bot) applySelection(ctx context.Context, sessionID string, values []string) (nightService.View, error) {
	current, err := b.nightService.GetNight(ctx, &nightService.GetNightInput{SessionID: sessionID})
	if err != nil {
		return nightService.View{}, err
	}

	wanted := models.IDSet{}
	for _, v := range values {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nightService.View{}, fmt.Errorf("invalid target %q: %w", v, err)
		}
		wanted.Add(id)
	}

	have := models.IDSet{}
	var toggles []int
	for _, id := range current.Night.Selected {
		have.Add(id)
		if !wanted.Has(id) {
			toggles = append(toggles, id)
		}
	}
	for _, id := range wanted.IDs() {
		if !have.Has(id) {
			toggles = append(toggles, id)
		}
	}

	view := current.View
	for _, id := range toggles {
		out, err := b.nightService.SelectTarget(ctx, &nightService.SelectTargetInput{SessionID: sessionID, PlayerID: id})
		if err != nil {
			return nightService.View{}, err
		}
		view = out.View
	}
	return view, nil
}

func (b *Bot) handleDawn(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string) error {
	out, err := b.nightService.CompleteNight(ctx, &nightService.CompleteNightInput{SessionID: sessionID})
	if err != nil {
		return b.respondError(ctx, s, i, err)
	}

	embed, err := dawnEmbed(ctx, b.messaging, out)
	if err != nil {
		return b.respondError(ctx, s, i, err)
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
}

func (b *Bot) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	data := errorResponse(ctx, b.messaging, b.logger, err)
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}
