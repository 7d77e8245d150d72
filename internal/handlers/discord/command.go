package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/mafiagod/internal/roles"
)

// Embed colors
const (
	colorCitizen = 0x00ff00
	colorMafia   = 0xff0000
	colorNight   = 0x2c2f8f
	colorNotice  = 0xffcc00
	colorError   = 0xff0000
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// options indexes the options of a subcommand by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionsOf(opt *discordgo.ApplicationCommandInteractionDataOption) options {
	out := options{}
	if opt == nil {
		return out
	}
	for _, o := range opt.Options {
		out[o.Name] = o
	}
	return out
}

// Int returns the integer option or def when absent
func (o options) Int(name string, def int) int {
	if v, ok := o[name]; ok {
		return int(v.IntValue())
	}
	return def
}

// String returns the string option or def when absent
func (o options) String(name, def string) string {
	if v, ok := o[name]; ok {
		return v.StringValue()
	}
	return def
}

// Has reports whether the option was given
func (o options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// slotOption is a required 1-based player slot
func slotOption(name, description string) *discordgo.ApplicationCommandOption {
	minSlot := 1.0
	maxSlot := float64(roles.MaxPlayers)
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    true,
		MinValue:    &minSlot,
		MaxValue:    maxSlot,
	}
}

// RespondWithEphemeralData sends an ephemeral response built by a subcommand
func RespondWithEphemeralData(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	data.Flags |= discordgo.MessageFlagsEphemeral
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithError sends an error response to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, errorMessage string) error {
	return RespondWithEphemeralData(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Error",
				Description: errorMessage,
				Color:       colorError,
			},
		},
	})
}
