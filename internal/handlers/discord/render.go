package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/roles"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
)

// Discord rejects embed descriptions longer than this
const maxDescription = 4096

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

func messageEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, maxDescription),
		Color:       color,
	}
}

func embedData(embeds ...*discordgo.MessageEmbed) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: embeds,
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}

// errorResponse renders err for the moderator. Errors the messaging service
// does not recognise are logged.
func errorResponse(ctx context.Context, msg messaging.Service, logger zerolog.Logger, err error) *discordgo.InteractionResponseData {
	out, msgErr := msg.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		logger.Error().Err(err).Msg("Failed to render error")
		return embedData(messageEmbed("Error", err.Error(), colorError))
	}
	if out.Title == "Something went wrong" {
		logger.Error().Err(err).Msg("Command failed")
	}
	return embedData(messageEmbed(out.Title, out.Message, colorError))
}

func roleColor(role models.RoleName) int {
	if roles.IsMafia(role) {
		return colorMafia
	}
	return colorCitizen
}

// renderRevealEmbed shows the role of a newly named player
func renderRevealEmbed(out *game.ConfirmPlayerOutput) *discordgo.MessageEmbed {
	embed := messageEmbed(
		fmt.Sprintf("%s is the %s", out.Player.Name, messaging.RoleLabel(out.Role.Name)),
		out.Role.Description,
		roleColor(out.Role.Name),
	)
	remaining := "Every slot is named"
	if out.Remaining > 0 {
		remaining = fmt.Sprintf("%d slots left to name", out.Remaining)
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: remaining}
	return embed
}

// renderRosterEmbed lists every slot as of the viewed day. reasons maps
// eliminated players to their elimination text.
func renderRosterEmbed(day *game.GetCurrentDayOutput, out *game.GetRosterOutput, reasons map[int]string) *discordgo.MessageEmbed {
	state := "active"
	if !day.IsActive {
		state = "read-only"
	}

	var lines []string
	for _, p := range out.Roster.All {
		line := fmt.Sprintf("`%2d` **%s** %s", p.ID+1, p.Name, messaging.RoleLabel(p.Role))

		var details []string
		if v := day.Day.Votes.Get(p.ID); v > 0 {
			details = append(details, fmt.Sprintf("%d votes", v))
		}
		if v := day.Day.TrialVotes.Get(p.ID); day.Day.TrialVotes.Has(p.ID) {
			details = append(details, fmt.Sprintf("%d final", v))
		}
		if v := day.Day.Challenges.Get(p.ID); v > 0 {
			details = append(details, fmt.Sprintf("%d/%d challenges", v, day.Day.MaxChallenges))
		}
		if day.Day.PlayersWhoSpoke.Has(p.ID) {
			details = append(details, "spoke")
		}
		if reason, ok := reasons[p.ID]; ok {
			line = "~~" + line + "~~"
			details = append(details, reason)
		}
		if len(details) > 0 {
			line += " - " + strings.Join(details, ", ")
		}
		lines = append(lines, line)
	}

	embed := messageEmbed(
		fmt.Sprintf("Day %d, %s (%s)", day.Day.Number, messaging.PhaseLabel(day.Day.Phase), state),
		strings.Join(lines, "\n"),
		colorCitizen,
	)
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d alive, %d out", len(out.Roster.Alive), len(out.Roster.Dead)),
	}
	return embed
}

func renderGodViewEmbed(out *game.GetGodViewOutput) *discordgo.MessageEmbed {
	field := func(name string, entries []*game.GodViewEntry) *discordgo.MessageEmbedField {
		lines := make([]string, len(entries))
		for i, e := range entries {
			line := fmt.Sprintf("`%2d` %s: %s", e.Player.ID+1, e.Player.Name, messaging.RoleLabel(e.Role.Name))
			if !e.Alive {
				line = "~~" + line + "~~"
			}
			lines[i] = line
		}
		value := strings.Join(lines, "\n")
		if value == "" {
			value = "none"
		}
		return &discordgo.MessageEmbedField{Name: name, Value: truncate(value, 1024)}
	}

	embed := messageEmbed("God View", "", colorNight)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Mafia", out.Mafia),
		field("Citizens", out.Citizens),
	}
	return embed
}

func renderPlayers(players []*models.Player) string {
	if len(players) == 0 {
		return "none"
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = fmt.Sprintf("%s (#%d)", p.Name, p.ID+1)
	}
	return strings.Join(names, ", ")
}

func renderDaysEmbed(days []*game.DaySummary) *discordgo.MessageEmbed {
	lines := make([]string, len(days))
	for i, d := range days {
		var tags []string
		if d.IsActive {
			tags = append(tags, "active")
		}
		if d.IsViewed {
			tags = append(tags, "viewing")
		}
		if d.IsReadOnly {
			tags = append(tags, "read-only")
		}
		lines[i] = fmt.Sprintf("**Day %d** %s, %d eliminations, %d events %s",
			d.Number, messaging.PhaseLabel(d.Phase), d.Eliminations, d.Events, strings.Join(tags, " "))
	}
	return messageEmbed("Days", strings.Join(lines, "\n"), colorCitizen)
}

func renderEventsEmbed(day int, events []*messaging.DescribeEventOutput) *discordgo.MessageEmbed {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = fmt.Sprintf("`%s` %s", e.Time, e.Description)
	}
	description := strings.Join(lines, "\n")
	if description == "" {
		description = "No events"
	}
	return messageEmbed(fmt.Sprintf("Day %d events", day), description, colorCitizen)
}

func renderRecord(record *models.NightActionRecord) string {
	if record == nil {
		return ""
	}
	if record.Action == models.NightActionSkip {
		return fmt.Sprintf("%s skipped", record.Phase)
	}
	targets := make([]string, len(record.TargetIDs))
	for i, id := range record.TargetIDs {
		targets[i] = fmt.Sprintf("#%d", id+1)
	}
	line := fmt.Sprintf("%s: %s %s", record.Phase, record.Action, strings.Join(targets, ", "))
	if record.Result != "" {
		line += " -> " + record.Result
	}
	return line
}

// renderNightEmbed shows the current night phase, or the end of the night
func renderNightEmbed(view nightService.View, phase *messaging.GetNightPhaseMessageOutput, record *models.NightActionRecord) *discordgo.MessageEmbed {
	var embed *discordgo.MessageEmbed
	if view.Phase == nil || phase == nil {
		embed = messageEmbed(fmt.Sprintf("Night %d", view.Night.Day), "Every night phase is done. Press Dawn to wake the city.", colorNight)
	} else {
		embed = messageEmbed(
			fmt.Sprintf("Night %d: %s (%d/%d)", view.Night.Day, phase.Title, view.Night.Current+1, len(view.Night.Phases)),
			phase.Narration+"\n\n"+phase.Instruction,
			colorNight,
		)
		selected := make([]*models.Player, 0, len(view.Night.Selected))
		for _, id := range view.Night.Selected {
			for _, p := range view.Targets {
				if p.ID == id {
					selected = append(selected, p)
				}
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Selected",
			Value:  renderPlayers(selected),
			Inline: true,
		})
		if view.Phase.Kind == models.NightPhaseMafia {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Action",
				Value:  string(view.Night.MafiaAction),
				Inline: true,
			})
		}
	}

	if line := renderRecord(record); line != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Last: " + line}
	}
	return embed
}

// renderNightComponents returns the target menu and buttons of the current phase
func renderNightComponents(view nightService.View) []discordgo.MessageComponent {
	if view.Phase == nil {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Dawn", Style: discordgo.SuccessButton, CustomID: ButtonNightDawn},
				},
			},
		}
	}

	var rows []discordgo.MessageComponent

	if len(view.Targets) > 0 {
		selected := models.IDSet{}
		for _, id := range view.Night.Selected {
			selected.Add(id)
		}

		menuOptions := make([]discordgo.SelectMenuOption, 0, len(view.Targets))
		for _, p := range view.Targets {
			menuOptions = append(menuOptions, discordgo.SelectMenuOption{
				Label:   fmt.Sprintf("%d. %s", p.ID+1, p.Name),
				Value:   strconv.Itoa(p.ID),
				Default: selected.Has(p.ID),
			})
		}

		maxValues := view.Phase.MaxTargets
		if maxValues < 1 {
			maxValues = 1
		}
		if maxValues > len(menuOptions) {
			maxValues = len(menuOptions)
		}
		minValues := 0

		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    SelectNightTarget,
					Placeholder: "Select targets",
					MinValues:   &minValues,
					MaxValues:   maxValues,
					Options:     menuOptions,
				},
			},
		})
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Confirm",
			Style:    discordgo.SuccessButton,
			CustomID: ButtonNightConfirm,
			Disabled: len(view.Night.Selected) == 0,
		},
		discordgo.Button{Label: "Skip", Style: discordgo.SecondaryButton, CustomID: ButtonNightSkip},
	}
	if view.Phase.Kind == models.NightPhaseMafia && view.CanNegotiate {
		if view.Night.MafiaAction == models.NightActionMafiaNegotiate {
			buttons = append(buttons, discordgo.Button{Label: "Kill instead", Style: discordgo.DangerButton, CustomID: ButtonNightKill})
		} else {
			buttons = append(buttons, discordgo.Button{Label: "Negotiate instead", Style: discordgo.PrimaryButton, CustomID: ButtonNightNegotiate})
		}
	}
	rows = append(rows, discordgo.ActionsRow{Components: buttons})

	return rows
}

// nightResponse renders the night message with its controls
func nightResponse(ctx context.Context, msg messaging.Service, view nightService.View, record *models.NightActionRecord) (*discordgo.InteractionResponseData, error) {
	var phase *messaging.GetNightPhaseMessageOutput
	if view.Phase != nil {
		out, err := msg.GetNightPhaseMessage(ctx, &messaging.GetNightPhaseMessageInput{
			Phase:        view.Phase.Kind,
			Leader:       view.Leader,
			Holder:       view.Holder,
			CanNegotiate: view.CanNegotiate,
		})
		if err != nil {
			return nil, err
		}
		phase = out
	}

	data := embedData(renderNightEmbed(view, phase, record))
	data.Components = renderNightComponents(view)
	return data, nil
}

// dawnEmbed reports how the night ended
func dawnEmbed(ctx context.Context, msg messaging.Service, out *nightService.CompleteNightOutput) (*discordgo.MessageEmbed, error) {
	lines := make([]string, 0, len(out.Actions))
	for i := range out.Actions {
		lines = append(lines, renderRecord(&out.Actions[i]))
	}

	if out.Victory.IsOver() {
		embed, err := victoryEmbed(ctx, msg, out.Victory)
		if err != nil {
			return nil, err
		}
		embed.Description = truncate(embed.Description+"\n\n"+strings.Join(lines, "\n"), maxDescription)
		return embed, nil
	}

	title := "Dawn"
	if out.NextDay != nil {
		title = fmt.Sprintf("Day %d begins", out.NextDay.Number)
	}
	return messageEmbed(title, strings.Join(lines, "\n"), colorCitizen), nil
}

// victoryEmbed is nil while the game is ongoing
func victoryEmbed(ctx context.Context, msg messaging.Service, victory models.Victory) (*discordgo.MessageEmbed, error) {
	if !victory.IsOver() {
		return nil, nil
	}
	out, err := msg.GetVictoryMessage(ctx, &messaging.GetVictoryMessageInput{Victory: victory})
	if err != nil {
		return nil, err
	}
	color := colorCitizen
	if victory == models.VictoryMafiaWin {
		color = colorMafia
	}
	return messageEmbed(out.Title, out.Message, color), nil
}
