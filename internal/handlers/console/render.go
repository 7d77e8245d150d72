package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/roles"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
)

var (
	mafiaColor   = color.New(color.FgRed)
	citizenColor = color.New(color.FgCyan)
	deadColor    = color.New(color.FgHiBlack)
	headingColor = color.New(color.FgHiWhite, color.Bold)
	noticeColor  = color.New(color.FgYellow)
)

func (c *Console) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleLight)
	return t
}

func (c *Console) heading(text string) {
	headingColor.Fprintln(c.out, text)
}

func factionColor(role models.RoleName) *color.Color {
	if roles.IsMafia(role) {
		return mafiaColor
	}
	return citizenColor
}

func slotLabel(p *models.Player) string {
	return fmt.Sprintf("%d", p.ID+1)
}

func (c *Console) renderHelp() {
	t := c.newTable()
	t.AppendHeader(table.Row{"Command", "Description"})
	for _, h := range c.help {
		t.AppendRow(table.Row{h.usage, h.description})
	}
	t.Render()
}

// renderReveal shows the role of a newly named player
func (c *Console) renderReveal(out *game.ConfirmPlayerOutput) {
	label := messaging.RoleLabel(out.Role.Name)
	factionColor(out.Role.Name).Fprintf(c.out, "%s is the %s\n", out.Player.Name, label)
	if out.Role.Description != "" {
		fmt.Fprintln(c.out, out.Role.Description)
	}
	if out.Remaining > 0 {
		fmt.Fprintf(c.out, "%d slots left to name\n", out.Remaining)
	} else {
		color.New(color.FgGreen).Fprintln(c.out, "Every slot is named")
	}
}

func (c *Console) renderRoster(ctx context.Context, day *game.GetCurrentDayOutput, out *game.GetRosterOutput) error {
	state := "active"
	if !day.IsActive {
		state = "read-only"
	}
	c.heading(fmt.Sprintf("Day %d, %s (%s)", day.Day.Number, messaging.PhaseLabel(day.Day.Phase), state))

	t := c.newTable()
	t.AppendHeader(table.Row{"#", "Name", "Role", "Votes", "Final", "Challenges", "Spoke", "Status"})
	for _, p := range out.Roster.All {
		status := "alive"
		if elim, ok := out.Eliminations[p.ID]; ok && !elim.Revived {
			msg, err := c.messaging.DescribeElimination(ctx, &messaging.DescribeEliminationInput{
				PlayerName:  p.Name,
				Elimination: elim,
			})
			if err != nil {
				return err
			}
			status = msg.Reason
		}

		spoke := ""
		if day.Day.PlayersWhoSpoke.Has(p.ID) {
			spoke = "yes"
		}

		role := factionColor(p.Role).Sprint(messaging.RoleLabel(p.Role))
		name := p.Name
		if !out.Roster.IsAlive(p.ID) {
			name = deadColor.Sprint(name)
		}

		t.AppendRow(table.Row{
			slotLabel(p),
			name,
			role,
			day.Day.Votes.Get(p.ID),
			day.Day.TrialVotes.Get(p.ID),
			fmt.Sprintf("%d/%d", day.Day.Challenges.Get(p.ID), day.Day.MaxChallenges),
			spoke,
			status,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d alive", len(out.Roster.Alive)), fmt.Sprintf("%d out", len(out.Roster.Dead))})
	t.Render()
	return nil
}

func (c *Console) renderGodView(out *game.GetGodViewOutput) {
	render := func(title string, entries []*game.GodViewEntry, col *color.Color) {
		c.heading(title)
		t := c.newTable()
		t.AppendHeader(table.Row{"#", "Name", "Role", "Status"})
		for _, e := range entries {
			status := "alive"
			if !e.Alive {
				status = "out"
			}
			t.AppendRow(table.Row{slotLabel(e.Player), e.Player.Name, col.Sprint(messaging.RoleLabel(e.Role.Name)), status})
		}
		t.Render()
	}
	render("Mafia", out.Mafia, mafiaColor)
	render("Citizens", out.Citizens, citizenColor)
}

func (c *Console) renderPlayers(title string, players []*models.Player) {
	if len(players) == 0 {
		fmt.Fprintf(c.out, "%s: none\n", title)
		return
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = fmt.Sprintf("%s (#%d)", p.Name, p.ID+1)
	}
	fmt.Fprintf(c.out, "%s: %s\n", title, strings.Join(names, ", "))
}

// renderResult prints msg, or a notice when a read-only day swallowed the change
func (c *Console) renderResult(result game.DayResult, msg string) {
	if !result.Applied {
		noticeColor.Fprintln(c.out, "Nothing changed: the viewed day is read-only or already in that state")
		return
	}
	if msg != "" {
		fmt.Fprintln(c.out, msg)
	}
}

func (c *Console) renderVictory(ctx context.Context, victory models.Victory) error {
	if !victory.IsOver() {
		return nil
	}
	msg, err := c.messaging.GetVictoryMessage(ctx, &messaging.GetVictoryMessageInput{Victory: victory})
	if err != nil {
		return err
	}
	col := color.New(color.FgCyan, color.Bold)
	if victory == models.VictoryMafiaWin {
		col = color.New(color.FgRed, color.Bold)
	}
	col.Fprintln(c.out, msg.Title)
	fmt.Fprintln(c.out, msg.Message)
	return nil
}

func (c *Console) renderNight(ctx context.Context, view nightService.View) error {
	if view.Phase == nil {
		c.heading("Every night phase is done. Type dawn to wake the city.")
		return c.renderVictory(ctx, view.Victory)
	}

	msg, err := c.messaging.GetNightPhaseMessage(ctx, &messaging.GetNightPhaseMessageInput{
		Phase:        view.Phase.Kind,
		Leader:       view.Leader,
		Holder:       view.Holder,
		CanNegotiate: view.CanNegotiate,
	})
	if err != nil {
		return err
	}

	c.heading(fmt.Sprintf("Night %d: %s (%d/%d)", view.Night.Day, msg.Title, view.Night.Current+1, len(view.Night.Phases)))
	fmt.Fprintln(c.out, msg.Narration)
	noticeColor.Fprintln(c.out, msg.Instruction)
	if view.Phase.Kind == models.NightPhaseMafia {
		fmt.Fprintf(c.out, "Action: %s\n", view.Night.MafiaAction)
	}

	selected := models.IDSet{}
	for _, id := range view.Night.Selected {
		selected.Add(id)
	}

	t := c.newTable()
	t.AppendHeader(table.Row{"#", "Name", "Selected"})
	for _, p := range view.Targets {
		mark := ""
		if selected.Has(p.ID) {
			mark = "x"
		}
		t.AppendRow(table.Row{slotLabel(p), p.Name, mark})
	}
	t.Render()
	return nil
}

func (c *Console) renderRecord(record *models.NightActionRecord) {
	if record == nil {
		return
	}
	if record.Action == models.NightActionSkip {
		fmt.Fprintf(c.out, "%s skipped\n", record.Phase)
		return
	}

	targets := make([]string, len(record.TargetIDs))
	for i, id := range record.TargetIDs {
		targets[i] = fmt.Sprintf("#%d", id+1)
	}
	line := fmt.Sprintf("%s: %s %s", record.Phase, record.Action, strings.Join(targets, ", "))
	if record.Result != "" {
		line += fmt.Sprintf(" -> %s", record.Result)
	}
	color.New(color.FgGreen).Fprintln(c.out, line)
}

func (c *Console) renderDays(days []*game.DaySummary) {
	t := c.newTable()
	t.AppendHeader(table.Row{"Day", "Phase", "State", "Eliminations", "Events"})
	for _, d := range days {
		var state []string
		if d.IsActive {
			state = append(state, "active")
		}
		if d.IsViewed {
			state = append(state, "viewing")
		}
		if d.IsReadOnly {
			state = append(state, "read-only")
		}
		t.AppendRow(table.Row{d.Number, messaging.PhaseLabel(d.Phase), strings.Join(state, ", "), d.Eliminations, d.Events})
	}
	t.Render()
}

func (c *Console) renderEvents(ctx context.Context, day int, events []*models.Event, roster *history.Roster) error {
	c.heading(fmt.Sprintf("Day %d events", day))
	t := c.newTable()
	t.AppendHeader(table.Row{"Time", "Event"})
	for _, e := range events {
		out, err := c.messaging.DescribeEvent(ctx, &messaging.DescribeEventInput{Event: e, Roster: roster})
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{out.Time, out.Description})
	}
	t.Render()
	return nil
}
