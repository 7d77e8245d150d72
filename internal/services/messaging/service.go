package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mafiagod/internal/history"
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/night"
	"github.com/KirkDiggler/mafiagod/internal/services/game"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
	"github.com/KirkDiggler/mafiagod/internal/state"
)

// service implements the Service interface
type service struct {
	// Random source for selecting message variants
	shuffler shuffle.Shuffler
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var shuffler shuffle.Shuffler
	if config != nil && config.Shuffler != nil {
		shuffler = config.Shuffler
	} else {
		shuffler = shuffle.New(nil)
	}

	return &service{
		shuffler: shuffler,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.shuffler.Intn(len(messages))]
}

var phaseLabels = map[models.Phase]string{
	models.PhaseDiscussion: "Discussion",
	models.PhaseVoting:     "Voting",
	models.PhaseTrial:      "Trial",
	models.PhaseCompleted:  "Completed",
	models.PhaseNight:      "Night",
}

var roleLabels = map[models.RoleName]string{
	models.RoleMafiaBoss:     "Mafia Boss",
	models.RoleNegotiator:    "Negotiator",
	models.RoleSimpleMafia:   "Mafia",
	models.RoleDoctor:        "Doctor",
	models.RoleDetective:     "Detective",
	models.RoleReporter:      "Reporter",
	models.RoleSniper:        "Sniper",
	models.RoleArmored:       "Armored",
	models.RoleConstantine:   "Constantine",
	models.RoleSimpleCitizen: "Citizen",
}

// RoleLabel returns the display name of a role
func RoleLabel(role models.RoleName) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}

// PhaseLabel returns the display name of a phase
func PhaseLabel(phase models.Phase) string {
	if label, ok := phaseLabels[phase]; ok {
		return label
	}
	return string(phase)
}

// GetPhaseLabel returns the display name of a day phase
func (s *service) GetPhaseLabel(ctx context.Context, input *GetPhaseLabelInput) (*GetPhaseLabelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	return &GetPhaseLabelOutput{Label: PhaseLabel(input.Phase)}, nil
}

func playerName(roster *history.Roster, id *int) string {
	if id == nil {
		return "someone"
	}
	if roster != nil {
		if p := roster.Find(*id); p != nil {
			return p.Name
		}
	}
	return history.PlaceholderName(*id)
}

func reasonText(reason models.EliminationReason, day int) string {
	switch reason {
	case models.EliminationReasonTrial:
		return fmt.Sprintf("convicted at trial on day %d", day)
	case models.EliminationReasonMafiaKill:
		return fmt.Sprintf("killed by the mafia on night %d", day)
	case models.EliminationReasonSniperShot:
		return fmt.Sprintf("shot by the sniper on night %d", day)
	default:
		return fmt.Sprintf("removed by the moderator on day %d", day)
	}
}

// DescribeEvent renders one entry of a day log
func (s *service) DescribeEvent(ctx context.Context, input *DescribeEventInput) (*DescribeEventOutput, error) {
	if input == nil || input.Event == nil {
		return nil, errors.New("event cannot be nil")
	}

	e := input.Event
	player := playerName(input.Roster, e.PlayerID)
	target := playerName(input.Roster, e.TargetID)
	count := 0
	if e.Count != nil {
		count = *e.Count
	}

	var description string
	switch e.Type {
	case models.EventTypeDayStart:
		description = fmt.Sprintf("Day %d started", e.Day)
	case models.EventTypeDayComplete:
		description = fmt.Sprintf("Day %d completed", e.Day)
	case models.EventTypePhaseChange:
		description = fmt.Sprintf("Phase changed from %s to %s",
			PhaseLabel(models.Phase(e.Fields[state.FieldFrom])),
			PhaseLabel(models.Phase(e.Fields[state.FieldPhase])))
	case models.EventTypeElimination:
		description = fmt.Sprintf("%s was %s", player,
			reasonText(models.EliminationReason(e.Fields[state.FieldReason]), e.Day))
	case models.EventTypeRevival:
		description = fmt.Sprintf("%s was revived", player)
	case models.EventTypeSpeaking:
		description = fmt.Sprintf("%s had their speaking turn", player)
	case models.EventTypeChallenge:
		description = fmt.Sprintf("%s challenged %s", player, target)
	case models.EventTypeVote:
		description = fmt.Sprintf("%s has %d votes", player, count)
	case models.EventTypeTrialVote:
		description = fmt.Sprintf("%s has %d final votes", player, count)
	case models.EventTypeTrialResult:
		description = s.describeTrialEvent(e, player)
	case models.EventTypeNightAction:
		description = s.describeNightEvent(e, input.Roster)
	default:
		description = string(e.Type)
	}

	return &DescribeEventOutput{
		Time:        FormatTimestamp(e),
		Description: description,
	}, nil
}

func (s *service) describeTrialEvent(e *models.Event, player string) string {
	switch models.TrialOutcome(e.Fields[game.FieldOutcome]) {
	case models.TrialOutcomeElimination:
		return fmt.Sprintf("Trial: %s was convicted", player)
	case models.TrialOutcomeAcquittal:
		return "Trial: the candidate was acquitted"
	case models.TrialOutcomeTie:
		return "Trial: tie for elimination"
	case models.TrialOutcomeIncompleteVoting:
		return "Trial: voting is incomplete"
	default:
		return "Trial: no candidates"
	}
}

func (s *service) describeNightEvent(e *models.Event, roster *history.Roster) string {
	phase := e.Fields[nightService.FieldPhase]
	action := models.NightAction(e.Fields[nightService.FieldAction])
	if action == models.NightActionSkip {
		return fmt.Sprintf("Night: %s phase skipped", phase)
	}

	var names []string
	if raw := e.Fields[nightService.FieldTargets]; raw != "" {
		for _, part := range strings.Split(raw, ",") {
			var id int
			if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
				names = append(names, playerName(roster, &id))
			}
		}
	}
	targets := strings.Join(names, ", ")
	if targets == "" {
		targets = "nobody"
	}

	switch action {
	case models.NightActionMafiaKill:
		return fmt.Sprintf("Night: the mafia killed %s", targets)
	case models.NightActionMafiaNegotiate:
		return fmt.Sprintf("Night: the mafia negotiated with %s", targets)
	case models.NightActionDetectiveInquiry:
		return fmt.Sprintf("Night: the detective checked %s (%s)", targets, e.Fields[nightService.FieldResult])
	case models.NightActionReporterCheck:
		result := "not negotiated"
		if e.Fields[nightService.FieldResult] == nightService.ResultNegotiated {
			result = "negotiated"
		}
		return fmt.Sprintf("Night: the reporter checked %s (%s)", targets, result)
	case models.NightActionSniperShoot:
		return fmt.Sprintf("Night: the sniper shot %s", targets)
	case models.NightActionDoctorSave:
		return fmt.Sprintf("Night: the doctor saved %s", targets)
	case models.NightActionConstantineRevive:
		return fmt.Sprintf("Night: Constantine revived %s", targets)
	default:
		return fmt.Sprintf("Night: %s %s", phase, action)
	}
}

// FormatTimestamp formats the time of an event for display
func FormatTimestamp(e *models.Event) string {
	if e == nil || e.Timestamp.IsZero() {
		return ""
	}
	return e.Timestamp.Format(TimeFormat)
}

// DescribeElimination explains why a player is out
func (s *service) DescribeElimination(ctx context.Context, input *DescribeEliminationInput) (*DescribeEliminationOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	reason := reasonText(input.Elimination.Reason, input.Elimination.Day)
	return &DescribeEliminationOutput{
		Reason:  reason,
		Message: fmt.Sprintf("%s was %s", input.PlayerName, reason),
	}, nil
}

// GetNightPhaseMessage returns the narration the moderator reads for a night phase
func (s *service) GetNightPhaseMessage(ctx context.Context, input *GetNightPhaseMessageInput) (*GetNightPhaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &GetNightPhaseMessageOutput{}
	switch input.Phase {
	case models.NightPhaseMafia:
		out.Title = "The Mafia"
		out.Narration = s.pick([]string{
			"The mafia wakes up and chooses a victim.",
			"The city sleeps. The mafia opens its eyes.",
			"Mafia, wake up. Who will not see the morning?",
		})
		out.Instruction = mafiaInstruction(input.Leader)
		if input.CanNegotiate {
			out.Instruction += " The negotiator may offer a deal instead of a kill."
		}
	case models.NightPhaseDetective:
		out.Title = "The Detective"
		out.Narration = s.pick([]string{
			"The detective wakes up and points at a suspect.",
			"Detective, open your eyes. Whose side are they on?",
		})
		out.Instruction = "Select one player to inquire about."
	case models.NightPhaseReporter:
		out.Title = "The Reporter"
		out.Narration = s.pick([]string{
			"The reporter wakes up to chase a story.",
			"Reporter, who made a deal tonight?",
		})
		out.Instruction = "Select one player to check for negotiation."
	case models.NightPhaseSniper:
		out.Title = "The Sniper"
		out.Narration = s.pick([]string{
			"The sniper wakes up and loads a single bullet.",
			"Sniper, do you take the shot?",
		})
		out.Instruction = "Select one player to shoot, or skip. The shot can be used once."
	case models.NightPhaseDoctor:
		out.Title = "The Doctor"
		out.Narration = s.pick([]string{
			"The doctor wakes up and prepares the infirmary.",
			"Doctor, who needs your care tonight?",
		})
		out.Instruction = fmt.Sprintf("Select up to %d players to save.", night.DoctorMaxTargets)
	case models.NightPhaseConstantine:
		out.Title = "Constantine"
		out.Narration = s.pick([]string{
			"Constantine wakes up among the fallen.",
			"Constantine, will you bring someone back?",
		})
		out.Instruction = "Select one eliminated player to revive, or skip. The revival can be used once."
	default:
		out.Title = string(input.Phase)
	}

	if input.Holder != nil {
		out.Title = fmt.Sprintf("%s (%s)", out.Title, input.Holder.Name)
	} else if input.Phase != models.NightPhaseMafia {
		out.Instruction = "Nobody holds this role anymore. Pretend to wait, then skip."
	}

	return out, nil
}

func mafiaInstruction(leader *night.Leader) string {
	if leader == nil {
		return "No mafia member is alive."
	}
	switch leader.Kind {
	case night.LeaderBoss:
		return fmt.Sprintf("%s, the boss, names the target.", leader.Player.Name)
	case night.LeaderNegotiator:
		return fmt.Sprintf("The boss is out. %s, the negotiator, names the target.", leader.Player.Name)
	default:
		return "The leaders are out. The remaining mafia agree on a target together."
	}
}

// GetTrialResultMessage explains a processed trial
func (s *service) GetTrialResultMessage(ctx context.Context, input *GetTrialResultMessageInput) (*GetTrialResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("trial result cannot be nil")
	}

	r := input.Result
	names := func(ids []int) string {
		out := make([]string, len(ids))
		for i := range ids {
			out[i] = playerName(input.Roster, &ids[i])
		}
		return strings.Join(out, ", ")
	}

	switch r.Outcome {
	case models.TrialOutcomeElimination:
		return &GetTrialResultMessageOutput{
			Title: "Guilty",
			Message: fmt.Sprintf("%s was convicted with %d votes (%d required).",
				playerName(input.Roster, r.EliminatedID), r.MaxVotes, r.Required),
		}, nil
	case models.TrialOutcomeAcquittal:
		return &GetTrialResultMessageOutput{
			Title: "Acquitted",
			Message: fmt.Sprintf("%s received %d votes but needed %d.",
				names(r.Candidates), r.MaxVotes, r.Required),
		}, nil
	case models.TrialOutcomeTie:
		return &GetTrialResultMessageOutput{
			Title: "Tie",
			Message: fmt.Sprintf("%s are tied with %d votes. The moderator decides.",
				names(r.TiedIDs), r.MaxVotes),
		}, nil
	case models.TrialOutcomeIncompleteVoting:
		return &GetTrialResultMessageOutput{
			Title:   "Incomplete voting",
			Message: fmt.Sprintf("Final votes are missing for %s.", names(r.Missing)),
		}, nil
	default:
		return &GetTrialResultMessageOutput{
			Title:   "No trial",
			Message: fmt.Sprintf("Nobody reached %d votes.", r.Required),
		}, nil
	}
}

// GetVictoryMessage announces the end of the game
func (s *service) GetVictoryMessage(ctx context.Context, input *GetVictoryMessageInput) (*GetVictoryMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Victory {
	case models.VictoryMafiaWin:
		return &GetVictoryMessageOutput{
			Title: "The Mafia Wins",
			Message: s.pick([]string{
				"The mafia now controls the city.",
				"The city wakes up to find the mafia in charge.",
				"The citizens are outnumbered. The mafia takes the city.",
			}),
		}, nil
	case models.VictoryCitizensWin:
		return &GetVictoryMessageOutput{
			Title: "The Citizens Win",
			Message: s.pick([]string{
				"Every mafia member has been found. The city is safe.",
				"The last of the mafia is gone. The citizens prevail.",
				"Justice is served. The mafia is no more.",
			}),
		}, nil
	default:
		return &GetVictoryMessageOutput{
			Title:   "Game in progress",
			Message: "No side has won yet.",
		}, nil
	}
}

// GetErrorMessage returns a moderator-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("error cannot be nil")
	}

	err := input.Err
	switch {
	case errors.Is(err, game.ErrSessionNotFound), errors.Is(err, nightService.ErrSessionNotFound):
		return &GetErrorMessageOutput{
			Title:   "No game",
			Message: "There is no game here yet. Start one first.",
		}, nil
	case errors.Is(err, game.ErrGameOver), errors.Is(err, nightService.ErrGameOver):
		return &GetErrorMessageOutput{
			Title:   "Game over",
			Message: "The game is already decided. Start a new one to keep playing.",
		}, nil
	case errors.Is(err, nightService.ErrNotActiveDay):
		return &GetErrorMessageOutput{
			Title:   "Viewing history",
			Message: "Switch back to the active day first.",
		}, nil
	case errors.Is(err, game.ErrPlayerEliminated):
		return &GetErrorMessageOutput{
			Title:   "Not allowed",
			Message: "That player is already eliminated.",
		}, nil
	}

	var gameErr game.GameError
	var nightErr nightService.NightError
	if errors.As(err, &gameErr) || errors.As(err, &nightErr) {
		return &GetErrorMessageOutput{
			Title:   "Not allowed",
			Message: capitalize(err.Error()),
		}, nil
	}

	return &GetErrorMessageOutput{
		Title:   "Something went wrong",
		Message: "Please try again.",
	}, nil
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
