// Package night computes the night sequence and the valid targets of each
// wake-up. It holds no state; the night service owns the sequencer.
package night

import (
	"github.com/KirkDiggler/mafiagod/internal/models"
	"github.com/KirkDiggler/mafiagod/internal/roles"
)

// DoctorMaxTargets is how many players the doctor may save per night
const DoctorMaxTargets = 2

// LeaderKind describes who directs the mafia
type LeaderKind string

const (
	LeaderBoss       LeaderKind = "boss"
	LeaderNegotiator LeaderKind = "negotiator"
	LeaderCollective LeaderKind = "collective"
)

// Leader is the mafia member who picks the night target
type Leader struct {
	// Player leads, or stands for the group when Kind is collective
	Player *models.Player

	// Kind is how leadership was resolved
	Kind LeaderKind
}

var phaseRoles = []struct {
	kind   models.NightPhaseKind
	role   models.RoleName
	action models.NightAction
}{
	{models.NightPhaseDetective, models.RoleDetective, models.NightActionDetectiveInquiry},
	{models.NightPhaseReporter, models.RoleReporter, models.NightActionReporterCheck},
	{models.NightPhaseSniper, models.RoleSniper, models.NightActionSniperShoot},
	{models.NightPhaseDoctor, models.RoleDoctor, models.NightActionDoctorSave},
	{models.NightPhaseConstantine, models.RoleConstantine, models.NightActionConstantineRevive},
}

// RoleFor returns the role that wakes up in a citizen phase
func RoleFor(kind models.NightPhaseKind) (models.RoleName, bool) {
	for _, pr := range phaseRoles {
		if pr.kind == kind {
			return pr.role, true
		}
	}
	return "", false
}

// BuildPhases returns the wake-up order for the living players. The mafia
// always goes first; every other phase appears only with a living holder.
func BuildPhases(alive []*models.Player) []models.NightPhase {
	phases := []models.NightPhase{{
		Kind:       models.NightPhaseMafia,
		Action:     models.NightActionMafiaKill,
		MaxTargets: 1,
	}}

	for _, pr := range phaseRoles {
		if Holder(alive, pr.role) == nil {
			continue
		}
		max := 1
		if pr.kind == models.NightPhaseDoctor {
			max = DoctorMaxTargets
		}
		phases = append(phases, models.NightPhase{Kind: pr.kind, Action: pr.action, MaxTargets: max})
	}
	return phases
}

// Holder returns the first player holding role, nil when nobody does
func Holder(players []*models.Player, role models.RoleName) *models.Player {
	for _, p := range players {
		if p.Role == role {
			return p
		}
	}
	return nil
}

// Mafia filters the mafia members out of players
func Mafia(players []*models.Player) []*models.Player {
	out := make([]*models.Player, 0)
	for _, p := range players {
		if roles.IsMafia(p.Role) {
			out = append(out, p)
		}
	}
	return out
}

// CurrentMafiaLeader resolves leadership: the boss, then the negotiator,
// then the simple mafia collectively. Nil when no mafia is alive.
func CurrentMafiaLeader(aliveMafia []*models.Player) *Leader {
	if p := Holder(aliveMafia, models.RoleMafiaBoss); p != nil {
		return &Leader{Player: p, Kind: LeaderBoss}
	}
	if p := Holder(aliveMafia, models.RoleNegotiator); p != nil {
		return &Leader{Player: p, Kind: LeaderNegotiator}
	}
	if p := Holder(aliveMafia, models.RoleSimpleMafia); p != nil {
		return &Leader{Player: p, Kind: LeaderCollective}
	}
	return nil
}

// MafiaTargets excludes the single leader, or every mafia member when the
// leadership is collective
func MafiaTargets(aliveMafia, alive []*models.Player, leader *Leader) []*models.Player {
	if leader == nil {
		return []*models.Player{}
	}

	excluded := map[int]bool{}
	if leader.Kind == LeaderCollective {
		for _, m := range aliveMafia {
			excluded[m.ID] = true
		}
	} else if leader.Player != nil {
		excluded[leader.Player.ID] = true
	}

	out := make([]*models.Player, 0, len(alive))
	for _, p := range alive {
		if !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// TargetInput is the game state a phase picks its targets from
type TargetInput struct {
	Alive         []*models.Player
	Dead          []*models.Player
	UsedAbilities map[models.RoleName]bool
}

// Targets returns the players selectable in the given phase
func Targets(kind models.NightPhaseKind, in *TargetInput) []*models.Player {
	switch kind {
	case models.NightPhaseMafia:
		mafia := Mafia(in.Alive)
		return MafiaTargets(mafia, in.Alive, CurrentMafiaLeader(mafia))
	case models.NightPhaseDoctor:
		return append([]*models.Player{}, in.Alive...)
	case models.NightPhaseDetective, models.NightPhaseReporter:
		role, _ := RoleFor(kind)
		return excluding(in.Alive, Holder(in.Alive, role))
	case models.NightPhaseSniper:
		if in.UsedAbilities[models.RoleSniper] {
			return []*models.Player{}
		}
		return excluding(in.Alive, Holder(in.Alive, models.RoleSniper))
	case models.NightPhaseConstantine:
		if in.UsedAbilities[models.RoleConstantine] {
			return []*models.Player{}
		}
		return append([]*models.Player{}, in.Dead...)
	}
	return []*models.Player{}
}

// IsTarget reports whether id is selectable in the phase
func IsTarget(kind models.NightPhaseKind, in *TargetInput, id int) bool {
	for _, p := range Targets(kind, in) {
		if p.ID == id {
			return true
		}
	}
	return false
}

func excluding(players []*models.Player, skip *models.Player) []*models.Player {
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if skip != nil && p.ID == skip.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ToggleTarget deselects id when already selected, otherwise appends it and
// evicts the oldest selections beyond max
func ToggleTarget(selected []int, id, max int) []int {
	out := make([]int, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if found {
		return out
	}

	out = append(out, id)
	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// CanNegotiate reports whether the mafia may negotiate tonight: the
// negotiator is alive and the mafia has lost at least one member
func CanNegotiate(aliveMafia []*models.Player, totalMafia int) bool {
	return Holder(aliveMafia, models.RoleNegotiator) != nil && len(aliveMafia) < totalMafia
}
