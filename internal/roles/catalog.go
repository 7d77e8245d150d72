// Package roles holds the fixed role table per player count and per-role metadata.
package roles

import "github.com/KirkDiggler/mafiagod/internal/models"

const (
	MinPlayers     = 7
	MaxPlayers     = 14
	DefaultPlayers = 13
)

// Night wake-up slots
const (
	OrderMafiaTeam   = 1
	OrderDetective   = 2
	OrderReporter    = 3
	OrderSniper      = 4
	OrderDoctor      = 5
	OrderConstantine = 6
)

var (
	boss        = models.RoleMafiaBoss
	negotiator  = models.RoleNegotiator
	simpleMafia = models.RoleSimpleMafia
	doctor      = models.RoleDoctor
	detective   = models.RoleDetective
	reporter    = models.RoleReporter
	sniper      = models.RoleSniper
	armored     = models.RoleArmored
	constantine = models.RoleConstantine
	citizen     = models.RoleSimpleCitizen
)

var rolesByCount = map[int][]models.RoleName{
	7:  {boss, simpleMafia, doctor, detective, citizen, citizen, citizen},
	8:  {boss, simpleMafia, doctor, detective, citizen, citizen, citizen, citizen},
	9:  {boss, simpleMafia, simpleMafia, doctor, detective, sniper, armored, citizen, citizen},
	10: {boss, negotiator, simpleMafia, doctor, detective, reporter, sniper, armored, citizen, citizen},
	11: {boss, negotiator, simpleMafia, doctor, detective, reporter, sniper, citizen, citizen, citizen, citizen},
	12: {boss, negotiator, simpleMafia, simpleMafia, doctor, detective, reporter, sniper, armored, constantine, citizen, citizen},
	13: {boss, negotiator, simpleMafia, simpleMafia, doctor, detective, reporter, sniper, armored, citizen, citizen, citizen, citizen},
	14: {boss, negotiator, simpleMafia, simpleMafia, doctor, detective, reporter, sniper, armored, constantine, citizen, citizen, citizen, citizen},
}

var catalog = map[models.RoleName]models.Role{
	boss: {
		Name:        boss,
		Faction:     models.FactionMafia,
		Priority:    100,
		Description: "Leads the mafia and has the final say on the night kill",
		Night: &models.NightAbility{
			Order:   OrderMafiaTeam,
			Actions: []models.NightAction{models.NightActionMafiaKill, models.NightActionMafiaNegotiate},
		},
	},
	negotiator: {
		Name:        negotiator,
		Faction:     models.FactionMafia,
		Priority:    85,
		Description: "Can negotiate with a citizen once the mafia has lost a member",
		Night: &models.NightAbility{
			Order:        OrderMafiaTeam,
			Actions:      []models.NightAction{models.NightActionMafiaKill, models.NightActionMafiaNegotiate},
			CanNegotiate: true,
		},
	},
	simpleMafia: {
		Name:        simpleMafia,
		Faction:     models.FactionMafia,
		Priority:    80,
		Description: "Takes part in the night kill decision",
		Night: &models.NightAbility{
			Order:   OrderMafiaTeam,
			Actions: []models.NightAction{models.NightActionMafiaKill},
		},
	},
	doctor: {
		Name:        doctor,
		Faction:     models.FactionCitizen,
		Priority:    100,
		Description: "Saves one or two players each night",
		Night: &models.NightAbility{
			Order:   OrderDoctor,
			Actions: []models.NightAction{models.NightActionDoctorSave},
		},
	},
	detective: {
		Name:        detective,
		Faction:     models.FactionCitizen,
		Priority:    95,
		Description: "Inquires about one player each night",
		Night: &models.NightAbility{
			Order:   OrderDetective,
			Actions: []models.NightAction{models.NightActionDetectiveInquiry},
		},
	},
	reporter: {
		Name:        reporter,
		Faction:     models.FactionCitizen,
		Priority:    85,
		Description: "Checks whether a player has been negotiated",
		Night: &models.NightAbility{
			Order:                     OrderReporter,
			Actions:                   []models.NightAction{models.NightActionReporterCheck},
			ActivatesAfterNegotiation: true,
		},
	},
	sniper: {
		Name:        sniper,
		Faction:     models.FactionCitizen,
		Priority:    80,
		Description: "May shoot once during the game",
		Night: &models.NightAbility{
			Order:      OrderSniper,
			Actions:    []models.NightAction{models.NightActionSniperShoot},
			OneTimeUse: true,
		},
	},
	armored: {
		Name:        armored,
		Faction:     models.FactionCitizen,
		Priority:    70,
		Description: "Citizen without a night ability",
	},
	constantine: {
		Name:        constantine,
		Faction:     models.FactionCitizen,
		Priority:    65,
		Description: "May bring one eliminated player back once during the game",
		Night: &models.NightAbility{
			Order:      OrderConstantine,
			Actions:    []models.NightAction{models.NightActionConstantineRevive},
			OneTimeUse: true,
		},
	},
	citizen: {
		Name:        citizen,
		Faction:     models.FactionCitizen,
		Priority:    50,
		Description: "Citizen without a special ability",
	},
}

// ValidCount reports whether n players can be seated
func ValidCount(n int) bool {
	return n >= MinPlayers && n <= MaxPlayers
}

// ForCount returns a copy of the ordered role list for n players.
// The second value is false when n is outside [MinPlayers, MaxPlayers].
func ForCount(n int) ([]models.RoleName, bool) {
	list, ok := rolesByCount[n]
	if !ok {
		return nil, false
	}
	out := make([]models.RoleName, len(list))
	copy(out, list)
	return out, true
}

// Lookup returns the metadata of a role. Unknown roles come back as a
// zero-priority citizen so displays never break.
func Lookup(name models.RoleName) models.Role {
	if r, ok := catalog[name]; ok {
		return r
	}
	return models.Role{Name: name, Faction: models.FactionCitizen}
}

// IsMafia reports whether the role plays for the mafia
func IsMafia(name models.RoleName) bool {
	return Lookup(name).Faction == models.FactionMafia
}

// Priority returns the display priority of a role
func Priority(name models.RoleName) int {
	return Lookup(name).Priority
}

// All returns every role in the catalog
func All() []models.Role {
	out := make([]models.Role, 0, len(catalog))
	for _, name := range []models.RoleName{boss, negotiator, simpleMafia, doctor, detective, reporter, sniper, armored, constantine, citizen} {
		out = append(out, catalog[name])
	}
	return out
}
