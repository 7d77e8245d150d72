package models

// RoleName identifies a role in the catalog
type RoleName string

const (
	// RoleMafiaBoss leads the mafia and names the night kill
	RoleMafiaBoss RoleName = "mafia_boss"

	// RoleNegotiator may negotiate with a citizen once the mafia has lost a member
	RoleNegotiator RoleName = "negotiator"

	// RoleSimpleMafia takes part in the night kill decision
	RoleSimpleMafia RoleName = "simple_mafia"

	// RoleDoctor saves one or two players each night
	RoleDoctor RoleName = "doctor"

	// RoleDetective inquires about one player each night
	RoleDetective RoleName = "detective"

	// RoleReporter checks whether a player was negotiated
	RoleReporter RoleName = "reporter"

	// RoleSniper may shoot once per game
	RoleSniper RoleName = "sniper"

	// RoleArmored is a citizen without a night ability
	RoleArmored RoleName = "armored"

	// RoleConstantine may revive one eliminated player once per game
	RoleConstantine RoleName = "constantine"

	// RoleSimpleCitizen has no special ability
	RoleSimpleCitizen RoleName = "simple_citizen"
)

// Faction groups roles into sides
type Faction string

const (
	// FactionMafia is the mafia side
	FactionMafia Faction = "mafia"

	// FactionCitizen is the citizen side
	FactionCitizen Faction = "citizen"
)

// NightAction is an action a role can take during the night
type NightAction string

const (
	NightActionMafiaKill         NightAction = "mafia_kill"
	NightActionMafiaNegotiate    NightAction = "mafia_negotiate"
	NightActionDetectiveInquiry  NightAction = "detective_inquiry"
	NightActionReporterCheck     NightAction = "reporter_check"
	NightActionSniperShoot       NightAction = "sniper_shoot"
	NightActionDoctorSave        NightAction = "doctor_save"
	NightActionConstantineRevive NightAction = "constantine_revive"

	// NightActionSkip records a phase the moderator skipped
	NightActionSkip NightAction = "skip"
)

// NightAbility describes when and how a role acts at night
type NightAbility struct {
	// Order is the wake-up slot, lower wakes first
	Order int

	// Actions lists the night actions available to the role
	Actions []NightAction

	// OneTimeUse marks abilities usable once per game
	OneTimeUse bool

	// CanNegotiate marks the negotiator
	CanNegotiate bool

	// ActivatesAfterNegotiation marks roles that only matter once a negotiation happened
	ActivatesAfterNegotiation bool
}

// Role is a named capability bundle
type Role struct {
	// Name is the catalog key
	Name RoleName

	// Faction is the side the role plays for
	Faction Faction

	// Priority orders roles in read-only displays, higher first
	Priority int

	// Description is a short moderator-facing summary
	Description string

	// Night is nil for roles without a night ability
	Night *NightAbility
}
