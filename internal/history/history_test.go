package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

func daysWith(entries ...map[int]models.Elimination) map[int]*models.Day {
	days := map[int]*models.Day{}
	for i, e := range entries {
		d := models.NewDay(i + 1)
		for id, el := range e {
			d.Eliminated[id] = el
		}
		days[i+1] = d
	}
	return days
}

func TestEliminationsUpToDay_Merges(t *testing.T) {
	days := daysWith(
		map[int]models.Elimination{1: {Reason: models.EliminationReasonTrial, Day: 1}},
		map[int]models.Elimination{2: {Reason: models.EliminationReasonMafiaKill, Day: 2}},
	)

	assert.Len(t, EliminationsUpToDay(days, 1), 1)
	got := EliminationsUpToDay(days, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, models.EliminationReasonMafiaKill, got[2].Reason)
}

func TestEliminationsUpToDay_BeyondLastDay(t *testing.T) {
	days := daysWith(
		map[int]models.Elimination{1: {Reason: models.EliminationReasonTrial, Day: 1}},
		map[int]models.Elimination{3: {Reason: models.EliminationReasonManual, Day: 2}},
	)

	assert.Equal(t, EliminationsUpToDay(days, 2), EliminationsUpToDay(days, 99))
}

func TestEliminationsUpToDay_TombstoneRemoves(t *testing.T) {
	days := daysWith(
		map[int]models.Elimination{4: {Reason: models.EliminationReasonMafiaKill, Day: 1}},
		map[int]models.Elimination{4: {Day: 2, Revived: true}},
		map[int]models.Elimination{},
	)

	assert.Contains(t, EliminationsUpToDay(days, 1), 4)
	assert.NotContains(t, EliminationsUpToDay(days, 2), 4)
	assert.NotContains(t, EliminationsUpToDay(days, 3), 4)
}

func TestEliminationsUpToDay_Idempotent(t *testing.T) {
	days := daysWith(
		map[int]models.Elimination{1: {Reason: models.EliminationReasonTrial, Day: 1}},
	)

	first := EliminationsUpToDay(days, 1)
	second := EliminationsUpToDay(days, 1)
	assert.Equal(t, first, second)

	first[7] = models.Elimination{}
	assert.NotContains(t, EliminationsUpToDay(days, 1), 7)
}

func TestProcessPlayerData_Sorting(t *testing.T) {
	roles := []models.RoleName{models.RoleMafiaBoss, models.RoleDoctor, models.RoleDetective, models.RoleSimpleCitizen}
	players := []*models.Player{
		{ID: 0},
		{ID: 1, Name: "Ann", Role: models.RoleDoctor, Selected: true},
		{ID: 2},
		{ID: 3, Name: "Bob", Role: models.RoleSimpleCitizen, Selected: true},
	}

	roster := ProcessPlayerData(roles, players, map[int]models.Elimination{}, []int{3, 1})

	require.Len(t, roster.All, 4)
	assert.Equal(t, "Bob", roster.All[0].Name)
	assert.Equal(t, "Ann", roster.All[1].Name)
	assert.Equal(t, "Player 1", roster.All[2].Name)
	assert.Equal(t, models.RoleMafiaBoss, roster.All[2].Role)
	assert.Equal(t, "Player 3", roster.All[3].Name)
	assert.Len(t, roster.Alive, 4)
	assert.Empty(t, roster.Dead)
}

func TestProcessPlayerData_SplitsAliveAndDead(t *testing.T) {
	roles := make([]models.RoleName, 10)
	for i := range roles {
		roles[i] = models.RoleSimpleCitizen
	}
	elim := map[int]models.Elimination{
		2: {Reason: models.EliminationReasonManual, Day: 1},
		5: {Reason: models.EliminationReasonTrial, Day: 1},
		9: {Reason: models.EliminationReasonMafiaKill, Day: 1},
	}

	roster := ProcessPlayerData(roles, nil, elim, nil)

	assert.Len(t, roster.Alive, 7)
	assert.Len(t, roster.Dead, 3)
	assert.False(t, roster.IsAlive(5))
	assert.True(t, roster.IsAlive(4))
	assert.NotNil(t, roster.Find(9))
	assert.Nil(t, roster.Find(10))
}

func TestEliminationDayOf(t *testing.T) {
	days := daysWith(
		map[int]models.Elimination{},
		map[int]models.Elimination{3: {Reason: models.EliminationReasonTrial, Day: 2}},
		map[int]models.Elimination{3: {Day: 3, Revived: true}},
		map[int]models.Elimination{3: {Reason: models.EliminationReasonMafiaKill, Day: 4}},
	)

	d, ok := EliminationDayOf(days, 3, 4)
	require.True(t, ok)
	assert.Equal(t, 2, d)

	_, ok = EliminationDayOf(days, 1, 4)
	assert.False(t, ok)

	_, ok = EliminationDayOf(days, 3, 1)
	assert.False(t, ok)
}
