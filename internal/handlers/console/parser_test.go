package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

func TestParse(t *testing.T) {
	cmd, err := Parse("  NAME 3 Ann  Marie ")
	require.NoError(t, err)
	assert.Equal(t, "name", cmd.Name)
	assert.Equal(t, []string{"3", "Ann", "Marie"}, cmd.Args)
	assert.Equal(t, "Ann Marie", cmd.Rest(1))
	assert.Equal(t, "", cmd.Rest(5))

	id, err := cmd.Slot(0)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, err = cmd.Arg(3)
	assert.ErrorIs(t, err, ErrMissingArg)

	_, err = Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestParseSlot(t *testing.T) {
	id, err := ParseSlot("#7")
	require.NoError(t, err)
	assert.Equal(t, 6, id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := ParseSlot(raw)
		assert.ErrorIs(t, err, ErrInvalidSlot, raw)
	}
}

func TestParseVotes(t *testing.T) {
	votes, err := ParseVotes([]string{"1=3", "4=0"})
	require.NoError(t, err)
	assert.Equal(t, models.VoteMap{0: 3, 3: 0}, votes)

	_, err = ParseVotes(nil)
	assert.ErrorIs(t, err, ErrMissingArg)

	_, err = ParseVotes([]string{"1:3"})
	assert.ErrorIs(t, err, ErrInvalidVote)

	_, err = ParseVotes([]string{"1=x"})
	assert.ErrorIs(t, err, ErrInvalidVote)

	_, err = ParseVotes([]string{"0=2"})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestMerge(t *testing.T) {
	current := models.VoteMap{0: 1, 1: 2}
	merged := Merge(current, models.VoteMap{1: 5, 2: 0})

	assert.Equal(t, models.VoteMap{0: 1, 1: 5, 2: 0}, merged)
	assert.Equal(t, models.VoteMap{0: 1, 1: 2}, current)
}
