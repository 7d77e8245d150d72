package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	repo := NewMemory()

	session := testSession("console", now)
	require.NoError(t, repo.SaveSession(ctx, &SaveSessionInput{Session: session}))

	got, err := repo.GetSession(ctx, &GetSessionInput{SessionID: "console"})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Days[1].Votes.Get(2))

	// The stored copy is independent of the caller's pointer
	got.Days[1].Votes[2] = 9
	again, err := repo.GetSession(ctx, &GetSessionInput{SessionID: "console"})
	require.NoError(t, err)
	assert.Equal(t, 4, again.Days[1].Votes.Get(2))

	out, err := repo.ListSessions(ctx, &ListSessionsInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"console"}, out.SessionIDs)

	require.NoError(t, repo.DeleteSession(ctx, &DeleteSessionInput{SessionID: "console"}))
	_, err = repo.GetSession(ctx, &GetSessionInput{SessionID: "console"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
