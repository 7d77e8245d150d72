package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/KirkDiggler/mafiagod/internal/models"
)

// memoryRepository keeps sessions in process. Sessions are stored as JSON so
// callers never share pointers with the stored copy, matching Redis.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemory creates an in-process session repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		sessions: make(map[string][]byte),
	}
}

// SaveSession stores a copy of the session
func (r *memoryRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[input.Session.ID] = data
	return nil
}

// GetSession returns a copy of the stored session
func (r *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	r.mu.RLock()
	data, ok := r.sessions[input.SessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session, missing sessions are ignored
func (r *memoryRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, input.SessionID)
	return nil
}

// ListSessions returns the stored session IDs in order
func (r *memoryRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &ListSessionsOutput{SessionIDs: ids}, nil
}
