package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

const (
	defaultTimeout     = time.Hour
	defaultRecentTurns = 5
)

type Config struct {
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"1h"`
	RecentTurns int           `envconfig:"RECENT_TURNS" split_words:"true" default:"5"`
}

// Store is the in-memory session registry. Sessions live until they go idle
// past the configured timeout; there is no persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	timeout     time.Duration
	recentTurns int
	now         func() time.Time
}

type StoreOption func(*Store)

// WithClock pins the store's clock. Test helper.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(cfg Config, opts ...StoreOption) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	recent := cfg.RecentTurns
	if recent <= 0 {
		recent = defaultRecentTurns
	}
	s := &Store{
		sessions:    make(map[string]*Session, 16),
		timeout:     timeout,
		recentTurns: recent,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ResolveOrCreate returns a live session id for the request. An empty or
// unknown id mints a fresh session; an expired session is replaced in place,
// keeping the caller's id but dropping the stale history.
func (s *Store) ResolveOrCreate(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := strings.TrimSpace(sessionID)
	if id == "" {
		id = uuid.NewString()
	}

	sess, ok := s.sessions[id]
	if ok && !s.expired(sess, now) {
		sess.LastActive = now
		return id, false
	}
	s.sessions[id] = &Session{
		ID:         id,
		CreatedAt:  now,
		LastActive: now,
	}
	return id, true
}

// AppendUserTurn records a user message and folds its extracted facts into
// the session.
func (s *Store) AppendUserTurn(sessionID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.live(sessionID)
	if err != nil {
		return err
	}
	now := s.now()
	sess.Messages = append(sess.Messages, Message{
		Role:      contractx.RoleUser,
		Content:   content,
		Timestamp: now,
	})
	sess.absorb(ExtractFacts(content))
	sess.LastActive = now
	return nil
}

// AppendAssistantTurn records the routed response with its execution
// metadata.
func (s *Store) AppendAssistantTurn(sessionID, content string, agents, tools []string, plan *contractx.PlanSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.live(sessionID)
	if err != nil {
		return err
	}
	now := s.now()
	sess.Messages = append(sess.Messages, Message{
		Role:       contractx.RoleAssistant,
		Content:    content,
		Timestamp:  now,
		AgentsUsed: agents,
		ToolsUsed:  tools,
		Plan:       plan,
	})
	sess.LastActive = now
	return nil
}

// Snapshot returns the context view for planning and handling: accumulated
// facts plus the most recent turns. The snapshot is a copy. A missing or
// expired session yields an empty snapshot rather than an error; context is
// a best-effort hint, not a precondition.
func (s *Store) Snapshot(sessionID string) contractx.ContextSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.live(sessionID)
	if err != nil {
		return contractx.ContextSnapshot{SessionID: sessionID}
	}
	return sess.snapshot(s.recentTurns)
}

// History returns a copy of the session's full message log.
func (s *Store) History(sessionID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.live(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out, nil
}

// Delete removes one session. Deleting an unknown id is a no-op.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// ResetAll drops every session and reports how many were removed.
func (s *Store) ResetAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.sessions)
	s.sessions = make(map[string]*Session, 16)
	return n
}

// ActiveIDs lists the ids of sessions that have not expired, sorted for
// stable output.
func (s *Store) ActiveIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	ids := make([]string, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if !s.expired(sess, now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// SweepLoop runs Sweep on the given interval until the context is canceled.
// Intended to be started as a goroutine at boot.
func (s *Store) SweepLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := s.Sweep(); dropped > 0 {
				log.Debug().Int("dropped", dropped).Msg("session sweep")
			}
		}
	}
}

// live resolves a session id to a non-expired session. Callers hold s.mu.
func (s *Store) live(sessionID string) (*Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess, s.now()) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastActive) > s.timeout
}
