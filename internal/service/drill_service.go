package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/game"
	"derdiedas/internal/metrics"
	"derdiedas/internal/random"
	"derdiedas/internal/security"
	"derdiedas/internal/wordsource"
)

var (
	ErrSessionNotFound = errors.New("drill session not found")
)

// drillSession is one learner's state. mu serializes transitions on it.
type drillSession struct {
	mu       sync.Mutex
	state    game.State
	rng      *rand.Rand
	lastSeen time.Time
}

// SessionStore keeps drill sessions in memory keyed by session ID
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*drillSession
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store evicting sessions idle for longer than ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*drillSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) put(id string, sess *drillSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *SessionStore) get(id string) (*drillSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *SessionStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// removeExpired drops sessions idle past the TTL and returns how many it removed
func (s *SessionStore) removeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Snapshot is a session's state as returned to callers
type Snapshot struct {
	SessionID string
	State     game.State
	ExpiresAt time.Time
}

// DrillService runs drill sessions against a word source
type DrillService struct {
	source  wordsource.Source
	store   *SessionStore
	metrics *metrics.Metrics
	log     *zap.Logger

	seedMu sync.Mutex
	seed   int64
}

// NewDrillService creates a drill service. A non-zero seed makes session
// randomness reproducible: each new session is seeded with the next value.
func NewDrillService(source wordsource.Source, store *SessionStore, m *metrics.Metrics, log *zap.Logger, seed int64) *DrillService {
	return &DrillService{
		source:  source,
		store:   store,
		metrics: m,
		log:     log,
		seed:    seed,
	}
}

func (s *DrillService) nextRand() *rand.Rand {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seed == 0 {
		return random.New(0)
	}
	r := random.New(s.seed)
	s.seed++
	return r
}

// Start loads the word pool and begins a new session
func (s *DrillService) Start(ctx context.Context) (Snapshot, error) {
	words, err := s.source.Load(ctx)
	if err != nil {
		s.log.Error("failed to load word pool", zap.Error(err))
		return Snapshot{}, err
	}
	s.metrics.PoolSize.Set(float64(len(words)))

	rng := s.nextRand()
	state, err := game.Start(words, rng)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to start session: %w", err)
	}

	id := security.GenerateSessionID()
	now := s.store.now()
	s.store.put(id, &drillSession{state: state, rng: rng, lastSeen: now})

	s.metrics.SessionsStarted.Inc()
	s.metrics.SessionsActive.Set(float64(s.store.Len()))
	s.log.Debug("drill session started", zap.String("session_id", id), zap.Int("pool_size", len(words)))

	return Snapshot{SessionID: id, State: state, ExpiresAt: now.Add(s.store.ttl)}, nil
}

// Get returns the current state of a session
func (s *DrillService) Get(id string) (Snapshot, error) {
	sess, ok := s.store.get(id)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = s.store.now()
	return Snapshot{SessionID: id, State: sess.state, ExpiresAt: sess.lastSeen.Add(s.store.ttl)}, nil
}

// Guess submits a gender guess for the presented word
func (s *DrillService) Guess(id, article string) (Snapshot, game.Outcome, error) {
	return s.apply(id, game.Guess{Article: article})
}

// Submit answers the remedial challenge
func (s *DrillService) Submit(id, article, ending string) (Snapshot, game.Outcome, error) {
	return s.apply(id, game.Submit{Article: article, Ending: ending})
}

// Restart clears the score and starts a fresh lap over the same pool
func (s *DrillService) Restart(id string) (Snapshot, error) {
	snap, _, err := s.apply(id, game.Restart{})
	return snap, err
}

// End discards a session
func (s *DrillService) End(id string) error {
	if !s.store.delete(id) {
		return ErrSessionNotFound
	}
	s.metrics.SessionsActive.Set(float64(s.store.Len()))
	s.log.Debug("drill session ended", zap.String("session_id", id))
	return nil
}

func (s *DrillService) apply(id string, event game.Event) (Snapshot, game.Outcome, error) {
	sess, ok := s.store.get(id)
	if !ok {
		return Snapshot{}, game.Outcome{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := game.Apply(sess.state, event, sess.rng)
	sess.lastSeen = s.store.now()
	snap := Snapshot{SessionID: id, State: next, ExpiresAt: sess.lastSeen.Add(s.store.ttl)}
	if err != nil {
		return snap, out, err
	}

	kind := "guess"
	if _, ok := event.(game.Submit); ok {
		kind = "quiz"
	}
	if out.Evaluated {
		s.metrics.ObserveAnswer(kind, out.Correct)
	}
	sess.state = next
	return snap, out, nil
}

// CleanupExpired evicts idle sessions
func (s *DrillService) CleanupExpired() int {
	removed := s.store.removeExpired()
	if removed > 0 {
		s.metrics.SessionsExpired.Add(float64(removed))
		s.metrics.SessionsActive.Set(float64(s.store.Len()))
		s.log.Info("expired drill sessions", zap.Int("count", removed))
	}
	return removed
}

// RunCleanup calls CleanupExpired every interval until ctx is done
func (s *DrillService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}
