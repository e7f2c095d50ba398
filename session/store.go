package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/redis"
)

// Store persists sessions in Redis with an in-process fallback.
//
// Every write arms the configured TTL, so a session with no activity
// expires on the primary store and reads treat it as never existing.
// The fallback map has no expiry; fallback writes log that divergence.
type Store struct {
	cfg Config
	ttl time.Duration
	log *logger.Logger

	// primary is nil when Redis is disabled or unavailable at startup.
	primary *redis.TypedStore[Session]
	client  *redis.Client

	mu       sync.RWMutex
	fallback map[string]*Session

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore creates a session store. client may be nil, in which case the
// in-process fallback is the only backing (degraded mode).
func NewStore(cfg Config, client *redis.Client, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:      cfg,
		ttl:      cfg.ttl(),
		log:      log.WithComponent("session-store"),
		fallback: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
	if client != nil {
		s.primary = redis.NewTypedStore[Session](client, cfg.KeyPrefix)
		s.client = client
	} else {
		s.log.Warn("Redis unavailable, using in-process session store; TTL is not enforced")
	}
	return s, nil
}

// TTL returns the configured session time-to-live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// CheckHealth reports the backing store state. Running without Redis is
// a configured mode and reports up; a configured Redis that stopped
// answering degrades the component, since sessions are then served from
// the in-process fallback.
func (s *Store) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "sessions", Status: observability.HealthStatusUp}
	switch {
	case s.client == nil:
		h.Message = "in-process store, TTL not enforced"
	case s.client.Ping(ctx) != nil:
		h.Status = observability.HealthStatusDegraded
		h.Message = "redis unreachable, sessions served from in-process store"
	}
	return h
}

// CreateParams are the caller-supplied fields for a new session.
type CreateParams struct {
	UserID         string
	Language       string
	SelectedModel  string
	Persona        string
	PatientContext map[string]string
}

// Create creates and persists a new active session.
func (s *Store) Create(ctx context.Context, params CreateParams) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:             uuid.NewString(),
		UserID:         params.UserID,
		Language:       params.Language,
		SelectedModel:  params.SelectedModel,
		Persona:        params.Persona,
		PatientContext: params.PatientContext,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get retrieves a session by id. Expired or unknown ids return a
// SessionNotFound error.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if s.primary != nil {
		sess, err := s.primary.Load(ctx, id)
		if err != nil {
			s.log.Warn("session read falling back to in-process store",
				logger.ErrorFields("get", err))
		} else if sess != nil {
			return sess, nil
		}
		// A session written during a Redis outage may exist only in
		// the fallback map; check it before reporting not-found.
	}

	s.mu.RLock()
	sess, ok := s.fallback[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.SessionNotFound(id)
	}
	copied := *sess
	return &copied, nil
}

// Save persists a session and re-arms its TTL.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	if s.primary != nil {
		err := s.primary.Save(ctx, sess.ID, sess, s.ttl)
		if err == nil {
			// Drop any stale fallback copy left over from an outage.
			s.mu.Lock()
			delete(s.fallback, sess.ID)
			s.mu.Unlock()
			return nil
		}
		s.log.Warn("session write falling back to in-process store; TTL not enforced",
			logger.Fields(logger.FieldSessionID, sess.ID, logger.FieldError, err.Error()))
	}

	copied := *sess
	s.mu.Lock()
	s.fallback[sess.ID] = &copied
	s.mu.Unlock()
	return nil
}

// Update applies mutate under the session's lock using a
// get-mutate-save cycle, and returns the updated session.
func (s *Store) Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(sess); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// AppendTranscript appends recognized text to an active session's
// transcript and bumps its chunk counter.
func (s *Store) AppendTranscript(ctx context.Context, id, text string) (*Session, error) {
	return s.Update(ctx, id, func(sess *Session) error {
		if !sess.IsActive() {
			return errors.Validation("session is not active")
		}
		sess.AppendTranscript(text)
		sess.ChunkCount++
		return nil
	})
}

// SetStatus transitions a session to the given status.
func (s *Store) SetStatus(ctx context.Context, id string, status Status) (*Session, error) {
	return s.Update(ctx, id, func(sess *Session) error {
		sess.Status = status
		return nil
	})
}

// List returns up to limit sessions ordered by creation time descending.
// A limit of 0 or less returns all sessions.
func (s *Store) List(ctx context.Context, limit int) ([]*Session, error) {
	byID := make(map[string]*Session)

	if s.primary != nil {
		keys, err := s.primary.Keys(ctx)
		if err != nil {
			s.log.Warn("session list falling back to in-process store",
				logger.ErrorFields("list", err))
		} else {
			for _, key := range keys {
				sess, err := s.primary.Load(ctx, key)
				if err != nil || sess == nil {
					continue // expired between scan and load
				}
				byID[sess.ID] = sess
			}
		}
	}

	s.mu.RLock()
	for id, sess := range s.fallback {
		if _, ok := byID[id]; !ok {
			copied := *sess
			byID[id] = &copied
		}
	}
	s.mu.RUnlock()

	sessions := make([]*Session, 0, len(byID))
	for _, sess := range byID {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// Delete removes a session from both stores.
func (s *Store) Delete(ctx context.Context, id string) error {
	var primaryErr error
	if s.primary != nil {
		primaryErr = s.primary.Delete(ctx, id)
	}

	s.mu.Lock()
	delete(s.fallback, id)
	s.mu.Unlock()

	s.locksMu.Lock()
	delete(s.locks, id)
	s.locksMu.Unlock()

	if primaryErr != nil {
		s.log.Warn("session delete failed on primary store",
			logger.Fields(logger.FieldSessionID, id, logger.FieldError, primaryErr.Error()))
	}
	return nil
}

// sessionLock returns the per-session mutex, creating it on first use.
func (s *Store) sessionLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
