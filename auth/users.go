package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/redis"
)

// User is a registered account. The password is stored only as a
// bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore persists users in redis keyed by normalized email. Without a
// redis client the store keeps users in process memory only.
type UserStore struct {
	primary *redis.TypedStore[User]
	log     *logger.Logger

	mu       sync.RWMutex
	fallback map[string]User
}

// NewUserStore creates a user store. client may be nil.
func NewUserStore(client *redis.Client, log *logger.Logger) *UserStore {
	s := &UserStore{
		fallback: make(map[string]User),
		log:      log.WithComponent("user-store"),
	}
	if client != nil {
		s.primary = redis.NewTypedStore[User](client, "aurascribe:user")
	} else {
		s.log.Warn("user store running without redis; accounts are process-local")
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserStore) Register(ctx context.Context, email, password, role string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.MissingField("email")
	}
	if len(password) < 8 {
		return nil, errors.Validation("password must be at least 8 characters")
	}

	if existing, err := s.get(ctx, email); err == nil && existing != nil {
		return nil, errors.AlreadyExists("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal(err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", logger.Fields(logger.FieldUserID, user.ID))
	return &user, nil
}

// Authenticate verifies an email/password pair.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.get(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthorized("Invalid credentials.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials.")
	}
	return user, nil
}

func (s *UserStore) get(ctx context.Context, email string) (*User, error) {
	if s.primary != nil {
		user, err := s.primary.Load(ctx, email)
		if err == nil {
			return user, nil
		}
		s.log.Warn("user read failed, checking in-process store", logger.Fields(
			logger.FieldError, err.Error(),
		))
	}
	s.mu.RLock()
	user, ok := s.fallback[email]
	s.mu.RUnlock()
	if ok {
		return &user, nil
	}
	return nil, nil
}

func (s *UserStore) save(ctx context.Context, user User) error {
	if s.primary != nil {
		// Accounts do not expire.
		err := s.primary.Save(ctx, user.Email, &user, 0)
		if err == nil {
			return nil
		}
		s.log.Warn("user write falling back to in-process store", logger.Fields(
			logger.FieldError, err.Error(),
		))
	}
	s.mu.Lock()
	s.fallback[user.Email] = user
	s.mu.Unlock()
	return nil
}
