package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/redis"
)

func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	mini := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { rdb.Close() })
	client := redis.NewFromClient(rdb, logger.NewDefault("test"))
	return NewUserStore(client, logger.NewDefault("test"))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	user, err := store.Register(ctx, " Doctor@Clinic.QC.CA ", "correct-horse", "physician")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "doctor@clinic.qc.ca" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password must not be stored in clear")
	}

	got, err := store.Authenticate(ctx, "doctor@clinic.qc.ca", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user id = %q, want %q", got.ID, user.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	if _, err := store.Register(ctx, "a@b.test", "password-1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := store.Authenticate(ctx, "a@b.test", "password-2")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeUnauthorized {
		t.Errorf("error = %v, want unauthorized", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	if _, err := store.Register(ctx, "dup@b.test", "password-1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := store.Register(ctx, "DUP@b.test", "password-2", "")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeAlreadyExists {
		t.Errorf("error = %v, want already exists", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	if _, err := store.Register(ctx, "", "password-1", ""); err == nil {
		t.Error("empty email should be rejected")
	}
	if _, err := store.Register(ctx, "x@b.test", "short", ""); err == nil {
		t.Error("short password should be rejected")
	}
}

func TestUserStoreWithoutRedis(t *testing.T) {
	store := NewUserStore(nil, logger.NewDefault("test"))
	ctx := context.Background()

	if _, err := store.Register(ctx, "mem@b.test", "password-1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := store.Authenticate(ctx, "mem@b.test", "password-1"); err != nil {
		t.Errorf("Authenticate: %v", err)
	}
}
