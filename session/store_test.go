package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/redis"
)

// newTestStore creates a session store backed by miniredis.
func newTestStore(t *testing.T, cfg Config) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	rdb := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	client := redis.NewFromClient(rdb, logger.NewDefault("session-test"))
	t.Cleanup(func() { client.Close() })

	store, err := NewStore(cfg, client, logger.NewDefault("session-test"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, mini
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	ctx := context.Background()

	sess, err := store.Create(ctx, CreateParams{
		Language:      "fr-CA",
		SelectedModel: "general-nova-3",
		Persona:       "cardiologist",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected generated id")
	}
	if sess.Status != StatusActive {
		t.Errorf("expected active status, got %s", sess.Status)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Language != "fr-CA" || got.SelectedModel != "general-nova-3" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t, Config{})

	_, err := store.Get(context.Background(), "unknown")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeSessionNotFound {
		t.Fatalf("expected SessionNotFound, got %v", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	store, mini := newTestStore(t, Config{TTL: "1s"})
	ctx := context.Background()

	sess, err := store.Create(ctx, CreateParams{Language: "en-US"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mini.FastForward(2 * time.Second)

	_, err = store.Get(ctx, sess.ID)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeSessionNotFound {
		t.Fatalf("expected expired session to be not-found, got %v", err)
	}
}

func TestAppendTranscript(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	ctx := context.Background()

	sess, _ := store.Create(ctx, CreateParams{Language: "fr-CA"})

	if _, err := store.AppendTranscript(ctx, sess.ID, "Bonjour"); err != nil {
		t.Fatalf("AppendTranscript: %v", err)
	}
	got, err := store.AppendTranscript(ctx, sess.ID, "patient stable")
	if err != nil {
		t.Fatalf("AppendTranscript: %v", err)
	}

	if got.Transcript != "Bonjour patient stable" {
		t.Errorf("unexpected transcript: %q", got.Transcript)
	}
	if got.ChunkCount != 2 {
		t.Errorf("expected 2 chunks, got %d", got.ChunkCount)
	}
}

func TestAppendTranscriptStoppedSession(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	ctx := context.Background()

	sess, _ := store.Create(ctx, CreateParams{})
	store.AppendTranscript(ctx, sess.ID, "before stop")
	if _, err := store.SetStatus(ctx, sess.ID, StatusStopped); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if _, err := store.AppendTranscript(ctx, sess.ID, "after stop"); err == nil {
		t.Fatal("expected error appending to stopped session")
	}

	got, _ := store.Get(ctx, sess.ID)
	if got.Transcript != "before stop" {
		t.Errorf("transcript mutated after stop: %q", got.Transcript)
	}
}

func TestListOrdering(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	ctx := context.Background()

	first, _ := store.Create(ctx, CreateParams{})
	// Force distinct creation times.
	_, err := store.Update(ctx, first.ID, func(s *Session) error {
		s.CreatedAt = s.CreatedAt.Add(-time.Minute)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	second, _ := store.Create(ctx, CreateParams{})

	sessions, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Errorf("expected newest session first, got %s", sessions[0].ID)
	}

	limited, _ := store.List(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 session with limit, got %d", len(limited))
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t, Config{})
	ctx := context.Background()

	sess, _ := store.Create(ctx, CreateParams{})
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestFallbackWhenRedisDown(t *testing.T) {
	store, mini := newTestStore(t, Config{})
	ctx := context.Background()

	mini.Close()

	sess, err := store.Create(ctx, CreateParams{Language: "fr-CA"})
	if err != nil {
		t.Fatalf("Create with redis down: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get with redis down: %v", err)
	}
	if got.Language != "fr-CA" {
		t.Errorf("unexpected session: %+v", got)
	}

	if _, err := store.AppendTranscript(ctx, sess.ID, "degraded mode"); err != nil {
		t.Fatalf("AppendTranscript with redis down: %v", err)
	}
	got, _ = store.Get(ctx, sess.ID)
	if got.Transcript != "degraded mode" {
		t.Errorf("unexpected transcript: %q", got.Transcript)
	}
}

func TestMemoryOnlyStore(t *testing.T) {
	store, err := NewStore(Config{}, nil, logger.NewDefault("session-test"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	sess, err := store.Create(ctx, CreateParams{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestCheckHealth(t *testing.T) {
	ctx := context.Background()

	store, mini := newTestStore(t, Config{})
	if h := store.CheckHealth(ctx); h.Status != observability.HealthStatusUp {
		t.Errorf("status = %q, want up", h.Status)
	}

	mini.Close()
	h := store.CheckHealth(ctx)
	if h.Status != observability.HealthStatusDegraded {
		t.Errorf("status with redis down = %q, want degraded", h.Status)
	}
	if h.Message == "" {
		t.Error("expected a message explaining the degradation")
	}

	inproc, err := NewStore(Config{}, nil, logger.NewDefault("session-test"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if h := inproc.CheckHealth(ctx); h.Status != observability.HealthStatusUp {
		t.Errorf("in-process status = %q, want up", h.Status)
	}
}
