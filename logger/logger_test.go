package logger

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test")
	cl := l.WithComponent("gateway")
	if cl == nil {
		t.Fatal("expected non-nil logger")
	}
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
}

func TestWithContext(t *testing.T) {
	l := NewDefault("test")
	ctx := context.WithValue(context.Background(), contextKey("session_id"), "sess-1")
	cl := l.WithContext(ctx)
	if cl == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestWithError(t *testing.T) {
	l := NewDefault("test")
	el := l.WithError(errors.New("boom"))
	if el == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestRegistryGetFallsBackToComponent(t *testing.T) {
	l := Get("never-registered")
	if l == nil {
		t.Fatal("expected non-nil logger for unregistered name")
	}
}

func TestRegistryGetReturnsRegistered(t *testing.T) {
	l := NewDefault("registered")
	Register("mine", l)
	got := Get("mine")
	if got != l {
		t.Fatal("expected registered logger instance back")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = Config{Level: "loud", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Fatal("expected timestamps enabled by default")
	}
}

func TestFieldsHelpers(t *testing.T) {
	m := Fields("session_id", "s1", "chunk", 3)
	if m["session_id"] != "s1" || m["chunk"] != 3 {
		t.Fatalf("unexpected fields map: %+v", m)
	}

	ef := ErrorFields("save", errors.New("boom"))
	if ef[FieldOperation] != "save" || ef[FieldError] != "boom" {
		t.Fatalf("unexpected error fields: %+v", ef)
	}

	df := DurationFields("transcribe", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Fatalf("unexpected duration fields: %+v", df)
	}
}
