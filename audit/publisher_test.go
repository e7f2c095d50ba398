package audit

import (
	"context"
	"testing"

	"github.com/skillsenselab/aurascribe/logger"
)

func TestDisabledConfigReturnsNop(t *testing.T) {
	pub, err := NewPublisher(Config{Enabled: false}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if _, ok := pub.(*Nop); !ok {
		t.Fatalf("publisher type %T, want *Nop", pub)
	}
	if err := pub.Publish(context.Background(), Event{Action: ActionSessionCreated}); err != nil {
		t.Errorf("nop publish should never fail: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("nop close should never fail: %v", err)
	}
}

func TestEnabledConfigRequiresBrokers(t *testing.T) {
	_, err := NewPublisher(Config{Enabled: true}, logger.NewDefault("test"))
	if err == nil {
		t.Fatal("enabled audit with no brokers should fail validation")
	}
}

func TestConfigDurationValidation(t *testing.T) {
	cfg := Config{Enabled: true, Brokers: []string{"localhost:9092"}, WriteTimeout: "not-a-duration"}
	if _, err := NewPublisher(cfg, logger.NewDefault("test")); err == nil {
		t.Fatal("bad write timeout should fail validation")
	}
}

func TestPublishAfterClose(t *testing.T) {
	pub, err := NewPublisher(Config{Enabled: true, Brokers: []string{"localhost:9092"}}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := pub.Publish(context.Background(), Event{Action: ActionSessionDeleted}); err == nil {
		t.Error("publish after close should fail")
	}
}
