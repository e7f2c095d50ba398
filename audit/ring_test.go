package audit

import (
	"context"
	"fmt"
	"testing"
)

func TestRingKeepsLastN(t *testing.T) {
	ring := NewRing(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ev := Event{Action: fmt.Sprintf("action-%d", i)}
		if err := ring.Publish(ctx, ev); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	recent := ring.Recent()
	if len(recent) != 3 {
		t.Fatalf("recent = %d events, want 3", len(recent))
	}
	for i, want := range []string{"action-2", "action-3", "action-4"} {
		if recent[i].Action != want {
			t.Errorf("recent[%d] = %q, want %q", i, recent[i].Action, want)
		}
	}
	if recent[0].Time.IsZero() {
		t.Error("publish should stamp a time")
	}
}

func TestRingPartialFill(t *testing.T) {
	ring := NewRing(10)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		ring.Publish(ctx, Event{Action: fmt.Sprintf("a-%d", i)})
	}
	recent := ring.Recent()
	if len(recent) != 4 {
		t.Fatalf("recent = %d events, want 4", len(recent))
	}
	if recent[0].Action != "a-0" || recent[3].Action != "a-3" {
		t.Errorf("unexpected order: %v", recent)
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRing(4), NewRing(4)
	multi := Multi{a, b}

	if err := multi.Publish(context.Background(), Event{Action: ActionSessionCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(a.Recent()) != 1 || len(b.Recent()) != 1 {
		t.Error("both publishers should receive the event")
	}
	if err := multi.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
