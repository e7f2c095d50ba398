package observability

import (
	"context"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("endpoint = %q, want localhost:4318", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("sample rate = %v, want 1.0", cfg.SampleRate)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
}

func TestStartSpanWithoutProvider(t *testing.T) {
	// Without an initialized provider the global no-op tracer is used;
	// spans must still be safe to create and end.
	ctx, span := StartSpan(context.Background(), "test.operation")
	if ctx == nil {
		t.Fatal("context should not be nil")
	}
	span.End()
}

func TestServiceHealthAggregation(t *testing.T) {
	sh := &ServiceHealth{Service: "aurascribe", Status: HealthStatusUp, Version: "1.0.0"}

	sh.AddComponent(Health{Name: "redis", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Errorf("status after up component = %q, want up", sh.Status)
	}

	sh.AddComponent(Health{Name: "deepgram", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("status after degraded component = %q, want degraded", sh.Status)
	}

	sh.AddComponent(Health{Name: "kafka", Status: HealthStatusDown})
	if sh.Status != HealthStatusDown {
		t.Errorf("status after down component = %q, want down", sh.Status)
	}

	// A later healthy component must not mask the down status.
	sh.AddComponent(Health{Name: "store", Status: HealthStatusUp})
	if sh.Status != HealthStatusDown {
		t.Errorf("status = %q, want down to stick", sh.Status)
	}
	if len(sh.Components) != 4 {
		t.Errorf("components = %d, want 4", len(sh.Components))
	}
}

type staticChecker Health

func (c staticChecker) CheckHealth(ctx context.Context) Health { return Health(c) }

func TestEvaluateRunsCheckers(t *testing.T) {
	sh := Evaluate(context.Background(), "aurascribe", "1.0.0",
		staticChecker{Name: "sessions", Status: HealthStatusUp},
		staticChecker{Name: "transcription", Status: HealthStatusDegraded},
	)
	if sh.Service != "aurascribe" || sh.Version != "1.0.0" {
		t.Errorf("identity = %s/%s, want aurascribe/1.0.0", sh.Service, sh.Version)
	}
	if sh.Status != HealthStatusDegraded {
		t.Errorf("status = %q, want degraded", sh.Status)
	}
	if len(sh.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(sh.Components))
	}
	if sh.Components[0].Name != "sessions" || sh.Components[1].Name != "transcription" {
		t.Errorf("component order = %s, %s", sh.Components[0].Name, sh.Components[1].Name)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		status HealthStatus
		want   int
	}{
		{HealthStatusUp, 200},
		{HealthStatusDegraded, 200},
		{HealthStatusDown, 503},
	}
	for _, tc := range cases {
		sh := &ServiceHealth{Status: tc.status}
		if got := sh.HTTPStatus(); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.status, got, tc.want)
		}
	}
}
