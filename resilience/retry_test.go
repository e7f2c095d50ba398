package resilience

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skillsenselab/aurascribe/errors"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}

	result, err := Retry(context.Background(), cfg, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", stderrors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if result != "ok" {
		t.Errorf("unexpected result: %s", result)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	cfg := RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond}

	_, err := Retry(context.Background(), cfg, func() (int, error) {
		attempts++
		return 0, stderrors.New("always fails")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, DefaultRetryConfig(), func() (int, error) {
		return 0, stderrors.New("fail")
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetryAppErrors(t *testing.T) {
	if !RetryAppErrors(errors.ProviderUnavailable(stderrors.New("down"))) {
		t.Error("expected retry for retryable provider error")
	}
	if RetryAppErrors(errors.Unauthorized("bad key")) {
		t.Error("did not expect retry for auth error")
	}
	if RetryAppErrors(stderrors.New("plain")) {
		t.Error("did not expect retry for plain error")
	}
	if RetryAppErrors(context.Canceled) {
		t.Error("did not expect retry after cancellation")
	}
}

func TestBulkheadLimitsConcurrency(t *testing.T) {
	bh := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 2, MaxWait: -1})

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := bh.Execute(context.Background(), func() error {
				cur := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			if err != nil {
				t.Errorf("Execute: %v", err)
			}
		}()
	}
	wg.Wait()

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("expected at most 2 concurrent, saw %d", p)
	}
}

func TestBulkheadFailsFastWhenFull(t *testing.T) {
	bh := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: 0})

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		bh.Execute(context.Background(), func() error {
			close(done)
			<-release
			return nil
		})
	}()
	<-done

	err := bh.Execute(context.Background(), func() error { return nil })
	if !stderrors.Is(err, ErrBulkheadFull) {
		t.Errorf("expected ErrBulkheadFull, got %v", err)
	}
	close(release)
}

func TestBulkheadWaitCancelled(t *testing.T) {
	bh := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: -1})

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		bh.Execute(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := bh.Execute(ctx, func() error { return nil })
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	close(release)
}
