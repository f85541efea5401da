package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJobBegin(t *testing.T) {
	id := uuid.New()
	ctx, cancel := JobBegin(context.Background(), id, "extraction", 0)
	defer cancel()

	meta := GetJobMetadata(ctx)
	if meta.JobID != id || meta.JobType != "extraction" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if meta.RetryAttempt != 0 {
		t.Fatalf("expected attempt 0, got %d", meta.RetryAttempt)
	}
	remaining := time.Until(meta.Deadline)
	if remaining <= 0 || remaining > DefaultTimeout {
		t.Fatalf("deadline outside default timeout: %v", remaining)
	}

	ctx = SetRetryAttempt(ctx, 1)
	if got := GetRetryAttempt(ctx); got != 1 {
		t.Fatalf("expected attempt 1, got %d", got)
	}
}

func TestJobBegin_Timeout(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "extraction", time.Millisecond)
	defer cancel()

	<-ctx.Done()
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", ctx.Err())
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"dial tcp 10.0.0.1:443: connection refused", true},
		{"groq returned status 503", true},
		{"Error 429, Message: quota, Status: RESOURCE_EXHAUSTED", true},
		{"Error 503, Status: UNAVAILABLE", true},
		{"invalid api key", false},
		{"malformed json", false},
	}
	for _, tt := range tests {
		if got := IsRetryableError(errors.New(tt.err)); got != tt.want {
			t.Errorf("IsRetryableError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
	if IsRetryableError(nil) {
		t.Error("nil error must not be retryable")
	}
}
