package client

import (
	"testing"
	"time"
)

func TestBackoffDelayDoublesThenCaps(t *testing.T) {
	want := []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		32 * time.Second,
		32 * time.Second,
	}
	for i, w := range want {
		attempt := i + 1
		if got := backoffDelay(attempt); got != w {
			t.Errorf("attempt %d: backoff %v, want %v", attempt, got, w)
		}
	}
	if got := backoffDelay(MaxReconnects); got != 32*time.Second {
		t.Errorf("attempt %d: backoff %v, want capped 32s", MaxReconnects, got)
	}
}
