package interview

import (
	"testing"
	"time"
)

func TestTimeFor(t *testing.T) {
	tests := []struct {
		complexity int
		want       time.Duration
	}{
		{1, 45 * time.Second},
		{2, 60 * time.Second},
		{3, 90 * time.Second},
	}
	for _, tt := range tests {
		if got := TimeFor(tt.complexity); got != tt.want {
			t.Errorf("TimeFor(%d) = %v, want %v", tt.complexity, got, tt.want)
		}
	}
}

func TestGuardRemaining(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	g := NewGuard(start, 2)

	left, expired := g.Remaining(start.Add(10 * time.Second))
	if expired {
		t.Fatal("expired 10s into a 60s budget")
	}
	if left != 50*time.Second {
		t.Errorf("remaining = %v, want 50s", left)
	}

	left, expired = g.Remaining(start.Add(61 * time.Second))
	if !expired {
		t.Fatal("not expired past the deadline")
	}
	if left != 0 {
		t.Errorf("remaining = %v after expiry, want 0", left)
	}
}

func TestGuardExpiryLatches(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	g := NewGuard(start, 1)

	if _, expired := g.Remaining(start.Add(46 * time.Second)); !expired {
		t.Fatal("not expired past the deadline")
	}
	// An earlier clock reading after expiry must not revive the guard.
	if _, expired := g.Remaining(start); !expired {
		t.Error("expiry did not latch")
	}
}
