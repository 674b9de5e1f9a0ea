package ratelimiter

import (
	"testing"
	"time"
)

func TestFixedWindowLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
			t.Fatalf("request %d denied inside limit", i+1)
		}
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	if allowed {
		t.Fatal("request over limit was allowed")
	}
	if retryAfter != time.Minute {
		t.Errorf("retry-after = %v, want %v", retryAfter, time.Minute)
	}

	// other clients are counted separately
	if allowed, _ := rl.Allow("10.0.0.2"); !allowed {
		t.Error("independent client denied")
	}
}

func TestFixedWindowReset(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 20*time.Millisecond)

	if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
		t.Fatal("first request denied")
	}
	if allowed, _ := rl.Allow("10.0.0.1"); allowed {
		t.Fatal("second request inside window allowed")
	}

	time.Sleep(50 * time.Millisecond)

	if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
		t.Error("request after window reset denied")
	}
}
