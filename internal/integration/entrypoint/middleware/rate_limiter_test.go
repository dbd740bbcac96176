package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := NewRateLimiterWithConfig(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("attempt %d rejected, want allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("attempt over the limit allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first key rejected")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second key must have its own window")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first attempt rejected")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second attempt within window allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("attempt after window expiry rejected")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	rl.allow("10.0.0.1")
	rl.Reset()
	if !rl.allow("10.0.0.1") {
		t.Error("reset did not clear the window")
	}
}
