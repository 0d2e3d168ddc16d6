package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(time.Second, 3)

	// First 3 requests should succeed
	for i := 0; i < 3; i++ {
		if !limiter.Allow("test-key") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 4th request should be blocked
	if limiter.Allow("test-key") {
		t.Error("4th request should be blocked")
	}

	// Wait for window to expire
	time.Sleep(1100 * time.Millisecond)

	// Should be allowed again
	if !limiter.Allow("test-key") {
		t.Error("Request after window expiry should be allowed")
	}
}

func TestLimiter_GetRemaining(t *testing.T) {
	limiter := NewLimiter(time.Second, 5)

	if remaining := limiter.GetRemaining("test-key"); remaining != 5 {
		t.Errorf("Expected 5 remaining, got %d", remaining)
	}

	limiter.Allow("test-key")
	limiter.Allow("test-key")

	if remaining := limiter.GetRemaining("test-key"); remaining != 3 {
		t.Errorf("Expected 3 remaining, got %d", remaining)
	}
}

func TestMultiKeyLimiter_CheckRegistration(t *testing.T) {
	limiter := NewCustomMultiKeyLimiter(2, 2, 10)

	// First 2 signups from same IP should succeed
	if err := limiter.CheckRegistration("192.168.1.1", "test@example.com"); err != nil {
		t.Errorf("First signup should succeed: %v", err)
	}
	if err := limiter.CheckRegistration("192.168.1.1", "test2@example.com"); err != nil {
		t.Errorf("Second signup should succeed: %v", err)
	}

	// 3rd signup from same IP should fail
	if err := limiter.CheckRegistration("192.168.1.1", "test3@example.com"); err == nil {
		t.Error("3rd signup from same IP should be blocked")
	}

	// Signup from different IP should succeed
	if err := limiter.CheckRegistration("192.168.1.2", "test4@example.com"); err != nil {
		t.Errorf("Signup from different IP should succeed: %v", err)
	}
}

func TestMultiKeyLimiter_CheckAvailability(t *testing.T) {
	limiter := NewCustomMultiKeyLimiter(5, 5, 3)

	// First 3 checks should succeed
	for i := 0; i < 3; i++ {
		if err := limiter.CheckAvailability("192.168.1.1"); err != nil {
			t.Errorf("Check %d should succeed: %v", i+1, err)
		}
	}

	// 4th check should fail
	if err := limiter.CheckAvailability("192.168.1.1"); err == nil {
		t.Error("4th check should be blocked")
	}
}
