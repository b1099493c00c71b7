package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// a different client has its own window
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	rl.Stop()
	rl.Stop() // idempotent

	select {
	case <-rl.done:
	default:
		t.Fatal("done channel still open after Stop")
	}
}
