package rate_limit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CheckRateLimit_WithinLimits_AllowsRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	userID := uuid.New()
	rpsLimit := 10
	burstLimit := 20

	rateLimiter.ResetRateLimit(userID)

	result, err := rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, burstLimit-1, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now().Add(-time.Second)))
}

func Test_CheckRateLimit_ExceedsBurstLimit_DeniesRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	userID := uuid.New()
	rpsLimit := 1
	burstLimit := 2

	rateLimiter.ResetRateLimit(userID)

	for i := 0; i < burstLimit; i++ {
		result, err := rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.True(t, result.RetryAfterSec > 0)
}

func Test_CheckRateLimit_TokensRefillOverTime_AllowsRequestsAfterWait(t *testing.T) {
	rateLimiter := NewRateLimiter()
	userID := uuid.New()
	rpsLimit := 10
	burstLimit := 1

	rateLimiter.ResetRateLimit(userID)

	result, err := rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)

	result, err = rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	time.Sleep(150 * time.Millisecond)

	result, err = rateLimiter.CheckRateLimit(userID, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_CheckRateLimit_DifferentUsers_IsolatedLimits(t *testing.T) {
	rateLimiter := NewRateLimiter()
	userID1 := uuid.New()
	userID2 := uuid.New()
	rpsLimit := 1
	burstLimit := 1

	rateLimiter.ResetRateLimit(userID1)
	rateLimiter.ResetRateLimit(userID2)

	result1, err := rateLimiter.CheckRateLimit(userID1, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result1.Allowed)

	result1, err = rateLimiter.CheckRateLimit(userID1, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result1.Allowed)

	result2, err := rateLimiter.CheckRateLimit(userID2, rpsLimit, burstLimit)
	assert.NoError(t, err)
	assert.True(t, result2.Allowed)
}
