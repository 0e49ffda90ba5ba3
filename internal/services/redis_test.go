package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRedisRateLimitStoreWindowKey(t *testing.T) {
	s := NewRedisRateLimitStore(nil, 10, time.Minute)

	base := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	s.now = func() time.Time { return base.Add(20 * time.Second) }
	first := s.WindowKey("203.0.113.7")

	s.now = func() time.Time { return base.Add(59 * time.Second) }
	assert.Equal(t, first, s.WindowKey("203.0.113.7"), "same minute shares a counter")

	s.now = func() time.Time { return base.Add(61 * time.Second) }
	assert.NotEqual(t, first, s.WindowKey("203.0.113.7"))
	assert.Equal(t, "ratelimit:leads:203.0.113.7:1772360100", first)
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", zap.NewNop())
	assert.Error(t, err)
}
