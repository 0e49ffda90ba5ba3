package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DELIVERY_MODE", "SIMULATED_DELAY", "THEME_PRIMARY", "LEAD_RATE_LIMIT", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Defaults()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DeliverySimulated, cfg.DeliveryMode)
	assert.Equal(t, 1500*time.Millisecond, cfg.SimulatedDelay)
	assert.Equal(t, 10, cfg.LeadRateLimit)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, DefaultTheme(), cfg.Theme)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DELIVERY_MODE", "EMAIL")
	t.Setenv("SIMULATED_DELAY", "250ms")
	t.Setenv("SIMULATE_DELIVERY_FAILURE", "true")
	t.Setenv("SALES_INQUIRY_TO", "leads@example.in")
	t.Setenv("THEME_PRIMARY", "#000000")
	t.Setenv("APP_ENV", "production")

	cfg := Defaults()
	assert.Equal(t, DeliveryEmail, cfg.DeliveryMode)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatedDelay)
	assert.True(t, cfg.SimulateDeliveryFailure)
	assert.Equal(t, "leads@example.in", cfg.Recipients()["sales"])
	assert.Equal(t, "#000000", cfg.Theme.Primary)
	assert.Equal(t, DefaultTheme().Secondary, cfg.Theme.Secondary)
	assert.True(t, cfg.IsProduction())
}

func TestNewLogger(t *testing.T) {
	cfg := Config{Env: "development", LogLevel: "debug"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}

func TestThemeColoursMustBeHex(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "#000", want: "#000"},
		{value: " #12ABef ", want: "#12ABef"},
		{value: "red", want: DefaultTheme().Primary},
		{value: "#000;background:url(https://evil.example/x)", want: DefaultTheme().Primary},
		{value: `#fff" onmouseover="alert(1)`, want: DefaultTheme().Primary},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("THEME_PRIMARY", tt.value)
			t.Setenv("THEME_ACCENT", tt.value)

			cfg := Defaults()
			assert.Equal(t, tt.want, cfg.Theme.Primary)
			if tt.want == DefaultTheme().Primary {
				assert.Equal(t, DefaultTheme().Accent, cfg.Theme.Accent)
			}
		})
	}
}
