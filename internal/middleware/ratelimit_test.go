package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func limitedCodes(t *testing.T, perMinute, requests int) []int {
	t.Helper()

	e := echo.New()
	e.POST("/lead", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, LeadRateLimiter(nil, perMinute, zap.NewNop()))

	codes := make([]int, 0, requests)
	for i := 0; i < requests; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lead", nil))
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestLeadRateLimiter(t *testing.T) {
	tests := []struct {
		name      string
		perMinute int
		want      []int
	}{
		{name: "burst then deny", perMinute: 2, want: []int{204, 204, 429}},
		{name: "zero disables limiting", perMinute: 0, want: []int{204, 204, 204}},
		{name: "negative disables limiting", perMinute: -5, want: []int{204, 204, 204}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, limitedCodes(t, tt.perMinute, len(tt.want)))
		})
	}
}
