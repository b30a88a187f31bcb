package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimit(t *testing.T) {
	limit, err := RateLimit("2-M")
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.Use(limit)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestRateLimitBadFormat(t *testing.T) {
	if _, err := RateLimit("lots"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS(), Logging(zap.NewNop()))
	r.POST("/api/v1/cart/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/cart/items", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("code = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
