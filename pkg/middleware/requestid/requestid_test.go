package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		*capture = Value(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	var seen string
	r := requestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected a generated request id header")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid request id, got %q: %v", id, err)
	}
	if seen != id {
		t.Fatalf("context id %q does not match header %q", seen, id)
	}
}

func TestRequestIDEchoesInboundValue(t *testing.T) {
	var seen string
	r := requestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-trace-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-trace-42" {
		t.Fatalf("expected inbound id kept, got %q", got)
	}
	if seen != "client-trace-42" {
		t.Fatalf("expected context id kept, got %q", seen)
	}
}
