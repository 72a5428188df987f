package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/graindesk/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]zerolog.Level{
		200: zerolog.InfoLevel,
		304: zerolog.InfoLevel,
		404: zerolog.WarnLevel,
		429: zerolog.WarnLevel,
		503: zerolog.ErrorLevel,
	}
	for status, want := range cases {
		if got := levelFor(status); got != want {
			t.Fatalf("levelFor(%d)=%v, want %v", status, got, want)
		}
	}
}

func TestRequestLogger_Fields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("LOG_PRETTY", "false")
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/buyers", func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/buyers?state=CA", nil))

	out := buf.String()
	for _, want := range []string{`"component":"http"`, `"level":"warn"`, `"path":"/api/v1/buyers"`, `"query":"state=CA"`, `"status":404`, w.Header().Get(RequestIDHeader)} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s: %s", want, out)
		}
	}
}
