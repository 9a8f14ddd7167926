package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/metrics"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestLogging_Handle(t *testing.T) {
	lg, buf := testutil.MakeBufferLogger()

	r := chi.NewRouter()
	r.Use(NewLogging(lg).Handle)
	r.Get("/members/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/123", nil))

	out := buf.String()
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "route=/members/{id}")
	assert.Contains(t, out, "status=418")
	assert.NotContains(t, out, "/members/123")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), "HTTP request failed")
}

func TestMetrics_Handle(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(NewMetrics(m).Handle)
	r.Get("/events/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	r.Get("/metrics", m.Handler().ServeHTTP)

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events/"+string(rune('a'+i)), nil))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var line string
	for _, l := range strings.Split(rec.Body.String(), "\n") {
		if strings.HasPrefix(l, "parish_http_requests_total{") && strings.Contains(l, `route="/events/{id}"`) {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.True(t, strings.HasSuffix(line, " 3"), line)
}
