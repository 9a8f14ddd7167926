package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestRecoverer_Handle(t *testing.T) {
	lg, buf := testutil.MakeBufferLogger()

	r := chi.NewRouter()
	r.Use(NewRecoverer(lg).Handle)
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "HTTP handler panicked")
	assert.Contains(t, buf.String(), "nil map write")
	assert.Contains(t, buf.String(), "recover_test.go")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverer_Handle_AbortHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(NewRecoverer(testutil.MakeNoopLogger()).Handle)
	r.Get("/abort", func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}
