package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/parishkeeper/parish-server/internal/api/http/handler"
	"github.com/parishkeeper/parish-server/internal/logger"
)

// Recoverer turns a handler panic into the JSON 500 every other failure gets.
type Recoverer struct {
	logger *logger.Logger
}

func NewRecoverer(logger *logger.Logger) *Recoverer {
	return &Recoverer{logger: logger}
}

func (m *Recoverer) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// net/http uses ErrAbortHandler to drop the connection silently.
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			m.logger.Error("HTTP handler panicked",
				"panic", fmt.Sprint(rec),
				"route", routePattern(r),
				"request_id", chimiddleware.GetReqID(r.Context()),
				"stack", string(debug.Stack()))
			handler.WriteError(w, errors.New("panic"), m.logger)
		}()

		next.ServeHTTP(w, r)
	})
}
