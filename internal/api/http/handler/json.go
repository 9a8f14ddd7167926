package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

const (
	dateLayout = "2006-01-02"

	maxJSONBytes = 1 << 20
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxJSONBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.NewValidationError("request body exceeds %d bytes", tooLarge.Limit)
		}
		var de *dateError
		if errors.As(err, &de) {
			return model.NewValidationError("%s", de.Error())
		}
		return model.NewValidationError("invalid request body")
	}
	return nil
}

// pathID parses the {id} route parameter. A malformed id names no row, so it
// is reported as not found.
func pathID(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, model.NewNotFoundError(entity)
	}
	return id, nil
}

func requestIdentity(cm model.ContextManager, r *http.Request) (model.Identity, error) {
	identity, ok := cm.GetIdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, model.ErrUnauthorized
	}
	return identity, nil
}

type dateError struct {
	value string
}

func (e *dateError) Error() string {
	return fmt.Sprintf("invalid date %s: expected YYYY-MM-DD", e.value)
}

// Date is a calendar day carried as YYYY-MM-DD. RFC 3339 timestamps are
// accepted on input and truncated to their day.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &dateError{value: string(b)}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return &dateError{value: fmt.Sprintf("%q", s)}
		}
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (d *Date) value() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
