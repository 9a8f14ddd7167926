package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

var sentinelStatus = []struct {
	err    error
	status int
}{
	{model.ErrInvalidClaimCode, http.StatusBadRequest},
	{model.ErrClaimCodeExpired, http.StatusBadRequest},
	{model.ErrAlreadyLinked, http.StatusBadRequest},
	{model.ErrProfileAlreadyLinked, http.StatusBadRequest},
	{model.ErrNoMemberProfile, http.StatusBadRequest},
	{model.ErrInvalidCredentials, http.StatusUnauthorized},
	{model.ErrInvalidToken, http.StatusUnauthorized},
	{model.ErrUnauthorized, http.StatusUnauthorized},
	{model.ErrForbidden, http.StatusForbidden},
	{model.ErrDuplicateEmail, http.StatusConflict},
}

// StatusFor maps a service error onto an HTTP status and client message.
// Unknown errors become 500 with a generic message.
func StatusFor(err error) (int, string) {
	var (
		validation *model.ValidationError
		notFound   *model.NotFoundError
		reference  *model.ReferenceError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusBadRequest, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &reference):
		return http.StatusNotFound, reference.Error()
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrReferenceNotFound):
		return http.StatusNotFound, "not found"
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status, s.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// WriteError writes err as {"error": message}. Internal errors are logged
// and never echoed to the client.
func WriteError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("HTTP handler: request failed", "error", err.Error())
	}
	writeJSON(w, status, errorResponse{Error: message})
}
