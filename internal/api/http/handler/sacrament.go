package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type SacramentService interface {
	List(ctx context.Context, identity model.Identity) ([]model.Sacrament, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Sacrament, error)
	Get(ctx context.Context, identity model.Identity, id uuid.UUID) (model.Sacrament, error)
	CreateOwn(ctx context.Context, userID uuid.UUID, params model.CreateSacramentParams) (model.Sacrament, error)
	CreateForMember(ctx context.Context, params model.AdminSacramentParams) (model.Sacrament, error)
	Update(ctx context.Context, identity model.Identity, id uuid.UUID, params model.UpdateSacramentParams) (model.Sacrament, error)
	Delete(ctx context.Context, identity model.Identity, id uuid.UUID) error
	AdminDelete(ctx context.Context, id uuid.UUID) error
	UploadCertificate(ctx context.Context, identity model.Identity, id uuid.UUID, reader io.Reader, size int64, contentType string) (model.Sacrament, error)
	OpenCertificate(ctx context.Context, identity model.Identity, id uuid.UUID) (io.ReadCloser, error)
}

// Sacrament serves sacrament records and their scanned certificates.
type Sacrament struct {
	sacramentService SacramentService
	contextManager   model.ContextManager
	maxUploadBytes   int64
	logger           *logger.Logger
}

func NewSacrament(
	sacramentService SacramentService,
	contextManager model.ContextManager,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Sacrament {
	return &Sacrament{
		sacramentService: sacramentService,
		contextManager:   contextManager,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

type sacramentRequest struct {
	Type            string `json:"type"`
	Date            *Date  `json:"date"`
	CertificatePath string `json:"certificate_path"`
}

func (req sacramentRequest) params() model.CreateSacramentParams {
	return model.CreateSacramentParams{
		Type:            req.Type,
		Date:            req.Date.value(),
		CertificatePath: req.CertificatePath,
	}
}

type adminSacramentRequest struct {
	UserID   *uuid.UUID `json:"user_id"`
	MemberID *uuid.UUID `json:"member_id"`
	sacramentRequest
}

type updateSacramentRequest struct {
	Type            *string `json:"type"`
	Date            *Date   `json:"date"`
	CertificatePath *string `json:"certificate_path"`
}

type createdResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

func (h *Sacrament) List(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacraments, err := h.sacramentService.List(r.Context(), identity)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(sacraments, newSacramentResponse))
}

func (h *Sacrament) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacraments, err := h.sacramentService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(sacraments, newSacramentResponse))
}

func (h *Sacrament) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacrament, err := h.sacramentService.Get(r.Context(), identity, id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newSacramentResponse(sacrament))
}

// Create records a sacrament for the caller's own member profile.
func (h *Sacrament) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req sacramentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacrament, err := h.sacramentService.CreateOwn(r.Context(), identity.UserID, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Sacrament created", ID: sacrament.ID})
}

func (h *Sacrament) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req adminSacramentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacrament, err := h.sacramentService.CreateForMember(r.Context(), model.AdminSacramentParams{
		UserID:                req.UserID,
		MemberID:              req.MemberID,
		CreateSacramentParams: req.params(),
	})
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Sacrament created", ID: sacrament.ID})
}

func (h *Sacrament) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req updateSacramentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	sacrament, err := h.sacramentService.Update(r.Context(), identity, id, model.UpdateSacramentParams{
		Type:            req.Type,
		Date:            req.Date.value(),
		CertificatePath: req.CertificatePath,
	})
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newSacramentResponse(sacrament))
}

func (h *Sacrament) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.sacramentService.Delete(r.Context(), identity, id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Sacrament deleted"})
}

func (h *Sacrament) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.sacramentService.AdminDelete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Sacrament deleted"})
}

// cappedBody remembers a hit of the upload limit, since the storage client
// may not keep the reader error in its chain.
type cappedBody struct {
	io.ReadCloser
	exceeded *http.MaxBytesError
}

func (b *cappedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = tooLarge
	}
	return n, err
}

// UploadCertificate stores the raw request body as the record's certificate.
func (h *Sacrament) UploadCertificate(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if h.maxUploadBytes > 0 {
		if r.ContentLength > h.maxUploadBytes {
			WriteError(w, model.NewValidationError("certificate exceeds %d bytes", h.maxUploadBytes), h.logger)
			return
		}
		r.Body = &cappedBody{ReadCloser: http.MaxBytesReader(w, r.Body, h.maxUploadBytes)}
	}

	sacrament, err := h.sacramentService.UploadCertificate(r.Context(), identity, id, r.Body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		if body, ok := r.Body.(*cappedBody); ok && body.exceeded != nil {
			err = body.exceeded
		}
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newSacramentResponse(sacrament))
}

func (h *Sacrament) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "sacrament")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	reader, err := h.sacramentService.OpenCertificate(r.Context(), identity, id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+"-certificate"))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("Sacrament handler: certificate stream interrupted",
			"sacrament_id", id,
			"error", err.Error())
	}
}
