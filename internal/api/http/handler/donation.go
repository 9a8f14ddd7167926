package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type DonationService interface {
	List(ctx context.Context) ([]model.Donation, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Donation, error)
	CreateOwn(ctx context.Context, userID uuid.UUID, params model.DonationParams) (model.Donation, error)
	CreateForMember(ctx context.Context, params model.DonationParams) (model.Donation, error)
	Update(ctx context.Context, id uuid.UUID, params model.DonationParams) (model.Donation, error)
	DeleteOwn(ctx context.Context, userID, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Donation struct {
	donationService DonationService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

func NewDonation(donationService DonationService, contextManager model.ContextManager, logger *logger.Logger) *Donation {
	return &Donation{
		donationService: donationService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

type donationRequest struct {
	MemberID *uuid.UUID `json:"member_id"`
	Amount   *float64   `json:"amount"`
	Type     *string    `json:"type"`
	Date     *Date      `json:"date"`
}

func (req donationRequest) params() model.DonationParams {
	return model.DonationParams{
		MemberID: req.MemberID,
		Amount:   req.Amount,
		Type:     req.Type,
		Date:     req.Date.value(),
	}
}

func (h *Donation) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donationService.List(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(donations, newDonationResponse))
}

func (h *Donation) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	donations, err := h.donationService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(donations, newDonationResponse))
}

// Create records a gift from the caller. A member_id in the body is ignored.
func (h *Donation) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req donationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	req.MemberID = nil

	donation, err := h.donationService.CreateOwn(r.Context(), identity.UserID, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Donation recorded", ID: donation.ID})
}

func (h *Donation) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	donation, err := h.donationService.CreateForMember(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Donation recorded", ID: donation.ID})
}

func (h *Donation) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "donation")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req donationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	donation, err := h.donationService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newDonationResponse(donation))
}

// Delete removes one of the caller's own gifts.
func (h *Donation) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	id, err := pathID(r, "donation")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.donationService.DeleteOwn(r.Context(), identity.UserID, id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Donation deleted"})
}

func (h *Donation) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "donation")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.donationService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Donation deleted"})
}
