package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type MemberService interface {
	Create(ctx context.Context, params model.MemberParams) (model.Member, model.IssuedClaimCode, error)
	IssueClaimCode(ctx context.Context, id uuid.UUID) (model.IssuedClaimCode, error)
	Get(ctx context.Context, id uuid.UUID) (model.Member, error)
	List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error)
	Update(ctx context.Context, id uuid.UUID, params model.MemberParams) (model.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ClaimEvents(ctx context.Context, id uuid.UUID) ([]model.ClaimEvent, error)
}

// Member serves the parish roll. Claim codes appear in responses only at the
// moment they are issued.
type Member struct {
	memberService MemberService
	logger        *logger.Logger
	now           func() time.Time
}

func NewMember(memberService MemberService, logger *logger.Logger) *Member {
	return &Member{memberService: memberService, logger: logger, now: time.Now}
}

// optionalID tells an absent field apart from an explicit null.
type optionalID struct {
	Set bool
	ID  *uuid.UUID
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

type memberRequest struct {
	Name       *string    `json:"name"`
	Contact    *string    `json:"contact"`
	Address    *string    `json:"address"`
	Family     *string    `json:"family"`
	Status     *string    `json:"status"`
	DistrictID optionalID `json:"district_id"`
}

func (req memberRequest) params() model.MemberParams {
	return model.MemberParams{
		Name:          req.Name,
		Contact:       req.Contact,
		Address:       req.Address,
		Family:        req.Family,
		Status:        req.Status,
		DistrictID:    req.DistrictID.ID,
		ClearDistrict: req.DistrictID.Set && req.DistrictID.ID == nil,
	}
}

// List accepts optional district_id and status query filters.
func (h *Member) List(w http.ResponseWriter, r *http.Request) {
	var filter model.MemberFilter
	query := r.URL.Query()

	if v := query.Get("district_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			WriteError(w, model.NewValidationError("invalid district_id"), h.logger)
			return
		}
		filter.DistrictID = &id
	}
	if v := query.Get("status"); v != "" {
		status, err := model.ParseMemberStatus(v)
		if err != nil {
			WriteError(w, err, h.logger)
			return
		}
		filter.Status = status
	}

	members, err := h.memberService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	now := h.now()
	writeJSON(w, http.StatusOK, mapSlice(members, func(m model.Member) memberResponse {
		return newMemberResponse(m, now)
	}))
}

func (h *Member) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "member")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	member, err := h.memberService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newMemberResponse(member, h.now()))
}

type createMemberResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
	claimCodeResponse
}

func (h *Member) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	member, issued, err := h.memberService.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, createMemberResponse{
		Message: "Member created",
		ID:      member.ID,
		claimCodeResponse: claimCodeResponse{
			ClaimCode:          issued.Code,
			ClaimCodeExpiresAt: issued.ExpiresAt,
		},
	})
}

func (h *Member) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "member")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	member, err := h.memberService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newMemberResponse(member, h.now()))
}

func (h *Member) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "member")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.memberService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Member deleted"})
}

// IssueClaimCode replaces the claim code of an unlinked member.
func (h *Member) IssueClaimCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "member")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	issued, err := h.memberService.IssueClaimCode(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, claimCodeResponse{
		ClaimCode:          issued.Code,
		ClaimCodeExpiresAt: issued.ExpiresAt,
	})
}

func (h *Member) ClaimEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "member")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	events, err := h.memberService.ClaimEvents(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(events, func(e model.ClaimEvent) claimEventResponse {
		return claimEventResponse{
			ID:         e.ID,
			MemberID:   e.MemberID,
			UserID:     e.UserID,
			Event:      e.Kind,
			OccurredAt: e.OccurredAt,
		}
	}))
}
