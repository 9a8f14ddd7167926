package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type DistrictService interface {
	List(ctx context.Context) ([]model.District, error)
	Get(ctx context.Context, id uuid.UUID) (model.DistrictDetail, error)
	Create(ctx context.Context, params model.DistrictParams) (model.District, error)
	Update(ctx context.Context, id uuid.UUID, params model.DistrictParams) (model.District, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type District struct {
	districtService DistrictService
	logger          *logger.Logger
}

func NewDistrict(districtService DistrictService, logger *logger.Logger) *District {
	return &District{districtService: districtService, logger: logger}
}

type districtRequest struct {
	Name        *string `json:"name"`
	LeaderName  *string `json:"leader_name"`
	Description *string `json:"description"`
}

func (req districtRequest) params() model.DistrictParams {
	return model.DistrictParams{Name: req.Name, LeaderName: req.LeaderName, Description: req.Description}
}

func (h *District) List(w http.ResponseWriter, r *http.Request) {
	districts, err := h.districtService.List(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(districts, newDistrictResponse))
}

// Get returns the district with the id and name of each member.
func (h *District) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "district")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	detail, err := h.districtService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, districtDetailResponse{
		districtResponse: newDistrictResponse(detail.District),
		Members: mapSlice(detail.Members, func(m model.Member) districtMemberResponse {
			return districtMemberResponse{ID: m.ID, Name: m.Name}
		}),
	})
}

func (h *District) Create(w http.ResponseWriter, r *http.Request) {
	var req districtRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	district, err := h.districtService.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, newDistrictResponse(district))
}

func (h *District) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "district")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req districtRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	district, err := h.districtService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newDistrictResponse(district))
}

func (h *District) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "district")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.districtService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "District deleted"})
}
