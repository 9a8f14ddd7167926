package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type profileResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	MemberID *uuid.UUID `json:"member_id"`
}

func newProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		ID:       p.User.ID,
		Name:     p.User.Name,
		Email:    p.User.Email,
		Role:     p.User.Role,
		MemberID: p.MemberID,
	}
}

type memberResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Contact            string             `json:"contact"`
	Address            string             `json:"address"`
	Family             string             `json:"family"`
	Status             model.MemberStatus `json:"status"`
	DistrictID         *uuid.UUID         `json:"district_id"`
	UserID             *uuid.UUID         `json:"user_id"`
	Claimed            bool               `json:"claimed"`
	ClaimState         model.ClaimState   `json:"claim_state"`
	ClaimCodeExpiresAt *time.Time         `json:"claim_code_expires_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func newMemberResponse(m model.Member, now time.Time) memberResponse {
	resp := memberResponse{
		ID:         m.ID,
		Name:       m.Name,
		Contact:    m.Contact,
		Address:    m.Address,
		Family:     m.Family,
		Status:     m.Status,
		DistrictID: m.DistrictID,
		UserID:     m.UserID,
		Claimed:    m.Claimed(),
		ClaimState: m.ClaimState(now),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if !m.Claimed() {
		resp.ClaimCodeExpiresAt = m.ClaimCodeExpiresAt
	}
	return resp
}

type claimCodeResponse struct {
	ClaimCode          string    `json:"claim_code"`
	ClaimCodeExpiresAt time.Time `json:"claim_code_expires_at"`
}

type claimEventResponse struct {
	ID         uuid.UUID            `json:"id"`
	MemberID   uuid.UUID            `json:"member_id"`
	UserID     *uuid.UUID           `json:"user_id"`
	Event      model.ClaimEventKind `json:"event"`
	OccurredAt time.Time            `json:"occurred_at"`
}

type sacramentResponse struct {
	ID              uuid.UUID  `json:"id"`
	MemberID        uuid.UUID  `json:"member_id"`
	MemberName      string     `json:"member_name"`
	UserID          *uuid.UUID `json:"user_id"`
	Type            string     `json:"type"`
	Date            *string    `json:"date"`
	CertificatePath string     `json:"certificate_path"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func newSacramentResponse(s model.Sacrament) sacramentResponse {
	return sacramentResponse{
		ID:              s.ID,
		MemberID:        s.MemberID,
		MemberName:      s.MemberName,
		UserID:          s.MemberUserID,
		Type:            s.Type,
		Date:            formatDate(s.Date),
		CertificatePath: s.CertificatePath,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type donationResponse struct {
	ID         uuid.UUID          `json:"id"`
	MemberID   uuid.UUID          `json:"member_id"`
	MemberName string             `json:"member_name"`
	Amount     float64            `json:"amount"`
	Type       model.DonationType `json:"type"`
	Date       *string            `json:"date"`
	CreatedAt  time.Time          `json:"created_at"`
}

func newDonationResponse(d model.Donation) donationResponse {
	return donationResponse{
		ID:         d.ID,
		MemberID:   d.MemberID,
		MemberName: d.MemberName,
		Amount:     d.Amount,
		Type:       d.Type,
		Date:       formatDate(d.Date),
		CreatedAt:  d.CreatedAt,
	}
}

type eventResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        *string   `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func newEventResponse(e model.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        formatDate(&e.Date),
		CreatedAt:   e.CreatedAt,
	}
}

type attendanceResponse struct {
	ID         uuid.UUID              `json:"id"`
	EventID    uuid.UUID              `json:"event_id"`
	EventName  string                 `json:"event_name"`
	MemberID   uuid.UUID              `json:"member_id"`
	MemberName string                 `json:"member_name"`
	Status     model.AttendanceStatus `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newAttendanceResponse(a model.Attendance) attendanceResponse {
	return attendanceResponse{
		ID:         a.ID,
		EventID:    a.EventID,
		EventName:  a.EventName,
		MemberID:   a.MemberID,
		MemberName: a.MemberName,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

type districtResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LeaderName  string    `json:"leader_name"`
	Description string    `json:"description"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func newDistrictResponse(d model.District) districtResponse {
	return districtResponse{
		ID:          d.ID,
		Name:        d.Name,
		LeaderName:  d.LeaderName,
		Description: d.Description,
		MemberCount: d.MemberCount,
		CreatedAt:   d.CreatedAt,
	}
}

type districtMemberResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type districtDetailResponse struct {
	districtResponse
	Members []districtMemberResponse `json:"members"`
}

type announcementResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Category    string    `json:"category"`
	PublishDate time.Time `json:"publish_date"`
	ExpiryDate  *string   `json:"expiry_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func newAnnouncementResponse(a model.Announcement) announcementResponse {
	return announcementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Message:     a.Message,
		Category:    a.Category,
		PublishDate: a.PublishDate,
		ExpiryDate:  formatDate(a.ExpiryDate),
		CreatedAt:   a.CreatedAt,
	}
}

// mapSlice converts a list, returning an empty slice instead of nil so lists
// encode as [].
func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
