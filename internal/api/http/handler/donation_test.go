package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/mocks"
	"github.com/parishkeeper/parish-server/internal/model"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestDonation_Create_IgnoresMemberID(t *testing.T) {
	svc := mocks.NewDonationService(t)
	h := NewDonation(svc, ctxManager, testutil.MakeNoopLogger())
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleMember}
	id := uuid.New()

	svc.On("CreateOwn", mock.Anything, identity.UserID, mock.MatchedBy(func(p model.DonationParams) bool {
		return p.MemberID == nil && p.Amount != nil && *p.Amount == 20 && p.Type != nil && *p.Type == "offering"
	})).Return(model.Donation{ID: id}, nil)

	rec := serve(h.Create, withIdentity(newRequest(http.MethodPost, "/donations/",
		`{"member_id":"`+uuid.NewString()+`","amount":20,"type":"offering"}`), identity))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, id, decodeBody[createdResponse](t, rec).ID)
}

func TestDonation_Delete_NotOwner(t *testing.T) {
	svc := mocks.NewDonationService(t)
	h := NewDonation(svc, ctxManager, testutil.MakeNoopLogger())
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleMember}
	id := uuid.New()
	svc.On("DeleteOwn", mock.Anything, identity.UserID, id).Return(model.NewNotFoundError("donation"))

	rec := serve(h.Delete, withID(withIdentity(newRequest(http.MethodDelete, "/donations/x", ""), identity), id.String()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "donation not found", errorMessage(t, rec))
}

func TestDonation_AdminCreate_UnknownMember(t *testing.T) {
	svc := mocks.NewDonationService(t)
	h := NewDonation(svc, ctxManager, testutil.MakeNoopLogger())
	svc.On("CreateForMember", mock.Anything, mock.Anything).Return(model.Donation{}, model.NewReferenceError("member"))

	rec := serve(h.AdminCreate, newRequest(http.MethodPost, "/donations/admin/add",
		`{"member_id":"`+uuid.NewString()+`","amount":5}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDonation_ListMine_Empty(t *testing.T) {
	svc := mocks.NewDonationService(t)
	h := NewDonation(svc, ctxManager, testutil.MakeNoopLogger())
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleMember}
	svc.On("ListMine", mock.Anything, identity.UserID).Return([]model.Donation{}, nil)

	rec := serve(h.ListMine, withIdentity(newRequest(http.MethodGet, "/donations/my-donations", ""), identity))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
