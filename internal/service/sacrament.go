package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type Sacrament struct {
	sacramentStore model.SacramentStore
	memberStore    model.MemberStore
	userStore      model.UserStore
	storage        model.Storage
	logger         *logger.Logger
	now            func() time.Time
}

func NewSacrament(
	sacramentStore model.SacramentStore,
	memberStore model.MemberStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Sacrament {
	return &Sacrament{
		sacramentStore: sacramentStore,
		memberStore:    memberStore,
		userStore:      userStore,
		storage:        storage,
		logger:         logger,
		now:            time.Now,
	}
}

func certificateKey(id uuid.UUID) string {
	return "sacraments/" + id.String() + "/certificate"
}

// List returns every record to admins and staff and only their own to members.
func (s *Sacrament) List(ctx context.Context, identity model.Identity) ([]model.Sacrament, error) {
	if identity.HasRole(model.RoleAdmin, model.RoleStaff) {
		return s.sacramentStore.List(ctx)
	}
	return s.ListMine(ctx, identity.UserID)
}

// ListMine returns the caller's records, or none when the caller has no
// member profile.
func (s *Sacrament) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Sacrament, error) {
	member, err := s.memberStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return []model.Sacrament{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by user id: %w", err)
	}
	return s.sacramentStore.ListByMember(ctx, member.ID)
}

// Get hides records the caller may not read behind a not found error.
func (s *Sacrament) Get(ctx context.Context, identity model.Identity, id uuid.UUID) (model.Sacrament, error) {
	sacrament, err := s.sacramentStore.GetByID(ctx, id)
	if err != nil {
		return model.Sacrament{}, err
	}
	if !canRead(identity, sacrament) {
		return model.Sacrament{}, model.NewNotFoundError("sacrament")
	}
	return sacrament, nil
}

func owns(identity model.Identity, sacrament model.Sacrament) bool {
	return sacrament.MemberUserID != nil && *sacrament.MemberUserID == identity.UserID
}

func canRead(identity model.Identity, sacrament model.Sacrament) bool {
	return identity.HasRole(model.RoleAdmin, model.RoleStaff) || owns(identity, sacrament)
}

func canWrite(identity model.Identity, sacrament model.Sacrament) bool {
	return identity.HasRole(model.RoleAdmin) || owns(identity, sacrament)
}

func (s *Sacrament) getWritable(ctx context.Context, identity model.Identity, id uuid.UUID) (model.Sacrament, error) {
	sacrament, err := s.sacramentStore.GetByID(ctx, id)
	if err != nil {
		return model.Sacrament{}, err
	}
	if !canWrite(identity, sacrament) {
		return model.Sacrament{}, model.NewNotFoundError("sacrament")
	}
	return sacrament, nil
}

func (s *Sacrament) create(ctx context.Context, memberID uuid.UUID, params model.CreateSacramentParams) (model.Sacrament, error) {
	sacramentType, err := model.NormalizeSacramentType(params.Type)
	if err != nil {
		return model.Sacrament{}, err
	}

	now := s.now()
	sacrament, err := s.sacramentStore.Create(ctx, model.Sacrament{
		ID:              uuid.New(),
		MemberID:        memberID,
		Type:            sacramentType,
		Date:            params.Date,
		CertificatePath: params.CertificatePath,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return model.Sacrament{}, err
	}

	s.logger.Info("Sacrament service: sacrament recorded",
		"sacrament_id", sacrament.ID,
		"member_id", memberID)
	return sacrament, nil
}

// CreateOwn records a sacrament against the caller's own member profile.
func (s *Sacrament) CreateOwn(ctx context.Context, userID uuid.UUID, params model.CreateSacramentParams) (model.Sacrament, error) {
	if _, err := model.NormalizeSacramentType(params.Type); err != nil {
		return model.Sacrament{}, err
	}

	member, err := s.memberStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Sacrament{}, model.ErrNoMemberProfile
	}
	if err != nil {
		return model.Sacrament{}, fmt.Errorf("failed to get member by user id: %w", err)
	}

	return s.create(ctx, member.ID, params)
}

// CreateForMember records a sacrament for any member, addressed by member id
// or by the linked user's id.
func (s *Sacrament) CreateForMember(ctx context.Context, params model.AdminSacramentParams) (model.Sacrament, error) {
	if _, err := model.NormalizeSacramentType(params.Type); err != nil {
		return model.Sacrament{}, err
	}

	switch {
	case params.MemberID != nil:
		if _, err := s.memberStore.GetByID(ctx, *params.MemberID); err != nil {
			return model.Sacrament{}, err
		}
		return s.create(ctx, *params.MemberID, params.CreateSacramentParams)

	case params.UserID != nil:
		if _, err := s.userStore.GetByID(ctx, *params.UserID); err != nil {
			return model.Sacrament{}, err
		}
		member, err := s.memberStore.GetByUserID(ctx, *params.UserID)
		if errors.Is(err, model.ErrNotFound) {
			return model.Sacrament{}, model.ErrNoMemberProfile
		}
		if err != nil {
			return model.Sacrament{}, fmt.Errorf("failed to get member by user id: %w", err)
		}
		return s.create(ctx, member.ID, params.CreateSacramentParams)
	}

	return model.Sacrament{}, model.NewValidationError("user_id or member_id is required")
}

func (s *Sacrament) Update(ctx context.Context, identity model.Identity, id uuid.UUID, params model.UpdateSacramentParams) (model.Sacrament, error) {
	sacrament, err := s.getWritable(ctx, identity, id)
	if err != nil {
		return model.Sacrament{}, err
	}

	if params.Type != nil {
		sacramentType, err := model.NormalizeSacramentType(*params.Type)
		if err != nil {
			return model.Sacrament{}, err
		}
		sacrament.Type = sacramentType
	}
	if params.Date != nil {
		sacrament.Date = params.Date
	}
	if params.CertificatePath != nil {
		sacrament.CertificatePath = *params.CertificatePath
	}

	return s.sacramentStore.Update(ctx, sacrament)
}

// Delete removes a record the caller owns, or any record for admins.
func (s *Sacrament) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	sacrament, err := s.getWritable(ctx, identity, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, sacrament)
}

func (s *Sacrament) AdminDelete(ctx context.Context, id uuid.UUID) error {
	sacrament, err := s.sacramentStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, sacrament)
}

func (s *Sacrament) remove(ctx context.Context, sacrament model.Sacrament) error {
	if err := s.sacramentStore.Delete(ctx, sacrament.ID); err != nil {
		return err
	}

	if sacrament.CertificatePath == certificateKey(sacrament.ID) {
		if err := s.storage.Delete(ctx, sacrament.CertificatePath); err != nil {
			s.logger.Warn("Sacrament service: failed to delete certificate object",
				"sacrament_id", sacrament.ID,
				"error", err.Error())
		}
	}

	s.logger.Info("Sacrament service: sacrament deleted", "sacrament_id", sacrament.ID)
	return nil
}

// UploadCertificate stores a scanned certificate and points the record at it.
func (s *Sacrament) UploadCertificate(ctx context.Context, identity model.Identity, id uuid.UUID, reader io.Reader, size int64, contentType string) (model.Sacrament, error) {
	sacrament, err := s.getWritable(ctx, identity, id)
	if err != nil {
		return model.Sacrament{}, err
	}
	if size == 0 {
		return model.Sacrament{}, model.NewValidationError("certificate body is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := certificateKey(sacrament.ID)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return model.Sacrament{}, fmt.Errorf("failed to upload certificate: %w", err)
	}

	sacrament.CertificatePath = key
	updated, err := s.sacramentStore.Update(ctx, sacrament)
	if err != nil {
		return model.Sacrament{}, err
	}

	s.logger.Info("Sacrament service: certificate uploaded",
		"sacrament_id", sacrament.ID,
		"size", size)
	return updated, nil
}

// OpenCertificate streams a stored certificate. Callers must close the reader.
func (s *Sacrament) OpenCertificate(ctx context.Context, identity model.Identity, id uuid.UUID) (io.ReadCloser, error) {
	sacrament, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if sacrament.CertificatePath == "" {
		return nil, model.NewNotFoundError("certificate")
	}

	exists, err := s.storage.Exists(ctx, sacrament.CertificatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check certificate: %w", err)
	}
	if !exists {
		return nil, model.NewNotFoundError("certificate")
	}

	reader, err := s.storage.Download(ctx, sacrament.CertificatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download certificate: %w", err)
	}
	return reader, nil
}
