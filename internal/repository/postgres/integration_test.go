//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/parishkeeper/parish-server/internal/claimcode"
	"github.com/parishkeeper/parish-server/internal/model"
	repo "github.com/parishkeeper/parish-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "parish_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/parish_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now().UTC()
	return model.User{
		ID:           uuid.New(),
		Name:         "Parishioner",
		Email:        email,
		PasswordHash: "digest",
		Role:         model.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newMemberWithCode(t *testing.T, mr *repo.MemberRepository) (model.Member, string) {
	t.Helper()
	code, hash, err := claimcode.NewGenerator().Generate()
	require.NoError(t, err)
	expires := time.Now().Add(model.ClaimCodeTTL)
	now := time.Now().UTC()
	m, err := mr.Create(context.Background(), model.Member{
		ID:                 uuid.New(),
		Name:               "Roll Entry",
		Status:             model.MemberStatusActive,
		ClaimCodeHash:      &hash,
		ClaimCodeExpiresAt: &expires,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	require.NoError(t, err)
	return m, code
}

func TestRepositories_ClaimFlow(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	mr := repo.NewMemberRepository(conn)
	rr := repo.NewRegistrationRepository(conn)

	member, code := newMemberWithCode(t, mr)

	user, linked, err := rr.RegisterWithClaim(ctx, newUser("claim@example.com"), claimcode.Hash(code), time.Now())
	require.NoError(t, err)
	require.True(t, linked.OwnedBy(user.ID))

	stored, err := mr.GetByID(ctx, member.ID)
	require.NoError(t, err)
	require.True(t, stored.OwnedBy(user.ID))
	require.Nil(t, stored.ClaimCodeHash)
	require.Nil(t, stored.ClaimCodeExpiresAt)

	_, _, err = rr.RegisterWithClaim(ctx, newUser("again@example.com"), claimcode.Hash(code), time.Now())
	require.ErrorIs(t, err, model.ErrInvalidClaimCode)
	_, err = ur.GetByEmail(ctx, "again@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	events, err := mr.ListClaimEvents(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, model.ClaimEventIssued, events[0].Kind)
	require.Equal(t, model.ClaimEventClaimed, events[1].Kind)

	_, err = mr.SetClaimCode(ctx, member.ID, "reissue", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, model.ErrAlreadyLinked)
}

func TestRepositories_ConcurrentClaim(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	mr := repo.NewMemberRepository(conn)
	rr := repo.NewRegistrationRepository(conn)
	ur := repo.NewUserRepository(conn)

	_, code := newMemberWithCode(t, mr)
	hash := claimcode.Hash(code)

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	emails := make([]string, attempts)
	for i := 0; i < attempts; i++ {
		emails[i] = fmt.Sprintf("racer%d@example.com", i)
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, _, err := rr.RegisterWithClaim(ctx, newUser(email), hash, time.Now())
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(emails[i])
	}
	wg.Wait()

	require.Equal(t, 1, success)

	created := 0
	for _, email := range emails {
		if _, err := ur.GetByEmail(ctx, email); err == nil {
			created++
		}
	}
	require.Equal(t, 1, created)
}

func TestRepositories_SelfServiceAndResources(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	rr := repo.NewRegistrationRepository(conn)
	sr := repo.NewSacramentRepository(conn)
	dr := repo.NewDonationRepository(conn)

	now := time.Now().UTC()
	user, member, err := rr.RegisterSelfService(ctx, newUser("self@example.com"), model.Member{
		ID: uuid.New(), Name: "Self", Status: model.MemberStatusActive, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.True(t, member.OwnedBy(user.ID))

	_, _, err = rr.RegisterSelfService(ctx, newUser("self@example.com"), model.Member{
		ID: uuid.New(), Name: "Dup", Status: model.MemberStatusActive, CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	s, err := sr.Create(ctx, model.Sacrament{ID: uuid.New(), MemberID: member.ID, Type: "Baptism", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	require.Equal(t, "Self", s.MemberName)

	_, err = sr.Create(ctx, model.Sacrament{ID: uuid.New(), MemberID: uuid.New(), Type: "Baptism", CreatedAt: now, UpdatedAt: now})
	require.ErrorIs(t, err, model.ErrReferenceNotFound)

	d, err := dr.Create(ctx, model.Donation{ID: uuid.New(), MemberID: member.ID, Amount: 12.5, Type: model.DonationTithe, CreatedAt: now})
	require.NoError(t, err)
	require.InDelta(t, 12.5, d.Amount, 0.001)

	mine, err := dr.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}
