package service

import (
	"context"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newAuthService(users *mockUserRepo, delegations *mockDelegationRepo) *AuthService {
	if users == nil {
		users = &mockUserRepo{}
	}
	if delegations == nil {
		delegations = &mockDelegationRepo{}
	}

	return NewAuthService(&repo.Repositories{
		User:       users,
		Delegation: delegations,
	}, []byte("test-sign-key"), time.Hour)
}

func TestLogin_TokenRoundtrip(t *testing.T) {
	userId := uuid.New()
	users := &mockUserRepo{
		GetUserByCredentialsFunc: func(ctx context.Context, username, fullName string) (*entity.User, error) {
			return &entity.User{Id: userId, Username: username, FullName: fullName}, nil
		},
		GetUserByIdFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{Id: userId, Username: "somchai"}, nil
		},
	}
	s := newAuthService(users, nil)

	out, err := s.Login(context.Background(), "somchai", "Somchai J.")
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	require.Equal(t, userId.String(), out.Id)

	parsed, err := s.ParseToken(out.Token)
	require.NoError(t, err)
	require.Equal(t, userId, parsed)
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newAuthService(nil, nil)

	_, err := s.Login(context.Background(), "nobody", "No One")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_WrongKey(t *testing.T) {
	s := newAuthService(&mockUserRepo{
		GetUserByCredentialsFunc: func(ctx context.Context, username, fullName string) (*entity.User, error) {
			return &entity.User{Id: uuid.New(), Username: username}, nil
		},
	}, nil)

	out, err := s.Login(context.Background(), "somchai", "Somchai J.")
	require.NoError(t, err)

	other := newAuthService(nil, nil)
	other.signKey = []byte("different-key")
	_, err = other.ParseToken(out.Token)
	require.Error(t, err)
}

func TestResolveActor_DelegationWindow(t *testing.T) {
	delegatee := uuid.New()
	delegator := uuid.New()
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	windowEnd := now.AddDate(0, 0, 7)

	users := &mockUserRepo{
		GetUserByIdFunc: func(ctx context.Context, id string) (*entity.User, error) {
			parsed, _ := uuid.Parse(id)
			return &entity.User{Id: parsed, Username: "user"}, nil
		},
		GetRoleAssignmentsFunc: func(ctx context.Context, userId string) ([]entity.RoleAssignment, error) {
			if userId == delegator.String() {
				return []entity.RoleAssignment{{
					Id:             uuid.New(),
					UserId:         delegator,
					Role:           common.RoleHeadOfUnit,
					DepartmentId:   uuid.New(),
					DepartmentCode: common.SupplyDeptCode,
					UnitId:         uuid.NullUUID{UUID: uuid.New(), Valid: true},
				}}, nil
			}
			return []entity.RoleAssignment{{
				Id:             uuid.New(),
				UserId:         delegatee,
				Role:           common.RoleGeneralStaff,
				DepartmentId:   uuid.New(),
				DepartmentCode: common.SupplyDeptCode,
				UnitId:         uuid.NullUUID{UUID: uuid.New(), Valid: true},
			}}, nil
		},
	}
	delegations := &mockDelegationRepo{
		ListDelegationsForDelegateeFunc: func(ctx context.Context, delegateeId uuid.UUID) ([]entity.Delegation, error) {
			return []entity.Delegation{{
				Id:          uuid.New(),
				DelegatorId: delegator,
				DelegateeId: delegatee,
				StartDate:   now.AddDate(0, 0, -1),
				EndDate:     &windowEnd,
				IsActive:    true,
			}}, nil
		},
	}
	s := newAuthService(users, delegations)

	t.Run("inside the window the head role is conferred", func(t *testing.T) {
		actor, err := s.ResolveActor(context.Background(), delegatee, now)
		require.NoError(t, err)
		require.Equal(t, delegatee, actor.UserId)
		require.True(t, actor.IsDelegated())
		require.True(t, isSupplyHead(actor))
	})

	t.Run("after the window only own roles remain", func(t *testing.T) {
		actor, err := s.ResolveActor(context.Background(), delegatee, windowEnd.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.False(t, actor.IsDelegated())
		require.False(t, isSupplyHead(actor))
	})
}

func TestResolveActor_UnknownUser(t *testing.T) {
	users := &mockUserRepo{
		GetUserByIdFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, repo_errors.ErrNotFound
		},
	}
	s := newAuthService(users, nil)

	_, err := s.ResolveActor(context.Background(), uuid.New(), time.Now())
	require.ErrorIs(t, err, ErrUserNotFound)
}
