package service

import (
	"context"
	"errors"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService struct {
	userRepo       repo.User
	delegationRepo repo.Delegation
	signKey        []byte
	tokenTTL       time.Duration
}

func NewAuthService(repos *repo.Repositories, signKey []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:       repos.User,
		delegationRepo: repos.Delegation,
		signKey:        signKey,
		tokenTTL:       tokenTTL,
	}
}

// Login authenticates by username + full name and issues a token carrying the
// user id. Roles are not baked into the token; they are resolved per request
// so revocations and delegation windows take effect immediately.
func (s *AuthService) Login(ctx context.Context, username string, fullName string) (*entity.LoginOutputModel, error) {
	user, err := s.userRepo.GetUserByCredentials(ctx, username, fullName)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	actor, err := s.ResolveActor(ctx, user.Id, time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return nil, err
	}

	return &entity.LoginOutputModel{
		Token:       token,
		Id:          user.Id.String(),
		IsDelegated: actor.IsDelegated(),
		Roles:       mapRoleClaims(actor.OwnRoles),
		Delegated:   mapRoleClaims(actor.DelegatedRoles),
	}, nil
}

func (s *AuthService) ParseToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.signKey, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	return userId, nil
}

// ResolveActor loads the user's own role assignments plus the assignments of
// every delegator whose delegation window covers the given instant. Delegated
// claims confer authority only; actions remain attributed to the actor.
func (s *AuthService) ResolveActor(ctx context.Context, userId uuid.UUID, at time.Time) (*entity.ActorContext, error) {
	user, err := s.userRepo.GetUserById(ctx, userId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	ownAssignments, err := s.userRepo.GetRoleAssignments(ctx, userId.String())
	if err != nil {
		return nil, err
	}

	actor := &entity.ActorContext{
		UserId:         user.Id,
		Username:       user.Username,
		OwnRoles:       make([]entity.RoleClaim, 0, len(ownAssignments)),
		DelegatedRoles: make([]entity.RoleClaim, 0),
	}
	for i := range ownAssignments {
		actor.OwnRoles = append(actor.OwnRoles, claimFromAssignment(&ownAssignments[i]))
	}

	delegations, err := s.delegationRepo.ListDelegationsForDelegatee(ctx, userId)
	if err != nil {
		return nil, err
	}
	for i := range delegations {
		if !delegationActiveAt(&delegations[i], at) {
			continue
		}
		delegated, err := s.userRepo.GetRoleAssignments(ctx, delegations[i].DelegatorId.String())
		if err != nil {
			return nil, err
		}
		for j := range delegated {
			actor.DelegatedRoles = append(actor.DelegatedRoles, claimFromAssignment(&delegated[j]))
		}
	}

	return actor, nil
}
