package service

import (
	"context"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
)

type DelegationService struct {
	delegationRepo repo.Delegation
	userRepo       repo.User
}

func NewDelegationService(repos *repo.Repositories) *DelegationService {
	return &DelegationService{
		delegationRepo: repos.Delegation,
		userRepo:       repos.User,
	}
}

// CreateDelegation hands the delegator's authority to the delegatee for a date
// window. Admins may set up delegations for anyone; everyone else only for
// themselves.
func (s *DelegationService) CreateDelegation(ctx context.Context, actor *entity.ActorContext, input *entity.CreateDelegationInput) (*entity.DelegationOutputModel, error) {
	if authorize(actor, common.RoleAdmin) != nil && input.DelegatorId != actor.UserId.String() {
		return nil, ErrForbidden
	}

	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, ErrDelegationDateOrder
	}

	for _, id := range []string{input.DelegatorId, input.DelegateeId} {
		if _, err := s.userRepo.GetUserById(ctx, id); err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return nil, ErrUserNotFound
			}

			return nil, err
		}
	}

	id, err := s.delegationRepo.CreateDelegation(ctx, input)
	if err != nil {
		return nil, err
	}

	delegation, err := s.delegationRepo.GetDelegationById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapDelegation(delegation), nil
}

func (s *DelegationService) CancelDelegation(ctx context.Context, actor *entity.ActorContext, id string) error {
	delegation, err := s.delegationRepo.GetDelegationById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrDelegationNotFound
		}

		return err
	}

	if authorize(actor, common.RoleAdmin) != nil && delegation.DelegatorId != actor.UserId {
		return ErrNotDelegationOwner
	}

	err = s.delegationRepo.CancelDelegation(ctx, id)
	if errors.Is(err, repo_errors.ErrNotFound) {
		return ErrDelegationNotFound
	}

	return err
}

func (s *DelegationService) GetDelegationById(ctx context.Context, actor *entity.ActorContext, id string) (*entity.DelegationOutputModel, error) {
	delegation, err := s.delegationRepo.GetDelegationById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDelegationNotFound
		}

		return nil, err
	}

	if authorize(actor, common.RoleAdmin) != nil &&
		delegation.DelegatorId != actor.UserId && delegation.DelegateeId != actor.UserId {
		return nil, ErrForbidden
	}

	return mapDelegation(delegation), nil
}
