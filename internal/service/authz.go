package service

import (
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"time"
)

// authorize permits the actor when any claim carries SUPER_ADMIN or one of the
// allowed roles. Delegated claims grant the same authority as own ones.
func authorize(actor *entity.ActorContext, allowed ...string) error {
	for _, claim := range actor.AllRoles() {
		if claim.Role == common.RoleSuperAdmin {
			return nil
		}
		for _, role := range allowed {
			if claim.Role == role {
				return nil
			}
		}
	}

	return ErrForbidden
}

// authorizeDept is authorize further restricted to claims whose department
// code matches. SUPER_ADMIN still bypasses the scope.
func authorizeDept(actor *entity.ActorContext, deptCode string, allowed ...string) error {
	for _, claim := range actor.AllRoles() {
		if claim.Role == common.RoleSuperAdmin {
			return nil
		}
		if claim.DepartmentCode != deptCode {
			continue
		}
		for _, role := range allowed {
			if claim.Role == role {
				return nil
			}
		}
	}

	return ErrForbidden
}

// isSupplyHead reports whether the actor may resolve cancellations and manage
// assignments on their own authority.
func isSupplyHead(actor *entity.ActorContext) bool {
	for _, claim := range actor.AllRoles() {
		if claim.Role == common.RoleSuperAdmin {
			return true
		}
		if claim.DepartmentCode == common.SupplyDeptCode && common.IsHeadLevelRole(claim.Role) {
			return true
		}
	}

	return false
}

// delegationActiveAt applies the delegation date window: active flag set,
// started on or before the instant, not yet ended. A nil end date means
// open-ended.
func delegationActiveAt(d *entity.Delegation, at time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate.After(at) {
		return false
	}
	if d.EndDate != nil && d.EndDate.Before(at) {
		return false
	}

	return true
}

// unitIdsForActor collects the distinct unit scopes across the actor's claims.
func unitIdsForActor(actor *entity.ActorContext) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, claim := range actor.AllRoles() {
		if claim.UnitId == "" {
			continue
		}
		if _, ok := seen[claim.UnitId]; ok {
			continue
		}
		seen[claim.UnitId] = struct{}{}
		ids = append(ids, claim.UnitId)
	}

	return ids
}
