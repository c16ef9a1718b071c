package entity

import (
	"github.com/google/uuid"
)

// RoleClaim is one role assignment as seen by the authorization evaluator.
type RoleClaim struct {
	Role           string `json:"role"`
	DepartmentId   string `json:"deptId"`
	DepartmentCode string `json:"deptCode"`
	UnitId         string `json:"unitId,omitempty"`
}

// ActorContext is resolved once at the boundary and carried into every
// operation. Delegated roles convey authority only; actions stay attributed
// to UserId.
type ActorContext struct {
	UserId         uuid.UUID
	Username       string
	OwnRoles       []RoleClaim
	DelegatedRoles []RoleClaim
}

// AllRoles returns own and delegated claims as one set.
func (a *ActorContext) AllRoles() []RoleClaim {
	claims := make([]RoleClaim, 0, len(a.OwnRoles)+len(a.DelegatedRoles))
	claims = append(claims, a.OwnRoles...)
	claims = append(claims, a.DelegatedRoles...)

	return claims
}

// IsDelegated reports whether the actor currently inherits any authority.
func (a *ActorContext) IsDelegated() bool {
	return len(a.DelegatedRoles) > 0
}
