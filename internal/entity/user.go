package entity

import (
	"github.com/google/uuid"
)

// db model
type User struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// db model; UnitId is null for department-scoped roles
type RoleAssignment struct {
	Id             uuid.UUID     `json:"id" db:"id"`
	UserId         uuid.UUID     `json:"userId" db:"user_id"`
	Role           string        `json:"role" db:"role"`
	DepartmentId   uuid.UUID     `json:"departmentId" db:"dept_id"`
	DepartmentCode string        `json:"departmentCode" db:"dept_code"`
	UnitId         uuid.NullUUID `json:"unitId" db:"unit_id"`
}

// service + repo input model
type RegisterUserInput struct {
	Username     string
	FullName     string
	Email        string
	Role         string // given; scoping validated by the service
	DepartmentId string
	UnitId       string // empty for department-scoped roles
}

// service + repo input model
type UpsertRoleInput struct {
	UserId       uuid.UUID
	Role         string
	DepartmentId uuid.UUID
	UnitId       uuid.NullUUID
}

// repo filter for user listings
type UserListFilter struct {
	DepartmentId string
	UnitId       string
}

// controller models
type UserOutputModel struct {
	Id        string                      `json:"id"`
	Username  string                      `json:"username"`
	FullName  string                      `json:"fullName"`
	Email     string                      `json:"email,omitempty"`
	Roles     []RoleAssignmentOutputModel `json:"roles"`
	CreatedAt string                      `json:"createdAt,omitempty"`
}

type RoleAssignmentOutputModel struct {
	Role           string `json:"role"`
	DepartmentId   string `json:"departmentId"`
	DepartmentCode string `json:"departmentCode"`
	UnitId         string `json:"unitId,omitempty"`
}

type LoginOutputModel struct {
	Token       string                      `json:"token"`
	Id          string                      `json:"id"`
	IsDelegated bool                        `json:"isDelegated"`
	Roles       []RoleAssignmentOutputModel `json:"roles"`
	Delegated   []RoleAssignmentOutputModel `json:"delegatedRoles"`
}
