package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model; EndDate nil means open-ended
type Delegation struct {
	Id          uuid.UUID  `json:"id" db:"id"`
	DelegatorId uuid.UUID  `json:"delegatorId" db:"delegator_id"`
	DelegateeId uuid.UUID  `json:"delegateeId" db:"delegatee_id"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate" db:"end_date"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   string     `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateDelegationInput struct {
	DelegatorId string
	DelegateeId string
	StartDate   time.Time
	EndDate     *time.Time
}

// controller model
type DelegationOutputModel struct {
	Id          string `json:"id"`
	DelegatorId string `json:"delegatorId"`
	DelegateeId string `json:"delegateeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}
