package entity

import (
	"github.com/google/uuid"
)

// db model
type WorkflowTemplate struct {
	Id   uuid.UUID `json:"id" db:"id"`
	Type string    `json:"type" db:"type"`
}

// db model; Order is 1-based within the template
type WorkflowStep struct {
	Id                uuid.UUID `json:"id" db:"id"`
	TemplateId        uuid.UUID `json:"templateId" db:"template_id"`
	Name              string    `json:"name" db:"name"`
	Order             int       `json:"order" db:"step_order"`
	RequiresSignature bool      `json:"requiresSignature" db:"requires_signature"`
	RequiredFields    []string  `json:"requiredFields" db:"required_fields"`
}

// PhaseStatus is the aggregator's answer for one phase. Step is the 1-based
// step order the status applies to; 0 when the status covers the whole phase.
type PhaseStatus struct {
	Status string
	Step   int
}
