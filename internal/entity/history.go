package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// db model; append-only
type ProjectHistory struct {
	Id        uuid.UUID       `json:"id" db:"id"`
	ProjectId uuid.UUID       `json:"projectId" db:"project_id"`
	Action    string          `json:"action" db:"action"`
	OldValue  json.RawMessage `json:"oldValue" db:"old_value"`
	NewValue  json.RawMessage `json:"newValue" db:"new_value"`
	ChangedBy uuid.UUID       `json:"changedBy" db:"changed_by"`
	ChangedAt time.Time       `json:"changedAt" db:"changed_at"`
}

// controller model
type ProjectHistoryOutputModel struct {
	Id        string          `json:"id"`
	ProjectId string          `json:"projectId"`
	Action    string          `json:"action"`
	OldValue  json.RawMessage `json:"oldValue"`
	NewValue  json.RawMessage `json:"newValue"`
	ChangedBy string          `json:"changedBy"`
	ChangedAt string          `json:"changedAt"`
}
