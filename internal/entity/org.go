package entity

import (
	"github.com/google/uuid"
)

// db model
type Department struct {
	Id   uuid.UUID `json:"id" db:"id"`
	Code string    `json:"code" db:"code"`
	Name string    `json:"name" db:"name"`
}

// db model
type Unit struct {
	Id            uuid.UUID `json:"id" db:"id"`
	DepartmentId  uuid.UUID `json:"departmentId" db:"dept_id"`
	Name          string    `json:"name" db:"name"`
	WorkflowTypes []string  `json:"workflowTypes" db:"workflow_types"`
}

// controller models
type DepartmentOutputModel struct {
	Id    string            `json:"id"`
	Code  string            `json:"code"`
	Name  string            `json:"name"`
	Units []UnitOutputModel `json:"units,omitempty"`
}

type UnitOutputModel struct {
	Id            string   `json:"id"`
	DepartmentId  string   `json:"departmentId"`
	Name          string   `json:"name"`
	WorkflowTypes []string `json:"workflowTypes"`
}
