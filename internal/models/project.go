package models

import "github.com/shopspring/decimal"

// Project mirrors the projects table.
type Project struct {
	ProjectID  string `db:"project_id"`
	Name       string `db:"name"`
	ClientID   string `db:"client_id"`
	IsActive   bool   `db:"is_active"`
	IsInternal bool   `db:"is_internal"`
	AuditFields
}

// ProjectRole mirrors the project_roles table.
type ProjectRole struct {
	RoleID        string          `db:"role_id"`
	ProjectID     string          `db:"project_id"`
	Name          string          `db:"name"`
	HourlyRateUSD decimal.Decimal `db:"hourly_rate_usd"`
	AuditFields
}

// ProjectAssignment mirrors the employee_projects table. RoleID is nullable:
// an assignment without a billing role resolves to rate zero.
type ProjectAssignment struct {
	AssignmentID string  `db:"assignment_id"`
	EmployeeID   string  `db:"employee_id"`
	ProjectID    string  `db:"project_id"`
	RoleID       *string `db:"role_id"`
	AssignedBy   string  `db:"assigned_by"`
	AuditFields
}
