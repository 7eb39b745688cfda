package domain

import "github.com/shopspring/decimal"

// Project is a client engagement hours are logged against.
// Projects are never deleted, only deactivated. Internal projects carry
// non-billable hours only; the time entry service enforces that at entry time.
type Project struct {
	ProjectID  string `json:"projectID"`
	Name       string `json:"name"`
	ClientID   string `json:"clientID"`
	IsActive   bool   `json:"isActive"`
	IsInternal bool   `json:"isInternal"`
	AuditFields
}

// ProjectRole is a billable role on a project (e.g. "Senior Developer").
// Its rate is mutable at any time, which is why invoice lines snapshot the
// rate instead of referencing the role.
type ProjectRole struct {
	RoleID        string          `json:"roleID"`
	ProjectID     string          `json:"projectID"`
	Name          string          `json:"name"`
	HourlyRateUSD decimal.Decimal `json:"hourlyRateUSD"`
	AuditFields
}

// ProjectAssignment links an employee to a project, optionally with a billing
// role. At most one assignment exists per (employee, project) pair. A nil
// RoleID means the employee has no billing role yet and resolves to rate zero.
type ProjectAssignment struct {
	AssignmentID string  `json:"assignmentID"`
	EmployeeID   string  `json:"employeeID"`
	ProjectID    string  `json:"projectID"`
	RoleID       *string `json:"roleID"`
	AssignedBy   string  `json:"assignedBy"`
	AuditFields
}

// ResolvedRate is the outcome of a live rate resolution for an
// (employee, project) pair. A missing assignment, missing role link or
// deleted role all resolve to rate zero with no role name; that fallback is
// defined behavior, not an error.
type ResolvedRate struct {
	Rate     decimal.Decimal `json:"rate"`
	RoleName *string         `json:"roleName"`
}
