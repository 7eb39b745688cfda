package mapping

import (
	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		ClientID:    d.ClientID,
		IsActive:    d.IsActive,
		IsInternal:  d.IsInternal,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		ClientID:    m.ClientID,
		IsActive:    m.IsActive,
		IsInternal:  m.IsInternal,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

// ToModelProjectRole converts a domain ProjectRole to a model ProjectRole
func ToModelProjectRole(d domain.ProjectRole) models.ProjectRole {
	return models.ProjectRole{
		RoleID:        d.RoleID,
		ProjectID:     d.ProjectID,
		Name:          d.Name,
		HourlyRateUSD: d.HourlyRateUSD,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProjectRole converts a model ProjectRole to a domain ProjectRole
func ToDomainProjectRole(m models.ProjectRole) domain.ProjectRole {
	return domain.ProjectRole{
		RoleID:        m.RoleID,
		ProjectID:     m.ProjectID,
		Name:          m.Name,
		HourlyRateUSD: m.HourlyRateUSD,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectRoleSlice converts model ProjectRoles to domain ProjectRoles
func ToDomainProjectRoleSlice(ms []models.ProjectRole) []domain.ProjectRole {
	ds := make([]domain.ProjectRole, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProjectRole(m)
	}
	return ds
}

// ToModelProjectAssignment converts a domain ProjectAssignment to its model
func ToModelProjectAssignment(d domain.ProjectAssignment) models.ProjectAssignment {
	return models.ProjectAssignment{
		AssignmentID: d.AssignmentID,
		EmployeeID:   d.EmployeeID,
		ProjectID:    d.ProjectID,
		RoleID:       d.RoleID,
		AssignedBy:   d.AssignedBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProjectAssignment converts a model ProjectAssignment to its domain type
func ToDomainProjectAssignment(m models.ProjectAssignment) domain.ProjectAssignment {
	return domain.ProjectAssignment{
		AssignmentID: m.AssignmentID,
		EmployeeID:   m.EmployeeID,
		ProjectID:    m.ProjectID,
		RoleID:       m.RoleID,
		AssignedBy:   m.AssignedBy,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectAssignmentSlice converts model assignments to domain assignments
func ToDomainProjectAssignmentSlice(ms []models.ProjectAssignment) []domain.ProjectAssignment {
	ds := make([]domain.ProjectAssignment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProjectAssignment(m)
	}
	return ds
}
