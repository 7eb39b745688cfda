package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hourstack/time_billing_app/internal/apperrors"
	"github.com/hourstack/time_billing_app/internal/core/domain"
	portsrepo "github.com/hourstack/time_billing_app/internal/core/ports/repositories"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// rateResolverService resolves the effective hourly rate for an employee on a
// project: assignment -> billing role -> hourly rate. Every gap in that chain
// falls back to rate zero instead of failing, so billing never blocks on an
// incomplete setup.
type rateResolverService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	roleRepo       portsrepo.RoleRepositoryFacade
}

// NewRateResolverService creates a new rate resolver.
func NewRateResolverService(assignmentRepo portsrepo.AssignmentRepositoryFacade, roleRepo portsrepo.RoleRepositoryFacade) portssvc.RateResolverSvc {
	return &rateResolverService{
		assignmentRepo: assignmentRepo,
		roleRepo:       roleRepo,
	}
}

var _ portssvc.RateResolverSvc = (*rateResolverService)(nil)

// ResolveRate returns the hourly rate and role name for the employee on the
// project. Zero-rate fallbacks are logged so silent $0 lines can be traced
// back to their cause.
func (s *rateResolverService) ResolveRate(ctx context.Context, employeeID string, projectID string) (domain.ResolvedRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignment(ctx, employeeID, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No assignment found, resolving to zero rate",
				slog.String("employee_id", employeeID),
				slog.String("project_id", projectID),
			)
			return domain.ResolvedRate{Rate: decimal.Zero}, nil
		}
		return domain.ResolvedRate{}, fmt.Errorf("failed to resolve assignment for employee %s on project %s: %w", employeeID, projectID, err)
	}

	if assignment.RoleID == nil {
		logger.Warn("Assignment has no billing role, resolving to zero rate",
			slog.String("employee_id", employeeID),
			slog.String("project_id", projectID),
		)
		return domain.ResolvedRate{Rate: decimal.Zero}, nil
	}

	role, err := s.roleRepo.FindRoleByID(ctx, *assignment.RoleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Assigned role no longer exists, resolving to zero rate",
				slog.String("employee_id", employeeID),
				slog.String("role_id", *assignment.RoleID),
			)
			return domain.ResolvedRate{Rate: decimal.Zero}, nil
		}
		return domain.ResolvedRate{}, fmt.Errorf("failed to resolve role %s: %w", *assignment.RoleID, err)
	}

	roleName := role.Name
	return domain.ResolvedRate{
		Rate:     role.HourlyRateUSD,
		RoleName: &roleName,
	}, nil
}
