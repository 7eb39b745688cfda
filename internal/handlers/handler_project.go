package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects, their billing
// roles and employee assignments.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	recalcService  portssvc.RecalculationSvcFacade
}

// newProjectHandler creates a new projectHandler.
func newProjectHandler(ps portssvc.ProjectSvcFacade, rs portssvc.RecalculationSvcFacade) *projectHandler {
	return &projectHandler{
		projectService: ps,
		recalcService:  rs,
	}
}

// registerProjectRoutes registers routes for projects and the role and
// assignment resources nested under a project.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade, recalcService portssvc.RecalculationSvcFacade) {
	h := newProjectHandler(projectService, recalcService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
	}

	projectSpecific := rg.Group("/projects/:projectID")
	{
		projectSpecific.GET("", h.getProject)
		projectSpecific.PUT("", h.updateProject)
		projectSpecific.POST("/recalculate", h.recalculateProject)

		roles := projectSpecific.Group("/roles")
		{
			roles.POST("", h.createRole)
			roles.GET("", h.listRoles)
			roles.PUT("/:roleID", h.updateRole)
			roles.DELETE("/:roleID", h.deleteRole)
		}

		assignments := projectSpecific.Group("/assignments")
		{
			assignments.GET("", h.listAssignments)
			assignments.PUT("/:employeeID", h.assignEmployee)
			assignments.DELETE("/:employeeID", h.unassignEmployee)
		}
	}
}

// createProject godoc
// @Summary Create a new project
// @Description Creates a new active project for a client.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create project"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create project")
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Retrieves projects, optionally restricted to active ones.
// @Tags projects
// @Produce  json
// @Param   active_only query bool false "Only return active projects"
// @Success 200 {array} dto.ProjectResponse
// @Failure 500 {object} map[string]string "Failed to list projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("active_only") == "true"

	projects, err := h.projectService.ListProjects(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// getProject godoc
// @Summary Get a project
// @Description Retrieves a single project by ID.
// @Tags projects
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to retrieve project"
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Description Updates project details. Projects are deactivated, never deleted.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to update project"
// @Security BearerAuth
// @Router /projects/{projectID} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// recalculateProject godoc
// @Summary Recalculate unpaid invoices for a project
// @Description Re-resolves current role rates onto the project's unpaid invoices. Billed hours are preserved.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   scope body dto.RecalculateProjectRequest true "Recalculation scope (all or latest)"
// @Success 200 {object} dto.RecalculateProjectResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to recalculate invoices"
// @Security BearerAuth
// @Router /projects/{projectID}/recalculate [post]
func (h *projectHandler) recalculateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.RecalculateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecalculateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	processed, err := h.recalcService.RecalculateUnpaidForProject(c.Request.Context(), projectID, domain.RecalcScope(req.Scope), requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate invoices")
		return
	}

	logger.Info("Project recalculation completed",
		slog.String("project_id", projectID),
		slog.Int("invoices_processed", processed),
	)
	c.JSON(http.StatusOK, dto.RecalculateProjectResponse{InvoicesProcessed: processed})
}

// createRole godoc
// @Summary Create a billing role
// @Description Creates a billing role with an hourly rate on a project.
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   role body dto.CreateProjectRoleRequest true "Role details"
// @Success 201 {object} dto.ProjectRoleResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to create role"
// @Security BearerAuth
// @Router /projects/{projectID}/roles [post]
func (h *projectHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.CreateProjectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, err := h.projectService.CreateRole(c.Request.Context(), projectID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create role")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectRoleResponse(role))
}

// listRoles godoc
// @Summary List billing roles
// @Description Retrieves the billing roles defined on a project.
// @Tags roles
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {array} dto.ProjectRoleResponse
// @Failure 500 {object} map[string]string "Failed to list roles"
// @Security BearerAuth
// @Router /projects/{projectID}/roles [get]
func (h *projectHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	roles, err := h.projectService.ListRolesByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list roles")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectRoleResponse(roles))
}

// updateRole godoc
// @Summary Update a billing role
// @Description Updates a role's name or hourly rate. Existing invoices keep their snapshots.
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   roleID path string true "Role ID"
// @Param   role body dto.UpdateProjectRoleRequest true "Fields to update"
// @Success 200 {object} dto.ProjectRoleResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /projects/{projectID}/roles/{roleID} [put]
func (h *projectHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	roleID := c.Param("roleID")

	var req dto.UpdateProjectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, err := h.projectService.UpdateRole(c.Request.Context(), projectID, roleID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectRoleResponse(role))
}

// deleteRole godoc
// @Summary Delete a billing role
// @Description Deletes a role that no assignment references.
// @Tags roles
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   roleID path string true "Role ID"
// @Success 204 "Role deleted"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 409 {object} map[string]string "Role still referenced by assignments"
// @Failure 500 {object} map[string]string "Failed to delete role"
// @Security BearerAuth
// @Router /projects/{projectID}/roles/{roleID} [delete]
func (h *projectHandler) deleteRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	roleID := c.Param("roleID")

	if err := h.projectService.DeleteRole(c.Request.Context(), projectID, roleID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete role")
		return
	}

	c.Status(http.StatusNoContent)
}

// listAssignments godoc
// @Summary List project assignments
// @Description Retrieves the employee assignments on a project.
// @Tags assignments
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {array} dto.AssignmentResponse
// @Failure 500 {object} map[string]string "Failed to list assignments"
// @Security BearerAuth
// @Router /projects/{projectID}/assignments [get]
func (h *projectHandler) listAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	assignments, err := h.projectService.ListAssignmentsByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list assignments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssignmentResponse(assignments))
}

// assignEmployee godoc
// @Summary Assign an employee to a project
// @Description Creates or replaces the employee's assignment, optionally binding a billing role.
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   employeeID path string true "Employee ID"
// @Param   assignment body dto.AssignEmployeeRequest true "Assignment details"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Role belongs to another project"
// @Failure 404 {object} map[string]string "Project or employee not found"
// @Failure 500 {object} map[string]string "Failed to assign employee"
// @Security BearerAuth
// @Router /projects/{projectID}/assignments/{employeeID} [put]
func (h *projectHandler) assignEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	employeeID := c.Param("employeeID")

	var req dto.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, err := h.projectService.AssignEmployee(c.Request.Context(), projectID, employeeID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to assign employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// unassignEmployee godoc
// @Summary Remove an employee from a project
// @Description Deletes the employee's assignment. Logged hours are unaffected.
// @Tags assignments
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   employeeID path string true "Employee ID"
// @Success 204 "Assignment removed"
// @Failure 500 {object} map[string]string "Failed to unassign employee"
// @Security BearerAuth
// @Router /projects/{projectID}/assignments/{employeeID} [delete]
func (h *projectHandler) unassignEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	employeeID := c.Param("employeeID")

	if err := h.projectService.UnassignEmployee(c.Request.Context(), projectID, employeeID); err != nil {
		respondServiceError(c, logger, err, "Failed to unassign employee")
		return
	}

	c.Status(http.StatusNoContent)
}
