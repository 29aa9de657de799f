package projects_controllers

import (
	"net/http"

	projects_dto "github.com/Betocasasa/projecthub-backend/internal/features/projects/dto"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/teams/:id/projects", c.CreateProject)
	router.GET("/teams/:id/projects", c.GetTeamProjects)

	projectRoutes := router.Group("/projects")
	projectRoutes.GET("/:id", c.GetProject)
	projectRoutes.PUT("/:id", c.UpdateProject)
	projectRoutes.DELETE("/:id", c.DeleteProject)
}

// CreateProject
// @Summary Create a new project
// @Description Create a new project inside a team
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{id}/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.CreateProject(teamID, &request, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to create projects in this team",
			"insufficient permissions to view team":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "team not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// GetTeamProjects
// @Summary List team projects
// @Description Get all projects belonging to a team
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{id}/projects [get]
func (c *ProjectController) GetTeamProjects(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	response, err := c.projectService.GetTeamProjects(teamID, user)
	if err != nil {
		if err.Error() == "insufficient permissions to view team projects" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject
// @Summary Get project details
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	project, err := c.projectService.GetProject(projectID, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to view project":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "project not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateProject
// @Summary Update project
// @Description Update project name, description and status
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdateProjectRequestDTO true "Project update data"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.UpdateProject(projectID, &request, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to update project":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "project not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// DeleteProject
// @Summary Delete project
// @Description Delete a project and everything attached to it
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if err := c.projectService.DeleteProject(projectID, user); err != nil {
		switch err.Error() {
		case "only team owner, admin or project creator can delete project":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "project not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
