package teams_controllers

import (
	"net/http"

	audit_logs "github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_services "github.com/Betocasasa/projecthub-backend/internal/features/teams/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamController struct {
	teamService *teams_services.TeamService
}

func (c *TeamController) RegisterRoutes(router *gin.RouterGroup) {
	teamRoutes := router.Group("/teams")

	teamRoutes.POST("", c.CreateTeam)
	teamRoutes.GET("", c.GetTeams)
	teamRoutes.GET("/:id", c.GetTeam)
	teamRoutes.PUT("/:id", c.UpdateTeam)
	teamRoutes.DELETE("/:id", c.DeleteTeam)
	teamRoutes.GET("/:id/audit-logs", c.GetTeamAuditLogs)
}

// CreateTeam
// @Summary Create a new team
// @Description Create a new team with the creator as owner
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body teams_dto.CreateTeamRequestDTO true "Team creation data"
// @Success 200 {object} teams_dto.TeamResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request teams_dto.CreateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.teamService.CreateTeam(&request, user)
	if err != nil {
		if err.Error() == "insufficient permissions to create teams" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeams
// @Summary List user's teams
// @Description Get list of teams the user is a member of
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} teams_dto.ListTeamsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /teams [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.teamService.GetUserTeams(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeam
// @Summary Get team details
// @Description Get detailed information about a specific team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} teams_models.Team
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamIDStr := ctx.Param("id")
	teamID, err := uuid.Parse(teamIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	team, err := c.teamService.GetTeam(teamID, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to view team":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "team not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// UpdateTeam
// @Summary Update team
// @Description Update team name and description
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body teams_dto.UpdateTeamRequestDTO true "Team update data"
// @Success 200 {object} teams_models.Team
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{id} [put]
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamIDStr := ctx.Param("id")
	teamID, err := uuid.Parse(teamIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	var request teams_dto.UpdateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updatedTeam, err := c.teamService.UpdateTeam(teamID, &request, user)
	if err != nil {
		switch err.Error() {
		case "insufficient permissions to update team":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "team not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, updatedTeam)
}

// DeleteTeam
// @Summary Delete team
// @Description Delete a team (owner only)
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{id} [delete]
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamIDStr := ctx.Param("id")
	teamID, err := uuid.Parse(teamIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	if err := c.teamService.DeleteTeam(teamID, user); err != nil {
		switch err.Error() {
		case "only team owner or admin can delete team":
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "team not found":
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// GetTeamAuditLogs
// @Summary Get team audit logs
// @Description Retrieve audit logs for a specific team (member access required)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{id}/audit-logs [get]
func (c *TeamController) GetTeamAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamIDStr := ctx.Param("id")
	teamID, err := uuid.Parse(teamIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.teamService.GetTeamAuditLogs(teamID, user, request)
	if err != nil {
		if err.Error() == "insufficient permissions to view team audit logs" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
