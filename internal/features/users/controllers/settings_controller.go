package users_controllers

import (
	"net/http"

	user_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	user_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	user_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *users_services.SettingsService
}

func (c *SettingsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/workspace/settings", c.GetWorkspaceSettings)
	router.PUT("/workspace/settings", user_middleware.RequireRole(user_enums.UserRoleAdmin), c.UpdateWorkspaceSettings)
}

// GetWorkspaceSettings
// @Summary Get workspace settings
// @Description Get global workspace settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.WorkspaceSettings
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /workspace/settings [get]
func (c *SettingsController) GetWorkspaceSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// UpdateWorkspaceSettings
// @Summary Update workspace settings
// @Description Update global workspace settings (admin only)
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_models.WorkspaceSettings true "Settings update data"
// @Success 200 {object} users_models.WorkspaceSettings
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /workspace/settings [put]
func (c *SettingsController) UpdateWorkspaceSettings(ctx *gin.Context) {
	user, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request user_models.WorkspaceSettings
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	settings, err := c.settingsService.UpdateSettings(request, user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
