package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.GetHealthStatus)
}

// GetHealthStatus
// @Summary System health report
// @Description Per-component health: database, cache and disk space
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatusResponse
// @Router /system/health [get]
func (c *HealthcheckController) GetHealthStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthcheckService.GetHealthStatus())
}
