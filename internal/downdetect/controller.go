package downdetect

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DowndetectController struct {
	downdetectService *DowndetectService
}

func (c *DowndetectController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/downdetect", c.GetAvailability)
}

// GetAvailability
// @Summary Readiness probe
// @Description Returns 200 when the database and cache are reachable
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /downdetect [get]
func (c *DowndetectController) GetAvailability(ctx *gin.Context) {
	if err := c.downdetectService.IsAvailable(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
