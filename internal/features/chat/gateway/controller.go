package chat_gateway

import (
	"github.com/gin-gonic/gin"
)

type GatewayController struct {
	gateway *Gateway
}

// RegisterRoutes mounts the WebSocket endpoint. Authentication happens in-band
// after the upgrade, so this route stays outside the auth middleware.
func (c *GatewayController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/chat", c.gateway.HandleConnection)
}
