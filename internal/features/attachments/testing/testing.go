package attachments_testing

import (
	attachments_services "github.com/Betocasasa/projecthub-backend/internal/features/attachments/services"
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	audit_logs.SetupDependencies()
	projects_services.SetupDependencies()
	tasks_services.SetupDependencies()
	attachments_services.SetupDependencies()

	return router
}
