package projects_testing

import (
	"encoding/json"
	"net/http"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_dto "github.com/Betocasasa/projecthub-backend/internal/features/projects/dto"
	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	teams_testing "github.com/Betocasasa/projecthub-backend/internal/features/teams/testing"
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

	return router
}

func CreateTestProject(
	name string,
	team *teams_models.Team,
	creatorToken string,
	router *gin.Engine,
) *projects_models.Project {
	request := projects_dto.CreateProjectRequestDTO{Name: name}

	w := teams_testing.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/teams/"+team.ID.String()+"/projects",
		"Bearer "+creatorToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to create project via API: " + w.Body.String())
	}

	var project projects_models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		panic(err)
	}

	return &project
}
