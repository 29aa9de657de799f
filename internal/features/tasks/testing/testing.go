package tasks_testing

import (
	"encoding/json"
	"net/http"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	projects_models "github.com/Betocasasa/projecthub-backend/internal/features/projects/models"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	tasks_dto "github.com/Betocasasa/projecthub-backend/internal/features/tasks/dto"
	tasks_models "github.com/Betocasasa/projecthub-backend/internal/features/tasks/models"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
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
	tasks_services.SetupDependencies()

	return router
}

func CreateTestTask(
	title string,
	project *projects_models.Project,
	creatorToken string,
	router *gin.Engine,
) *tasks_models.Task {
	request := tasks_dto.CreateTaskRequestDTO{Title: title}

	w := teams_testing.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/projects/"+project.ID.String()+"/tasks",
		"Bearer "+creatorToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to create task via API: " + w.Body.String())
	}

	var task tasks_models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		panic(err)
	}

	return &task
}
