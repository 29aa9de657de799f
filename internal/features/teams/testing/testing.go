package teams_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_models "github.com/Betocasasa/projecthub-backend/internal/features/teams/models"
	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	users_testing "github.com/Betocasasa/projecthub-backend/internal/features/users/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

	return router
}

func CreateTestTeam(name string, owner *users_dto.AuthResponseDTO, router *gin.Engine) *teams_models.Team {
	team, _ := CreateTestTeamWithToken(name, owner.Token, router)
	return team
}

func CreateTestTeamWithToken(name string, token string, router *gin.Engine) (*teams_models.Team, string) {
	users_testing.EnableMemberTeamCreation()
	defer users_testing.ResetSettingsToDefaults()

	request := teams_dto.CreateTeamRequestDTO{Name: name}
	w := MakeAPIRequest(router, "POST", "/api/v1/teams", "Bearer "+token, request)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create team. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response teams_dto.TeamResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	team := &teams_models.Team{
		ID:   response.ID,
		Name: response.Name,
	}

	return team, token
}

func AddMemberToTeam(
	team *teams_models.Team,
	member *users_dto.AuthResponseDTO,
	role users_enums.TeamRole,
	ownerToken string,
	router *gin.Engine,
) {
	request := teams_dto.AddMemberRequestDTO{
		Email: member.User.Email,
		Role:  role,
	}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/teams/memberships/"+team.ID.String()+"/members",
		"Bearer "+ownerToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to add member to team via API: " + w.Body.String())
	}
}

func ChangeMemberRole(
	team *teams_models.Team,
	memberUserID uuid.UUID,
	newRole users_enums.TeamRole,
	changerToken string,
	router *gin.Engine,
) {
	request := teams_dto.ChangeMemberRoleRequestDTO{
		Role: newRole,
	}

	w := MakeAPIRequest(
		router,
		"PUT",
		fmt.Sprintf("/api/v1/teams/memberships/%s/members/%s/role", team.ID.String(), memberUserID.String()),
		"Bearer "+changerToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to change member role via API: " + w.Body.String())
	}
}

func GetTeamMembers(
	team *teams_models.Team,
	requesterToken string,
	router *gin.Engine,
) *teams_dto.GetMembersResponseDTO {
	w := MakeAPIRequest(
		router,
		"GET",
		"/api/v1/teams/memberships/"+team.ID.String()+"/members",
		"Bearer "+requesterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to get team members via API: " + w.Body.String())
	}

	var response teams_dto.GetMembersResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func DeleteTeam(team *teams_models.Team, deleterToken string, router *gin.Engine) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/teams/"+team.ID.String(),
		"Bearer "+deleterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to delete team via API: " + w.Body.String())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
