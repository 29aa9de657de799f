package users_controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	teams_controllers "github.com/Betocasasa/projecthub-backend/internal/features/teams/controllers"
	teams_dto "github.com/Betocasasa/projecthub-backend/internal/features/teams/dto"
	teams_testing "github.com/Betocasasa/projecthub-backend/internal/features/teams/testing"
	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	users_testing "github.com/Betocasasa/projecthub-backend/internal/features/users/testing"
	test_utils "github.com/Betocasasa/projecthub-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_GetUsersList_WhenUserIsAdmin_ReturnsUsers(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var response users_dto.ListUsersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users",
		"Bearer "+testUser.Token,
		http.StatusOK,
		&response,
	)

	assert.NotNil(t, response.Users)
	assert.GreaterOrEqual(t, response.Total, int64(1)) // At least the test user should exist
}

func Test_GetUsersList_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create member user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/users", "Bearer "+testUser.Token, http.StatusForbidden)
	assert.Contains(t, string(resp.Body), "permissions")
}

func Test_GetUsersList_WithPagination_RespectsLimits(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var response users_dto.ListUsersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users?limit=5&offset=0",
		"Bearer "+testUser.Token,
		http.StatusOK,
		&response,
	)

	assert.NotNil(t, response.Users)
	assert.LessOrEqual(t, len(response.Users), 5) // Should respect limit
}

func Test_GetUsersList_WithBeforeDateFilter_ReturnsFilteredUsers(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	// Test with beforeDate filter
	beforeDate := "2024-01-01T00:00:00Z"
	var response users_dto.ListUsersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users?beforeDate="+beforeDate,
		"Bearer "+testUser.Token,
		http.StatusOK,
		&response,
	)

	assert.NotNil(t, response.Users)
	// All returned users should have been created before the specified date
	for _, user := range response.Users {
		assert.True(t, user.CreatedAt.Before(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	}
}

func Test_GetUsersList_WithInvalidDateFilter_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	// Test with invalid date format
	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users?beforeDate=invalid-date",
		"Bearer "+testUser.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid query parameters")
}

func Test_GetUsersList_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createManagementTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users", "", http.StatusUnauthorized)
}

func Test_GetUserProfile_WhenAccessingOwnProfile_ReturnsProfile(t *testing.T) {
	router := createManagementTestRouter()

	// Create member user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	var response users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/"+testUser.User.ID.String(),
		"Bearer "+testUser.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, testUser.User.ID, response.ID)
	assert.Equal(t, users_enums.UserRoleMember, response.Role)
}

func Test_GetUserProfile_WhenUserIsAdmin_ReturnsProfile(t *testing.T) {
	router := createManagementTestRouter()

	// Create both admin and regular user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	regularUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	var response users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/"+regularUser.User.ID.String(),
		"Bearer "+adminUser.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, regularUser.User.ID, response.ID)
}

func Test_GetUserProfile_WhenAccessingOtherUserAsMember_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create two member users
	user1 := users_testing.CreateTestUser(users_enums.UserRoleMember)
	user2 := users_testing.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/"+user2.User.ID.String(),
		"Bearer "+user1.Token,
		http.StatusForbidden,
	)
}

func Test_GetUserProfile_WithNonExistentUser_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	// Try to access non-existent user
	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/00000000-0000-0000-0000-000000000000",
		"Bearer "+testUser.Token,
		http.StatusForbidden,
	)
}

func Test_GetUserProfile_WithInvalidUserID_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user and get token
	testUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/invalid-uuid",
		"Bearer "+testUser.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid user ID")
}

func Test_DeactivateUser_WhenUserIsAdmin_UserDeactivated(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin and target user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/deactivate",
		"Bearer "+adminUser.Token,
		nil,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User deactivated successfully")
}

func Test_DeactivateUser_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create two member users
	user1 := users_testing.CreateTestUser(users_enums.UserRoleMember)
	user2 := users_testing.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+user2.User.ID.String()+"/deactivate",
		"Bearer "+user1.Token,
		nil,
		http.StatusForbidden,
	)
}

func Test_DeactivateUser_WhenDeactivatingOwnAccount_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminUser.User.ID.String()+"/deactivate",
		"Bearer "+adminUser.Token,
		nil,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot deactivate your own account")
}

func Test_ActivateUser_WhenUserIsAdmin_UserActivated(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin and target user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	// First deactivate the user
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/deactivate",
		"Bearer "+adminUser.Token,
		nil,
		http.StatusOK,
	)

	// Now activate the user
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/activate",
		"Bearer "+adminUser.Token,
		nil,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User activated successfully")
}

func Test_ActivateUser_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create two member users
	user1 := users_testing.CreateTestUser(users_enums.UserRoleMember)
	user2 := users_testing.CreateTestUser(users_enums.UserRoleMember)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+user2.User.ID.String()+"/activate",
		"Bearer "+user1.Token,
		nil,
		http.StatusForbidden,
	)
}

func Test_ChangeUserRole_WhenUserIsRootAdmin_RoleChanged(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin and target user
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleAdmin,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/role",
		"Bearer "+rootAdmin.Token,
		request,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User role changed successfully")
}

func Test_ChangeUserRole_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createManagementTestRouter()

	// Create two member users
	user1 := users_testing.CreateTestUser(users_enums.UserRoleMember)
	user2 := users_testing.CreateTestUser(users_enums.UserRoleMember)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleAdmin,
	}

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+user2.User.ID.String()+"/role",
		"Bearer "+user1.Token,
		request,
		http.StatusForbidden,
	)
}

func Test_ChangeUserRole_WhenChangingOwnRole_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleMember,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+adminUser.User.ID.String()+"/role",
		"Bearer "+adminUser.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot change your own role")
}

func Test_ChangeUserRole_WithInvalidRole_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin and target user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	// Test with invalid JSON structure containing invalid role
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PUT",
		URL:            "/api/v1/users/" + targetUser.User.ID.String() + "/role",
		Body:           map[string]string{"role": "INVALID_ROLE"},
		AuthToken:      "Bearer " + adminUser.Token,
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.NotEmpty(t, resp.Body)
}

func Test_ChangeUserRole_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create admin and target user
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	// Test with invalid JSON structure
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "PUT",
		URL:            "/api/v1/users/" + targetUser.User.ID.String() + "/role",
		Body:           "invalid json",
		AuthToken:      "Bearer " + adminUser.Token,
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

// Tests for root admin restrictions
func Test_ChangeUserRole_WhenRegularAdminPromotesToAdmin_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create regular admin and target user
	regularAdmin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleAdmin,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/role",
		"Bearer "+regularAdmin.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "only the root admin user can promote users to admin or demote admin users")
}

func Test_ChangeUserRole_WhenRegularAdminDemotesAdmin_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create regular admin and admin target user
	regularAdmin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleMember,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/role",
		"Bearer "+regularAdmin.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "only the root admin user can promote users to admin or demote admin users")
}

func Test_DeactivateUser_WhenRegularAdminDeactivatesAdmin_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create regular admin and admin target user
	regularAdmin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/deactivate",
		"Bearer "+regularAdmin.Token,
		nil,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "only the root admin user can deactivate admin accounts")
}

func Test_ActivateUser_WhenRegularAdminActivatesAdmin_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create regular admin and admin target user
	regularAdmin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/activate",
		"Bearer "+regularAdmin.Token,
		nil,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "only the root admin user can activate admin accounts")
}

func Test_ChangeUserRole_WhenRootAdminPromotesToAdmin_RoleChanged(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin and target user
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()
	targetUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleAdmin,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+targetUser.User.ID.String()+"/role",
		"Bearer "+rootAdmin.Token,
		request,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User role changed successfully")
}

func Test_ChangeUserRole_WhenRootAdminDemotesAdmin_RoleChanged(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin and admin target user
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleMember,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/role",
		"Bearer "+rootAdmin.Token,
		request,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User role changed successfully")
}

func Test_DeactivateUser_WhenRootAdminDeactivatesAdmin_UserDeactivated(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin and admin target user
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/deactivate",
		"Bearer "+rootAdmin.Token,
		nil,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User deactivated successfully")
}

func Test_ActivateUser_WhenRootAdminActivatesAdmin_UserActivated(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin and admin target user
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()
	adminTargetUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	// First deactivate the admin user
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/deactivate",
		"Bearer "+rootAdmin.Token,
		nil,
		http.StatusOK,
	)

	// Now activate the admin user
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+adminTargetUser.User.ID.String()+"/activate",
		"Bearer "+rootAdmin.Token,
		nil,
		http.StatusOK,
	)
	assert.Contains(t, string(resp.Body), "User activated successfully")
}

func Test_ChangeUserRole_WhenRootAdminChangesOwnRole_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()

	request := users_dto.ChangeUserRoleRequestDTO{
		Role: users_enums.UserRoleMember,
	}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/"+rootAdmin.User.ID.String()+"/role",
		"Bearer "+rootAdmin.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot change your own role")
}

func Test_DeactivateUser_WhenRootAdminDeactivatesOwnAccount_ReturnsBadRequest(t *testing.T) {
	router := createManagementTestRouter()

	// Create root admin
	rootAdmin := users_testing.ReacreateInitAdminAndGetAccess()

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/"+rootAdmin.User.ID.String()+"/deactivate",
		"Bearer "+rootAdmin.Token,
		nil,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot deactivate your own account")
}

func Test_InviteUserToTeam_MembershipReceivedAfterRegistration(t *testing.T) {
	// Setup router with required controllers
	router := createInviteTeamTestRouter()
	users_testing.EnableMemberInvitations()
	users_testing.EnableExternalRegistrations()
	defer users_testing.ResetSettingsToDefaults()

	// 1. Create team owner and team
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	team := teams_testing.CreateTestTeam("Invite Test Team", owner, router)

	// 2. Invite non-existing user to team
	inviteEmail := "invited-" + uuid.New().String() + "@example.com"
	addMemberRequest := teams_dto.AddMemberRequestDTO{
		Email: inviteEmail,
		Role:  users_enums.TeamRoleMember,
	}

	var addMemberResponse teams_dto.AddMemberResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/memberships/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		addMemberRequest,
		http.StatusOK,
		&addMemberResponse,
	)
	assert.Equal(t, teams_dto.AddStatusInvited, addMemberResponse.Status)

	// 3. Invited user completes registration
	registerRequest := users_dto.RegisterRequestDTO{
		Name:     "Invited Team Member",
		Email:    inviteEmail,
		Password: "testpassword123",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", registerRequest, http.StatusCreated)

	// 4. Log in the newly registered user
	loginRequest := users_dto.LoginRequestDTO{
		Email:    inviteEmail,
		Password: "testpassword123",
	}

	var loginResponse users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/login",
		"",
		loginRequest,
		http.StatusOK,
		&loginResponse,
	)

	// 5. Verify the membership created at invite time is visible to the new user
	var membersResponse teams_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/memberships/"+team.ID.String()+"/members",
		"Bearer "+loginResponse.Token,
		http.StatusOK,
		&membersResponse,
	)

	var foundMember *teams_dto.TeamMemberResponseDTO
	for i := range membersResponse.Members {
		if membersResponse.Members[i].UserID == loginResponse.User.ID {
			foundMember = &membersResponse.Members[i]
			break
		}
	}

	assert.NotNil(t, foundMember, "Invited user should hold the team membership after completing registration")
	assert.Equal(t, users_enums.TeamRoleMember, foundMember.Role)
	assert.Equal(t, inviteEmail, foundMember.Email)
}

func createInviteTeamTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	// Register unprotected routes (register, login)
	GetUserController().RegisterRoutes(v1)
	GetUserController().SetLoginLimiter(rate.NewLimiter(rate.Limit(100), 100))

	// Register protected routes with auth middleware
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	// Register all necessary controllers for the test
	GetManagementController().RegisterRoutes(protected.(*gin.RouterGroup))
	GetUserController().RegisterProtectedRoutes(protected.(*gin.RouterGroup))
	teams_controllers.GetTeamController().RegisterRoutes(protected.(*gin.RouterGroup))
	teams_controllers.GetMembershipController().RegisterRoutes(protected.(*gin.RouterGroup))
	audit_logs.SetupDependencies()

	return router
}
