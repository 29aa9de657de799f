package users_controllers

import (
	"fmt"
	"net/http"
	"testing"

	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	users_testing "github.com/Betocasasa/projecthub-backend/internal/features/users/testing"
	test_utils "github.com/Betocasasa/projecthub-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_RegisterUser_WithValidData_UserCreated(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.RegisterRequestDTO{
		Name:     "Test User",
		Email:    "test" + uuid.New().String() + "@example.com",
		Password: "testpassword123",
	}

	var response users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/register",
		"",
		request,
		http.StatusCreated,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, request.Email, response.User.Email)
	assert.Equal(t, users_enums.UserRoleMember, response.User.Role)
	assert.True(t, response.User.IsActive)
}

func Test_RegisterUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	// Test with invalid JSON structure
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/users/register",
		Body:           "invalid json",
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_RegisterUser_WithDuplicateEmail_ReturnsConflict(t *testing.T) {
	router := createUserTestRouter()
	email := "duplicate" + uuid.New().String() + "@example.com"

	request := users_dto.RegisterRequestDTO{
		Name:     "Duplicate User",
		Email:    email,
		Password: "testpassword123",
	}

	// First registration
	test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", request, http.StatusCreated)

	// Second registration with same email
	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", request, http.StatusConflict)
	assert.Contains(t, string(resp.Body), "already exists")
}

func Test_RegisterUser_WithValidationErrors_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	testCases := []struct {
		name    string
		request users_dto.RegisterRequestDTO
	}{
		{
			name: "missing name",
			request: users_dto.RegisterRequestDTO{
				Email:    "test@example.com",
				Password: "testpassword123",
			},
		},
		{
			name: "missing email",
			request: users_dto.RegisterRequestDTO{
				Name:     "Test User",
				Password: "testpassword123",
			},
		},
		{
			name: "missing password",
			request: users_dto.RegisterRequestDTO{
				Name:  "Test User",
				Email: "test@example.com",
			},
		},
		{
			name: "short password",
			request: users_dto.RegisterRequestDTO{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "short",
			},
		},
		{
			name: "invalid email",
			request: users_dto.RegisterRequestDTO{
				Name:     "Test User",
				Email:    "not-an-email",
				Password: "testpassword123",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", tc.request, http.StatusBadRequest)
		})
	}
}

func Test_RegisterUser_WhenExternalRegistrationDisabled_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	defer users_testing.ResetSettingsToDefaults()

	users_testing.DisableExternalRegistrations()

	request := users_dto.RegisterRequestDTO{
		Name:     "Blocked User",
		Email:    "blocked" + uuid.New().String() + "@example.com",
		Password: "testpassword123",
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "external registration is disabled")
}

func Test_LoginUser_WithValidCredentials_ReturnsToken(t *testing.T) {
	router := createUserTestRouter()
	email := "login" + uuid.New().String() + "@example.com"
	password := "testpassword123"

	// First create a user
	registerRequest := users_dto.RegisterRequestDTO{
		Name:     "Login User",
		Email:    email,
		Password: password,
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", registerRequest, http.StatusCreated)

	// Now log in
	loginRequest := users_dto.LoginRequestDTO{
		Email:    email,
		Password: password,
	}

	var response users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/login",
		"",
		loginRequest,
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.NotEqual(t, uuid.Nil, response.User.ID)
}

func Test_LoginUser_WithWrongPassword_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	email := "login2" + uuid.New().String() + "@example.com"

	// First create a user
	registerRequest := users_dto.RegisterRequestDTO{
		Name:     "Login User",
		Email:    email,
		Password: "testpassword123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/register", "", registerRequest, http.StatusCreated)

	// Now log in with wrong password
	loginRequest := users_dto.LoginRequestDTO{
		Email:    email,
		Password: "wrongpassword",
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/login", "", loginRequest, http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "invalid email or password")
}

func Test_LoginUser_WithNonExistentUser_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	loginRequest := users_dto.LoginRequestDTO{
		Email:    "nonexistent" + uuid.New().String() + "@example.com",
		Password: "testpassword123",
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/login", "", loginRequest, http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "invalid email or password")
}

func Test_LoginUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	// Test with invalid JSON structure
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/users/login",
		Body:           "invalid json",
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CheckAdminHasPassword_WhenAdminHasNoPassword_ReturnsFalse(t *testing.T) {
	router := createUserTestRouter()

	users_testing.RecreateInitialAdmin()

	var response users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/admin/has-password", "", http.StatusOK, &response)

	assert.False(t, response.HasPassword)
}

func Test_SetAdminPassword_WithValidPassword_PasswordSet(t *testing.T) {
	router := createUserTestRouter()

	users_testing.RecreateInitialAdmin()

	request := users_dto.SetAdminPasswordRequestDTO{
		Password: "adminpassword123",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/admin/set-password", "", request, http.StatusOK)

	// Now check that admin has password
	var hasPasswordResponse users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/admin/has-password",
		"",
		http.StatusOK,
		&hasPasswordResponse,
	)

	assert.True(t, hasPasswordResponse.HasPassword)
}

func Test_SetAdminPassword_WithInvalidPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	testCases := []struct {
		name     string
		password string
	}{
		{
			name:     "short password",
			password: "short",
		},
		{
			name:     "empty password",
			password: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := users_dto.SetAdminPasswordRequestDTO{
				Password: tc.password,
			}

			test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/users/admin/set-password",
				"",
				request,
				http.StatusBadRequest,
			)
		})
	}
}

func Test_ChangeUserPassword_WithValidData_PasswordChanged(t *testing.T) {
	router := createUserTestRouter()
	email := "changepass" + uuid.New().String() + "@example.com"
	oldPassword := "oldpassword123"
	newPassword := "newpassword123"

	// Create user via register
	registerRequest := users_dto.RegisterRequestDTO{
		Name:     "Change Password User",
		Email:    email,
		Password: oldPassword,
	}

	var registerResponse users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/register",
		"",
		registerRequest,
		http.StatusCreated,
		&registerResponse,
	)

	// Change password
	changePasswordRequest := users_dto.ChangePasswordRequestDTO{
		NewPassword: newPassword,
	}

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+registerResponse.Token,
		changePasswordRequest,
		http.StatusOK,
	)

	// Verify old password no longer works
	oldLoginRequest := users_dto.LoginRequestDTO{
		Email:    email,
		Password: oldPassword,
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/login", "", oldLoginRequest, http.StatusUnauthorized)

	// Verify new password works
	newLoginRequest := users_dto.LoginRequestDTO{
		Email:    email,
		Password: newPassword,
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/login", "", newLoginRequest, http.StatusOK)
}

func Test_ChangeUserPassword_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.ChangePasswordRequestDTO{
		NewPassword: "newpassword123",
	}

	test_utils.MakePutRequest(t, router, "/api/v1/users/change-password", "", request, http.StatusUnauthorized)
}

func Test_ChangeUserPassword_WithValidationErrors_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	testCases := []struct {
		name    string
		request users_dto.ChangePasswordRequestDTO
	}{
		{
			name:    "missing new password",
			request: users_dto.ChangePasswordRequestDTO{},
		},
		{
			name: "short new password",
			request: users_dto.ChangePasswordRequestDTO{
				NewPassword: "short",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePutRequest(
				t,
				router,
				"/api/v1/users/change-password",
				"Bearer "+testUser.Token,
				tc.request,
				http.StatusBadRequest,
			)
		})
	}
}

func Test_InviteUser_WhenUserIsAdmin_UserInvited(t *testing.T) {
	router := createUserTestRouter()
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	teamID := uuid.New()
	teamRole := users_enums.TeamRoleMember

	request := users_dto.InviteUserRequestDTO{
		Email:            "invited" + uuid.New().String() + "@example.com",
		IntendedTeamID:   &teamID,
		IntendedTeamRole: &teamRole,
	}

	var response users_dto.InviteUserResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/invite",
		"Bearer "+adminUser.Token,
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, request.Email, response.Email)
	assert.Equal(t, request.IntendedTeamID, response.IntendedTeamID)
	assert.Equal(t, request.IntendedTeamRole, response.IntendedTeamRole)
	assert.NotEqual(t, uuid.Nil, response.ID)
}

func Test_InviteUser_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.InviteUserRequestDTO{
		Email: "invited@example.com",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/invite", "", request, http.StatusUnauthorized)
}

func Test_InviteUser_WithoutPermission_ReturnsForbidden(t *testing.T) {
	router := createUserTestRouter()
	defer users_testing.ResetSettingsToDefaults()

	memberUser := users_testing.CreateTestUser(users_enums.UserRoleMember)

	uniqueID := uuid.New().String()[:8]
	request := users_dto.InviteUserRequestDTO{
		Email: fmt.Sprintf("invited_%s@example.com", uniqueID),
	}

	users_testing.DisableMemberInvitations()

	settingsService := users_services.GetSettingsService()
	settings, err := settingsService.GetSettings()
	assert.NoError(t, err)

	if settings.IsAllowMemberInvitations {
		t.Fatal("RACE CONDITION DETECTED: Member invitations should be disabled but were enabled by another test")
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/invite",
		"Bearer "+memberUser.Token,
		request,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions")
}

func Test_InviteUser_WithValidationErrors_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	testCases := []struct {
		name    string
		request users_dto.InviteUserRequestDTO
	}{
		{
			name: "missing email",
			request: users_dto.InviteUserRequestDTO{
				IntendedTeamID: &uuid.UUID{},
			},
		},
		{
			name: "invalid email",
			request: users_dto.InviteUserRequestDTO{
				Email: "invalid-email",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/users/invite",
				"Bearer "+adminUser.Token,
				tc.request,
				http.StatusBadRequest,
			)
		})
	}
}

func Test_InviteUser_WithDuplicateEmail_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	adminUser := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	email := "duplicate-invite" + uuid.New().String() + "@example.com"

	request := users_dto.InviteUserRequestDTO{
		Email: email,
	}

	// First invitation
	test_utils.MakePostRequest(t, router, "/api/v1/users/invite", "Bearer "+adminUser.Token, request, http.StatusOK)

	// Second invitation with same email
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/invite",
		"Bearer "+adminUser.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "already exists")
}
