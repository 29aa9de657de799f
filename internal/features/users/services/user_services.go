package users_services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/users/interfaces"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	users_repositories "github.com/Betocasasa/projecthub-backend/internal/features/users/repositories"
)

// AccessTokenLifetime bounds every issued token. Live connections cache the
// expiry at handshake and re-check it per event, so this is the hard upper
// bound on how long any surface trusts a token.
const AccessTokenLifetime = 7 * 24 * time.Hour

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	settingsService     *SettingsService
	// audit log is never nil, DI always set it
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewUserService(
	userRepository *users_repositories.UserRepository,
	secretKeyRepository *users_repositories.SecretKeyRepository,
	settingsService *SettingsService,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		secretKeyRepository: secretKeyRepository,
		settingsService:     settingsService,
	}
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) Register(request *users_dto.RegisterRequestDTO) (*users_dto.AuthResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil && existingUser.Status != users_enums.UserStatusInvited {
		return nil, errors.New("user with this email already exists")
	}

	role := request.Role
	if role == "" {
		role = users_enums.UserRoleMember
	}
	if !role.IsValid() {
		return nil, errors.New("invalid user role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	// If user exists with INVITED status, activate them and set password
	if existingUser != nil && existingUser.Status == users_enums.UserStatusInvited {
		if err := s.userRepository.UpdateUserPassword(existingUser.ID, hashedPasswordStr); err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := s.userRepository.UpdateUserStatus(existingUser.ID, users_enums.UserStatusActive); err != nil {
			return nil, fmt.Errorf("failed to activate user: %w", err)
		}

		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Invited user completed registration: %s", existingUser.Email),
			&existingUser.ID,
			nil,
		)

		activated, err := s.userRepository.GetUserByID(existingUser.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload user: %w", err)
		}

		return s.GenerateAccessToken(activated)
	}

	// Get settings to check registration policy for new users
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	// Check if external registrations are allowed
	if !settings.IsAllowExternalRegistrations {
		return nil, errors.New("external registration is disabled")
	}

	// Create new user
	user := &users_models.User{
		ID:                   uuid.New(),
		Name:                 request.Name,
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User registered with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return s.GenerateAccessToken(user)
}

func (s *UserService) Login(request *users_dto.LoginRequestDTO) (*users_dto.AuthResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if user == nil {
		return nil, errors.New("invalid email or password")
	}

	if user.Status == users_enums.UserStatusInvited {
		return nil, errors.New("user account has not completed registration yet")
	}

	if user.Status != users_enums.UserStatusActive {
		return nil, errors.New("user account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return response, nil
}

// GetUserFromToken resolves a bearer token to an active user. Both the HTTP
// middleware and the live-connection handshake go through here; there is no
// second trust path.
func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	user, _, err := s.GetUserFromTokenWithExpiry(token)
	return user, err
}

// GetUserFromTokenWithExpiry additionally returns the token's expiry so
// long-lived connections can re-check it per event without re-parsing.
func (s *UserService) GetUserFromTokenWithExpiry(token string) (*users_models.User, time.Time, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, time.Time{}, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, time.Time{}, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, time.Time{}, errors.New("invalid token claims")
	}

	expUnix, ok := claims["exp"].(float64)
	if !ok {
		return nil, time.Time{}, errors.New("invalid token claims: missing expiry")
	}
	expiresAt := time.Unix(int64(expUnix), 0).UTC()

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, time.Time{}, err
	}

	// Check if user is active
	if !user.IsActiveUser() {
		return nil, time.Time{}, errors.New("user account is deactivated")
	}

	if passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64); ok {
		tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)

		tokenTimeSeconds := tokenPasswordTime.Truncate(time.Second)
		userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)

		if !tokenTimeSeconds.Equal(userTimeSeconds) {
			return nil, time.Time{}, errors.New("password has been changed, please sign in again")
		}
	} else {
		return nil, time.Time{}, errors.New("invalid token claims: missing password creation time")
	}

	return user, expiresAt, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.AuthResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiresAt := time.Now().UTC().Add(AccessTokenLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiresAt.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.AuthResponseDTO{
		Token: tokenString,
		User:  *s.GetCurrentUserProfile(user),
	}, nil
}

func (s *UserService) CreateInitialAdmin() error {
	return s.userRepository.CreateInitialAdmin()
}

func (s *UserService) IsRootAdminHasPassword() (bool, error) {
	admin, err := s.userRepository.GetUserByEmail("admin")

	if err != nil {
		return false, fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return false, errors.New("admin user does not exist")
	}

	return admin.HasPassword(), nil
}

func (s *UserService) SetRootAdminPassword(password string) error {
	admin, err := s.userRepository.GetUserByEmail("admin")
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return errors.New("admin user does not exist")
	}

	if admin.HasPassword() {
		return errors.New("admin password is already set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(admin.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(
			"Admin password set",
			&admin.ID,
			nil,
		)
	}

	return nil
}

func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return s.ChangeUserPassword(user.ID, newPassword)
}

func (s *UserService) ChangeUserPassword(userID uuid.UUID, newPassword string) error {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return errors.New("user has no password set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		"Password changed",
		&userID,
		nil,
	)

	return nil
}

func (s *UserService) InviteUser(
	request *users_dto.InviteUserRequestDTO,
	invitedBy *users_models.User,
) (*users_dto.InviteUserResponseDTO, error) {
	// Get settings to check permissions
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	// Check if user has permission to invite
	if !invitedBy.CanInviteUsers(settings) {
		return nil, errors.New("insufficient permissions to invite users")
	}

	// Check if user already exists
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                request.Email,
		HashedPassword:       nil, // No password yet
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleMember,
		Status:               users_enums.UserStatusInvited,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create invited user: %w", err)
	}

	message := fmt.Sprintf("User invited: %s", request.Email)
	if request.IntendedTeamID != nil {
		message += fmt.Sprintf(" for team %s", request.IntendedTeamID.String())
	}
	s.auditLogWriter.WriteAuditLog(
		message,
		&invitedBy.ID,
		request.IntendedTeamID,
	)

	return &users_dto.InviteUserResponseDTO{
		ID:               user.ID,
		Email:            user.Email,
		IntendedTeamID:   request.IntendedTeamID,
		IntendedTeamRole: request.IntendedTeamRole,
		CreatedAt:        user.CreatedAt,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActiveUser(),
		CreatedAt: user.CreatedAt,
	}
}
