package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
	"hospital-appointment-api/pkg/utils"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	hospitalRepo *repository.HospitalRepository
}

func NewAuthService(userRepo *repository.UserRepository, hospitalRepo *repository.HospitalRepository) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	HospitalID *uint  `json:"hospital_id,omitempty"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	return s.issueTokens(user)
}

// Register creates a new user account. Patients self-register; the
// privileged roles (admin, hospital_admin, staff) can only be assigned
// by an authenticated system admin, and hospital-bound roles must name
// an existing hospital.
func (s *AuthService) Register(username, password, email, phone, role string, hospitalID *uint, createdBy *authz.Actor) (*LoginResponse, error) {
	if existing, err := s.userRepo.FindUserByUsername(username); err == nil && existing != nil {
		return nil, errors.New("username already exists")
	}

	if role == "" {
		role = string(authz.RolePatient)
	}
	if !authz.Role(role).Valid() {
		return nil, errors.New("unknown role")
	}
	if role != string(authz.RolePatient) {
		if createdBy == nil || createdBy.Role != authz.RoleAdmin {
			return nil, authz.ErrPermissionDenied
		}
	}

	switch authz.Role(role) {
	case authz.RoleHospitalAdmin, authz.RoleStaff:
		if hospitalID != nil {
			if _, err := s.hospitalRepo.GetHospitalByID(*hospitalID); err != nil {
				return nil, err
			}
		}
	default:
		// admin and patient accounts never carry a hospital
		hospitalID = nil
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         role,
		HospitalID:   hospitalID,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role, token.User.HospitalID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)
	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, user.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Role:       user.Role,
			HospitalID: user.HospitalID,
		},
	}, nil
}
