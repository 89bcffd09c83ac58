package service

import (
	"context"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/google/uuid"
)

// AuthService handles authentication and profile operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	// RedirectTo is the dashboard the client should open for the user's role
	RedirectTo string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FullName        string `json:"full_name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=50"`
	Password        string `json:"password" validate:"required,min=8"`
	Role            string `json:"role" validate:"required,oneof=shop_owner customer"`
	BusinessName    string `json:"business_name" validate:"max=255"`
	BusinessAddress string `json:"business_address"`
	Location        string `json:"location" validate:"max=255"`
}

// Register creates a new shop owner or customer account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.TrimSpace(input.Role)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Role:            enum.UserRole(input.Role),
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           strings.TrimSpace(input.Phone),
		Password:        hashedPassword,
		BusinessName:    optional(input.BusinessName),
		BusinessAddress: optional(input.BusinessAddress),
		Location:        optional(input.Location),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role), user.CustomerCode)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RedirectTo:   user.Role.DashboardPath(),
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	if err := validateStruct(input); err != nil {
		return err
	}
	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// UpdateProfileInput represents the update profile input. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID          uuid.UUID
	FullName        *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	BusinessName    *string `json:"business_name" validate:"omitempty,max=255"`
	BusinessAddress *string `json:"business_address"`
	Location        *string `json:"location" validate:"omitempty,max=255"`
}

// UpdateProfile updates the user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	if input.FullName != nil {
		trimmed := strings.TrimSpace(*input.FullName)
		input.FullName = &trimmed
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.BusinessName != nil {
		user.BusinessName = optional(*input.BusinessName)
	}
	if input.BusinessAddress != nil {
		user.BusinessAddress = optional(*input.BusinessAddress)
	}
	if input.Location != nil {
		user.Location = optional(*input.Location)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// optional maps blank text to nil
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
