package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request. Field rules are checked
// by the auth service so failures come back as per-field errors.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	Location        string `json:"location"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// UpdateProfileRequest carries the editable profile fields. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	BusinessName    *string `json:"business_name"`
	BusinessAddress *string `json:"business_address"`
	Location        *string `json:"location"`
}
