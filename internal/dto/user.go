package dto

import (
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// SignUpRequest creates a password account.
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"max=80"`
}

// SignInRequest authenticates a password account.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google ID token obtained by the frontend.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries an OAuth authorization code from the frontend redirect.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	AuthProvider string `json:"authProvider"`
}

// AuthResponse is returned by every successful sign-in. The same token is also
// set as the session cookie.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UpdateProfileRequest uses pointers so omitted fields keep their stored value.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=80"`
	Timezone    *string `json:"timezone" binding:"omitempty,timezone"`
	DateFormat  *string `json:"dateFormat" binding:"omitempty,oneof=DD/MM/YYYY MM/DD/YYYY YYYY-MM-DD"`
	TimeFormat  *string `json:"timeFormat" binding:"omitempty,oneof=12h 24h"`
}

// Apply merges the request onto p.
func (r UpdateProfileRequest) Apply(p domain.Profile) domain.Profile {
	if r.DisplayName != nil {
		p.DisplayName = *r.DisplayName
	}
	if r.Timezone != nil {
		p.Timezone = *r.Timezone
	}
	if r.DateFormat != nil {
		p.DateFormat = *r.DateFormat
	}
	if r.TimeFormat != nil {
		p.TimeFormat = *r.TimeFormat
	}
	return p
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		DisplayName:  u.Profile.DisplayName,
		AuthProvider: string(u.AuthProvider),
	}
}
