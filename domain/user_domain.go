package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login success"
	MessageSuccessLogout        = "logout success"
	MessageSuccessGetProfile    = "success get profile"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessGoogleLogin   = "google login success"
	MessageSuccessGoogleLink    = "google account linked successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedLogout        = "failed to logout"
	MessageFailedGetProfile    = "failed to get profile"
	MessageFailedUpdateProfile = "failed to update profile"
	MessageFailedGoogleLogin   = "google login failed"
	MessageFailedGoogleLink    = "failed to link google account"

	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrPhoneAlreadyExists   = errors.New("phone already registered")
	ErrContactRequired      = errors.New("email or phone is required")
	ErrCredentialsInvalid   = errors.New("invalid credentials")
	ErrGoogleExchangeFailed = errors.New("failed to fetch user info from google")
	ErrGoogleInfoIncomplete = errors.New("incomplete user info from google")
	ErrGoogleAlreadyLinked  = errors.New("this google account is already linked to another user")
)

type (
	RegisterRequest struct {
		Nickname string `json:"nickname" validate:"required,max=255"`
		Email    string `json:"email" validate:"omitempty,email,max=255"`
		Phone    string `json:"phone" validate:"omitempty,max=20"`
		Password string `json:"password" validate:"required,min=8,max=255"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"omitempty,email"`
		Phone    string `json:"phone" validate:"omitempty,max=20"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	GoogleLoginRequest struct {
		Credential string `json:"credential" validate:"required"`
	}

	GoogleLinkRequest struct {
		Token string `json:"token" validate:"required"`
	}

	// GoogleUserInfo is the subset of the userinfo endpoint payload we read.
	GoogleUserInfo struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	ProfileResponse struct {
		ID         string `json:"id"`
		Nickname   string `json:"nickname"`
		Email      string `json:"email,omitempty"`
		Phone      string `json:"phone,omitempty"`
		Avatar     string `json:"avatar,omitempty"`
		Bio        string `json:"bio,omitempty"`
		Provider   string `json:"provider,omitempty"`
		ProviderID string `json:"provider_id,omitempty"`
	}

	UpdateProfileRequest struct {
		Nickname string `json:"nickname" validate:"omitempty,max=255"`
		Email    string `json:"email" validate:"omitempty,email,max=255"`
		Phone    string `json:"phone" validate:"omitempty,max=20"`
		Bio      string `json:"bio" validate:"omitempty,max=500"`
		Avatar   string `json:"avatar" validate:"omitempty,max=255"`
	}
)
