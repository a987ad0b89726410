package auth

import "vault_backend/internal/api/dto/account"

type SendOTPRequest struct {
	Email string `json:"email"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse - refresh токен и ID сессии уходят в cookies, в теле только access токен
type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	User        account.Profile `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
