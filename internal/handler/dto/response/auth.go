package response

import (
	"clinic-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        LoginUser `json:"user"`
}

type LoginUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: result.Token,
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		User: LoginUser{
			ID:    result.UserID,
			Email: result.Email,
			Role:  result.Role,
		},
	}
}
