package commands

import (
	"context"
	"time"

	"clinic-booking-api/internal/domain/user"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/pkg/jwt"
	"clinic-booking-api/internal/pkg/password"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// ErrAuthenticationFailed deliberately does not distinguish an unknown email
// from a wrong password.
var ErrAuthenticationFailed = errs.New("invalid email or password")

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	UserID    uuid.UUID
	Email     string
	Role      string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	userReadStore queries.UserReadStore
	jwtService    *jwt.Service
}

func NewAuthCommands(userReadStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userReadStore: userReadStore,
		jwtService:    jwtService,
	}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	creds, err := user.NewCredentials(email, plainPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, err := c.userReadStore.FindCredentialsByEmail(ctx, creds.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if !view.IsActive {
		return nil, ErrAuthenticationFailed
	}

	if err := password.ComparePassword(view.PasswordHash, creds.Password().Value()); err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, err
	}

	token, err := c.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue access token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: c.jwtService.TokenDuration(),
		UserID:    view.ID,
		Email:     view.Email,
		Role:      role.String(),
	}, nil
}
