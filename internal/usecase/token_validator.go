package usecase

import (
	"context"

	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/pkg/jwt"
	"clinic-booking-api/internal/usecase/queries"
)

var (
	ErrInvalidToken = errs.New("invalid or expired token")
	ErrUserInactive = errs.New("user account is inactive")
)

// TokenValidator resolves a bearer token to the user it authorizes.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*queries.AuthorizedUserView, error)
}

type tokenValidatorImpl struct {
	jwtService  *jwt.Service
	userQueries queries.UserQueries
}

func NewTokenValidator(jwtService *jwt.Service, userQueries queries.UserQueries) TokenValidator {
	return &tokenValidatorImpl{
		jwtService:  jwtService,
		userQueries: userQueries,
	}
}

// ValidateAccessToken verifies the signature and then re-checks the user
// against the store, so revoking an account takes effect before expiry.
func (v *tokenValidatorImpl) ValidateAccessToken(ctx context.Context, token string) (*queries.AuthorizedUserView, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	user, err := v.userQueries.GetAuthorizedUser(ctx, claims.UserID)
	if err != nil {
		if errs.Is(err, queries.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}
