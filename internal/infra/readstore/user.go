package readstore

import (
	"context"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type userReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) queries.UserReadStore {
	return &userReadStore{db: dbtx}
}

func (s *userReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		pgID pgtype.UUID
		view queries.AuthorizedUserView
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, email, role, is_active FROM users WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&pgID, &view.Email, &view.Role, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}

	view.ID = uuid.UUID(pgID.Bytes)
	return &view, nil
}

func (s *userReadStore) FindCredentialsByEmail(ctx context.Context, email string) (*queries.CredentialView, error) {
	var (
		pgID pgtype.UUID
		view queries.CredentialView
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, email, role, password_hash, is_active FROM users WHERE email = $1`,
		email,
	).Scan(&pgID, &view.Email, &view.Role, &view.PasswordHash, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	view.ID = uuid.UUID(pgID.Bytes)
	return &view, nil
}
