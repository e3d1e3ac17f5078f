package readstore

import (
	"context"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type catalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) queries.CatalogReadStore {
	return &catalogReadStore{db: dbtx}
}

const branchColumns = `id, name, address, phone, is_active, created_at, updated_at`

func (s *catalogReadStore) ListBranches(ctx context.Context) ([]*queries.BranchView, error) {
	rows, err := s.db.Query(ctx, `SELECT `+branchColumns+` FROM branches WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list branches", err)
	}
	defer rows.Close()

	views := make([]*queries.BranchView, 0)
	for rows.Next() {
		view, err := scanBranchView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan branch row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate branch rows", err)
	}
	return views, nil
}

func (s *catalogReadStore) FindBranchByID(ctx context.Context, id uuid.UUID) (*queries.BranchView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanBranchView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("branch not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find branch by id", err)
	}
	return view, nil
}

const serviceColumns = `id, branch_id, name, description, price, duration_min, is_active, created_at, updated_at`

func (s *catalogReadStore) ListServicesByBranch(ctx context.Context, branchID uuid.UUID) ([]*queries.ServiceView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE branch_id = $1 AND is_active ORDER BY name`,
		pgconv.UUIDToPgtype(branchID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	views := make([]*queries.ServiceView, 0)
	for rows.Next() {
		view, err := scanServiceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}
	return views, nil
}

func (s *catalogReadStore) FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanServiceView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by id", err)
	}
	return view, nil
}

func scanBranchView(row pgx.Row) (*queries.BranchView, error) {
	var (
		id        pgtype.UUID
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		view      queries.BranchView
	)

	err := row.Scan(&id, &view.Name, &view.Address, &phone, &view.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	view.ID = uuid.UUID(id.Bytes)
	view.Phone = pgconv.StringPtrFromPgtype(phone)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func scanServiceView(row pgx.Row) (*queries.ServiceView, error) {
	var (
		id          pgtype.UUID
		branchID    pgtype.UUID
		description pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		view        queries.ServiceView
	)

	err := row.Scan(&id, &branchID, &view.Name, &description, &view.Price, &view.DurationMin,
		&view.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	view.ID = uuid.UUID(id.Bytes)
	view.BranchID = uuid.UUID(branchID.Bytes)
	view.Description = pgconv.StringPtrFromPgtype(description)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
