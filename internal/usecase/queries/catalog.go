package queries

import (
	"context"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBranchNotFound  = errs.New("branch not found")
	ErrServiceNotFound = errs.New("service not found")
)

type CatalogReadStore interface {
	ListBranches(ctx context.Context) ([]*BranchView, error)
	FindBranchByID(ctx context.Context, id uuid.UUID) (*BranchView, error)
	ListServicesByBranch(ctx context.Context, branchID uuid.UUID) ([]*ServiceView, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
}

type CatalogQueries interface {
	ListBranches(ctx context.Context) ([]*BranchView, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*BranchView, error)
	ListServices(ctx context.Context, branchID uuid.UUID) ([]*ServiceView, error)
	GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) ListBranches(ctx context.Context) ([]*BranchView, error) {
	return q.readStore.ListBranches(ctx)
}

func (q *catalogQueriesImpl) GetBranch(ctx context.Context, id uuid.UUID) (*BranchView, error) {
	view, err := q.readStore.FindBranchByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, branchID uuid.UUID) ([]*ServiceView, error) {
	return q.readStore.ListServicesByBranch(ctx, branchID)
}

func (q *catalogQueriesImpl) GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	view, err := q.readStore.FindServiceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return view, nil
}
