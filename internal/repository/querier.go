package repository

import (
	"context"
)

type Querier interface {
	GetSupplement(ctx context.Context, id int64) []Supplement
	GetSupplementsByIDs(ctx context.Context, ids []int64) []Supplement
	ListSupplementsPaginated(ctx context.Context, arg ListSupplementsPaginatedParams) []Supplement
	SearchSupplements(ctx context.Context, term string) []Supplement
	CreateSupplement(ctx context.Context, arg CreateSupplementParams) WriteResult
	UpdateSupplement(ctx context.Context, arg UpdateSupplementParams) WriteResult
	DeleteSupplement(ctx context.Context, id int64) WriteResult
}

var _ Querier = (*Queries)(nil)
