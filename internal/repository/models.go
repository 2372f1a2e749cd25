package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Supplement is one parent row with its aggregated child values. Images
// carry absolute URLs; Tags carry raw tag ids to be resolved by the
// tags service.
type Supplement struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	OutOfStock  bool               `json:"out_of_stock"`
	Date        pgtype.Timestamptz `json:"date"`
	Images      []string           `json:"images"`
	Tags        []int64            `json:"tags"`
}

type CreateSupplementParams struct {
	Name        string
	Description string
	Images      []string
	Tags        []int64
}

type UpdateSupplementParams struct {
	ID          int64
	Name        string
	Description string
	OutOfStock  bool
	Images      []string
	Tags        []int64
}

type ListSupplementsPaginatedParams struct {
	From  int32
	Limit int32
}

// WriteResult is the coarse outcome of a write operation. Store errors
// never escape the mapper, so a failed write reads the same as a no-op.
type WriteResult int

const (
	WriteNotModified WriteResult = iota
	WriteSuccess
)
