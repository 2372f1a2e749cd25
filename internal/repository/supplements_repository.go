package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vitalmarket/supplements-service/internal/logs"
)

// DB is the subset of pgxpool.Pool the queries need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Queries struct {
	db        DB
	logger    logs.Logger
	assetLink string
}

// New builds the supplement queries. assetLink is the URL prefix
// prepended to stored image names to form absolute asset URLs.
func New(db DB, logger logs.Logger, assetLink string) *Queries {
	return &Queries{
		db:        db,
		logger:    logger,
		assetLink: assetLink,
	}
}

const supplementSelect = `
SELECT
	s.id,
	s.name,
	s.description,
	s.out_of_stock,
	s.date,
	COALESCE(ARRAY_AGG(DISTINCT si.image_name) FILTER (WHERE si.image_name IS NOT NULL), '{}') AS images,
	COALESCE(ARRAY_AGG(DISTINCT st.tag_id) FILTER (WHERE st.tag_id IS NOT NULL), '{}') AS tags
FROM supplements AS s
LEFT JOIN supplement_images AS si ON s.id = si.supplement_parent
LEFT JOIN supplement_tags AS st ON s.id = st.supplement_parent`

const getSupplementSQL = supplementSelect + `
WHERE s.id = $1
GROUP BY s.id`

const getSupplementsByIDsSQL = supplementSelect + `
WHERE s.id = ANY($1)
GROUP BY s.id`

const listSupplementsPaginatedSQL = supplementSelect + `
GROUP BY s.id
ORDER BY s.id
LIMIT $2 OFFSET $1`

const searchSupplementsSQL = supplementSelect + `
WHERE s.name ILIKE '%' || $1 || '%'
GROUP BY s.id
LIMIT 10`

const (
	insertSupplementSQL = `INSERT INTO supplements (name, description) VALUES ($1, $2) RETURNING id`
	insertImageSQL      = `INSERT INTO supplement_images (image_name, supplement_parent) VALUES ($1, $2)`
	insertTagSQL        = `INSERT INTO supplement_tags (tag_id, supplement_parent) VALUES ($1, $2)`

	updateSupplementSQL = `UPDATE supplements SET name = $1, description = $2, out_of_stock = $3 WHERE id = $4`

	deleteImagesSQL       = `DELETE FROM supplement_images WHERE supplement_parent = $1`
	deleteTagsSQL         = `DELETE FROM supplement_tags WHERE supplement_parent = $1`
	deleteProductLinksSQL = `DELETE FROM product_supplements WHERE supplement_id = $1`
	deleteSupplementSQL   = `DELETE FROM supplements WHERE id = $1`
)

func (q *Queries) GetSupplement(ctx context.Context, id int64) []Supplement {
	return q.collectSupplements(ctx, "get supplement", getSupplementSQL, id)
}

func (q *Queries) GetSupplementsByIDs(ctx context.Context, ids []int64) []Supplement {
	return q.collectSupplements(ctx, "get supplements by ids", getSupplementsByIDsSQL, ids)
}

func (q *Queries) ListSupplementsPaginated(ctx context.Context, arg ListSupplementsPaginatedParams) []Supplement {
	return q.collectSupplements(ctx, "list supplements", listSupplementsPaginatedSQL, arg.From, arg.Limit)
}

func (q *Queries) SearchSupplements(ctx context.Context, term string) []Supplement {
	return q.collectSupplements(ctx, "search supplements", searchSupplementsSQL, escapeLikePattern(term))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern keeps the user's term a literal substring: % and _
// would otherwise act as wildcards inside the ILIKE pattern.
func escapeLikePattern(term string) string {
	return likeEscaper.Replace(term)
}

func (q *Queries) collectSupplements(ctx context.Context, op string, sql string, args ...any) []Supplement {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		q.logStoreError(op, err)
		return nil
	}

	supplements, err := pgx.CollectRows(rows, scanSupplement)
	if err != nil {
		q.logStoreError(op, err)
		return nil
	}

	for i := range supplements {
		supplements[i].Images = absoluteImageURLs(q.assetLink, supplements[i].Images)
	}

	return supplements
}

func scanSupplement(row pgx.CollectableRow) (Supplement, error) {
	var s Supplement
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.OutOfStock, &s.Date, &s.Images, &s.Tags)
	return s, err
}

func absoluteImageURLs(assetLink string, names []string) []string {
	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = assetLink + name
	}
	return urls
}

func (q *Queries) CreateSupplement(ctx context.Context, arg CreateSupplementParams) WriteResult {
	err := q.runInTx(ctx, func(tx pgx.Tx) error {
		var parentID int64
		if err := tx.QueryRow(ctx, insertSupplementSQL, arg.Name, arg.Description).Scan(&parentID); err != nil {
			return err
		}

		for _, image := range arg.Images {
			if _, err := tx.Exec(ctx, insertImageSQL, image, parentID); err != nil {
				return err
			}
		}
		for _, tagID := range arg.Tags {
			if _, err := tx.Exec(ctx, insertTagSQL, tagID, parentID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		q.logStoreError("add supplement", err)
		return WriteNotModified
	}

	return WriteSuccess
}

func (q *Queries) UpdateSupplement(ctx context.Context, arg UpdateSupplementParams) WriteResult {
	result := WriteNotModified
	err := q.runInTx(ctx, func(tx pgx.Tx) error {
		updated, err := tx.Exec(ctx, updateSupplementSQL, arg.Name, arg.Description, arg.OutOfStock, arg.ID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, deleteImagesSQL, arg.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteTagsSQL, arg.ID); err != nil {
			return err
		}

		// Child rows only belong to an existing parent; an unknown id
		// matched nothing above and must not leave orphans behind.
		if updated.RowsAffected() == 0 {
			return nil
		}

		for _, image := range arg.Images {
			if _, err := tx.Exec(ctx, insertImageSQL, image, arg.ID); err != nil {
				return err
			}
		}
		for _, tagID := range arg.Tags {
			if _, err := tx.Exec(ctx, insertTagSQL, tagID, arg.ID); err != nil {
				return err
			}
		}

		result = WriteSuccess
		return nil
	})
	if err != nil {
		q.logStoreError("edit supplement", err)
		return WriteNotModified
	}

	return result
}

func (q *Queries) DeleteSupplement(ctx context.Context, id int64) WriteResult {
	var affected int64
	err := q.runInTx(ctx, func(tx pgx.Tx) error {
		statements := []string{
			deleteImagesSQL,
			deleteTagsSQL,
			deleteProductLinksSQL,
			deleteSupplementSQL,
		}
		for _, sql := range statements {
			tag, err := tx.Exec(ctx, sql, id)
			if err != nil {
				return err
			}
			affected += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		q.logStoreError("delete supplement", err)
		return WriteNotModified
	}

	if affected == 0 {
		return WriteNotModified
	}
	return WriteSuccess
}

// runInTx is the single begin/commit/rollback boundary for every
// multi-statement write.
func (q *Queries) runInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := q.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// logStoreError keeps store failures inside the mapper: data and
// integrity violations (SQLSTATE classes 22 and 23) log at error
// severity, everything else at warn.
func (q *Queries) logStoreError(op string, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "22", "23":
			q.logger.Error(op+" mapper", "error", err, "code", pgErr.Code)
			return
		}
	}
	q.logger.Warn(op+" mapper", "error", err)
}
