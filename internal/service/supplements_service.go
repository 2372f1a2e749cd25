package service

import (
	"context"
	"net/http"
	"time"

	"github.com/vitalmarket/supplements-service/internal/clients"
	"github.com/vitalmarket/supplements-service/internal/logs"
	"github.com/vitalmarket/supplements-service/internal/repository"
)

const (
	msgSuccess     = "Success"
	msgNoContent   = "No content"
	msgNotModified = "Not modified"
	msgBadRequest  = "Bad request"
	msgBadGateway  = "Bad gateway"
)

// Response is the envelope every operation answers with. Data is only
// present on 200.
type Response struct {
	Status  int              `json:"status"`
	Message string           `json:"message"`
	Data    []SupplementView `json:"data,omitempty"`
}

// SupplementView is one supplement flattened for the wire: absolute
// image URLs and tag ids replaced by the tag objects owned by the tags
// service.
type SupplementView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OutOfStock  bool          `json:"out_of_stock"`
	DateAdded   time.Time     `json:"date_added"`
	Images      []string      `json:"images"`
	Tags        []clients.Tag `json:"tags"`
}

// BadRequest is the envelope handlers answer with when required
// parameters are missing or malformed.
func BadRequest() Response {
	return Response{Status: http.StatusBadRequest, Message: msgBadRequest}
}

type TagFetcher interface {
	FetchTags(ctx context.Context, ids []int64) ([]clients.Tag, error)
}

type CacheEvictor interface {
	EvictCache(ctx context.Context) error
}

type SupplementsService struct {
	queries  repository.Querier
	tags     TagFetcher
	products CacheEvictor
	logger   logs.Logger
}

func NewSupplementsService(queries repository.Querier, tags TagFetcher, products CacheEvictor, logger logs.Logger) *SupplementsService {
	return &SupplementsService{
		queries:  queries,
		tags:     tags,
		products: products,
		logger:   logger,
	}
}

func (s *SupplementsService) GetSupplement(ctx context.Context, id int64) Response {
	records := s.queries.GetSupplement(ctx, id)
	return s.readResponse(ctx, "get supplement", records)
}

func (s *SupplementsService) GetSupplementsByIDs(ctx context.Context, ids []int64) Response {
	records := s.queries.GetSupplementsByIDs(ctx, ids)
	return s.readResponse(ctx, "get supplements by ids", records)
}

func (s *SupplementsService) GetSupplements(ctx context.Context, from, limit int32) Response {
	records := s.queries.ListSupplementsPaginated(ctx, repository.ListSupplementsPaginatedParams{
		From:  from,
		Limit: limit,
	})
	return s.readResponse(ctx, "get supplements", records)
}

func (s *SupplementsService) SearchSupplements(ctx context.Context, term string) Response {
	records := s.queries.SearchSupplements(ctx, term)
	return s.readResponse(ctx, "search supplements", records)
}

func (s *SupplementsService) AddSupplement(ctx context.Context, name, description string, images []string, tags []int64) Response {
	result := s.queries.CreateSupplement(ctx, repository.CreateSupplementParams{
		Name:        name,
		Description: description,
		Images:      images,
		Tags:        tags,
	})
	return writeResponse(result)
}

func (s *SupplementsService) EditSupplement(ctx context.Context, id int64, name, description string, outOfStock bool, images []string, tags []int64) Response {
	result := s.queries.UpdateSupplement(ctx, repository.UpdateSupplementParams{
		ID:          id,
		Name:        name,
		Description: description,
		OutOfStock:  outOfStock,
		Images:      images,
		Tags:        tags,
	})
	if result != repository.WriteSuccess {
		return writeResponse(result)
	}

	// The edit is committed at this point. A failed eviction leaves the
	// products service serving stale data until its TTL, which is
	// preferable to reporting the whole edit as failed.
	if err := s.products.EvictCache(ctx); err != nil {
		s.logger.Warn("edit supplement: products cache eviction failed", "error", err)
	}

	return writeResponse(result)
}

func (s *SupplementsService) DeleteSupplement(ctx context.Context, id int64) Response {
	result := s.queries.DeleteSupplement(ctx, id)
	return writeResponse(result)
}

func (s *SupplementsService) readResponse(ctx context.Context, op string, records []repository.Supplement) Response {
	views, err := s.hydrateTags(ctx, records)
	if err != nil {
		s.logger.Error(op+" service: tag hydration failed", "error", err)
		return Response{Status: http.StatusBadGateway, Message: msgBadGateway}
	}

	if len(views) == 0 {
		return Response{Status: http.StatusNoContent, Message: msgNoContent}
	}

	return Response{Status: http.StatusOK, Message: msgSuccess, Data: views}
}

// hydrateTags flattens mapper records in store order and swaps each
// record's tag-id list for the tag objects fetched from the tags
// service. A fetch failure fails the whole read; partial results with
// raw tag ids are never exposed.
func (s *SupplementsService) hydrateTags(ctx context.Context, records []repository.Supplement) ([]SupplementView, error) {
	views := make([]SupplementView, 0, len(records))
	for _, record := range records {
		view := newSupplementView(record)
		if len(record.Tags) > 0 {
			tags, err := s.tags.FetchTags(ctx, record.Tags)
			if err != nil {
				return nil, err
			}
			view.Tags = tags
		}
		views = append(views, view)
	}
	return views, nil
}

func newSupplementView(record repository.Supplement) SupplementView {
	return SupplementView{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		OutOfStock:  record.OutOfStock,
		DateAdded:   record.Date.Time,
		Images:      record.Images,
		Tags:        []clients.Tag{},
	}
}

func writeResponse(result repository.WriteResult) Response {
	if result == repository.WriteSuccess {
		return Response{Status: http.StatusOK, Message: msgSuccess}
	}
	return Response{Status: http.StatusNotModified, Message: msgNotModified}
}
