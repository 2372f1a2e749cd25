package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vitalmarket/supplements-service/internal/clients"
	"github.com/vitalmarket/supplements-service/internal/logs"
	"github.com/vitalmarket/supplements-service/internal/repository"
	"github.com/vitalmarket/supplements-service/internal/service"
)

type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) GetSupplement(ctx context.Context, id int64) []repository.Supplement {
	args := m.Called(ctx, id)
	return args.Get(0).([]repository.Supplement)
}

func (m *MockQuerier) GetSupplementsByIDs(ctx context.Context, ids []int64) []repository.Supplement {
	args := m.Called(ctx, ids)
	return args.Get(0).([]repository.Supplement)
}

func (m *MockQuerier) ListSupplementsPaginated(ctx context.Context, arg repository.ListSupplementsPaginatedParams) []repository.Supplement {
	args := m.Called(ctx, arg)
	return args.Get(0).([]repository.Supplement)
}

func (m *MockQuerier) SearchSupplements(ctx context.Context, term string) []repository.Supplement {
	args := m.Called(ctx, term)
	return args.Get(0).([]repository.Supplement)
}

func (m *MockQuerier) CreateSupplement(ctx context.Context, arg repository.CreateSupplementParams) repository.WriteResult {
	args := m.Called(ctx, arg)
	return args.Get(0).(repository.WriteResult)
}

func (m *MockQuerier) UpdateSupplement(ctx context.Context, arg repository.UpdateSupplementParams) repository.WriteResult {
	args := m.Called(ctx, arg)
	return args.Get(0).(repository.WriteResult)
}

func (m *MockQuerier) DeleteSupplement(ctx context.Context, id int64) repository.WriteResult {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.WriteResult)
}

type MockTagFetcher struct {
	mock.Mock
}

func (m *MockTagFetcher) FetchTags(ctx context.Context, ids []int64) ([]clients.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.Tag), args.Error(1)
}

type MockCacheEvictor struct {
	mock.Mock
}

func (m *MockCacheEvictor) EvictCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService() (*service.SupplementsService, *MockQuerier, *MockTagFetcher, *MockCacheEvictor) {
	queries := new(MockQuerier)
	tags := new(MockTagFetcher)
	products := new(MockCacheEvictor)
	svc := service.NewSupplementsService(queries, tags, products, logs.NewSlogLogger())
	return svc, queries, tags, products
}

func storedSupplement(id int64, tags []int64) repository.Supplement {
	return repository.Supplement{
		ID:          id,
		Name:        "Omega 3",
		Description: "Fish oil capsules",
		OutOfStock:  false,
		Date:        pgtype.Timestamptz{Time: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), Valid: true},
		Images:      []string{"https://cdn.vitalmarket.test/images/omega3.jpg"},
		Tags:        tags,
	}
}

func TestGetSupplement(t *testing.T) {
	t.Run("Success Hydrates Tags", func(t *testing.T) {
		svc, queries, tags, _ := newTestService()

		queries.On("GetSupplement", mock.Anything, int64(3)).
			Return([]repository.Supplement{storedSupplement(3, []int64{1, 2})}).Once()
		fetched := []clients.Tag{
			{ID: 1, Name: "vitamins", Type: "category"},
			{ID: 2, Name: "heart", Type: "benefit"},
		}
		tags.On("FetchTags", mock.Anything, []int64{1, 2}).Return(fetched, nil).Once()

		resp := svc.GetSupplement(context.Background(), 3)

		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "Success", resp.Message)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(3), resp.Data[0].ID)
		assert.Equal(t, fetched, resp.Data[0].Tags)
		queries.AssertExpectations(t)
		tags.AssertExpectations(t)
	})

	t.Run("No Records Is No Content", func(t *testing.T) {
		svc, queries, tags, _ := newTestService()

		queries.On("GetSupplement", mock.Anything, int64(99)).
			Return([]repository.Supplement{}).Once()

		resp := svc.GetSupplement(context.Background(), 99)

		assert.Equal(t, http.StatusNoContent, resp.Status)
		assert.Equal(t, "No content", resp.Message)
		assert.Empty(t, resp.Data)
		tags.AssertNotCalled(t, "FetchTags")
	})

	t.Run("Tag Fetch Failure Is Bad Gateway", func(t *testing.T) {
		svc, queries, tags, _ := newTestService()

		queries.On("GetSupplement", mock.Anything, int64(3)).
			Return([]repository.Supplement{storedSupplement(3, []int64{1})}).Once()
		tags.On("FetchTags", mock.Anything, []int64{1}).
			Return(nil, errors.New("tags service unavailable")).Once()

		resp := svc.GetSupplement(context.Background(), 3)

		assert.Equal(t, http.StatusBadGateway, resp.Status)
		assert.Equal(t, "Bad gateway", resp.Message)
		assert.Empty(t, resp.Data)
	})

	t.Run("No Tags Skips Fetch", func(t *testing.T) {
		svc, queries, tags, _ := newTestService()

		queries.On("GetSupplement", mock.Anything, int64(3)).
			Return([]repository.Supplement{storedSupplement(3, nil)}).Once()

		resp := svc.GetSupplement(context.Background(), 3)

		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Empty(t, resp.Data[0].Tags)
		tags.AssertNotCalled(t, "FetchTags")
	})
}

func TestGetSupplements(t *testing.T) {
	svc, queries, tags, _ := newTestService()

	queries.On("ListSupplementsPaginated", mock.Anything, repository.ListSupplementsPaginatedParams{From: 0, Limit: 2}).
		Return([]repository.Supplement{storedSupplement(1, nil), storedSupplement(2, nil)}).Once()

	resp := svc.GetSupplements(context.Background(), 0, 2)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.Data, 2)
	tags.AssertNotCalled(t, "FetchTags")
	queries.AssertExpectations(t)
}

func TestAddSupplement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, queries, _, products := newTestService()

		queries.On("CreateSupplement", mock.Anything, repository.CreateSupplementParams{
			Name:        "Zinc",
			Description: "Immune support",
			Images:      []string{"zinc.jpg"},
			Tags:        []int64{7},
		}).Return(repository.WriteSuccess).Once()

		resp := svc.AddSupplement(context.Background(), "Zinc", "Immune support", []string{"zinc.jpg"}, []int64{7})

		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "Success", resp.Message)
		products.AssertNotCalled(t, "EvictCache")
	})

	t.Run("Store Rejection Is Not Modified", func(t *testing.T) {
		svc, queries, _, _ := newTestService()

		queries.On("CreateSupplement", mock.Anything, mock.Anything).
			Return(repository.WriteNotModified).Once()

		resp := svc.AddSupplement(context.Background(), "Zinc", "Immune support", nil, nil)

		assert.Equal(t, http.StatusNotModified, resp.Status)
		assert.Equal(t, "Not modified", resp.Message)
	})
}

func TestEditSupplement(t *testing.T) {
	params := repository.UpdateSupplementParams{
		ID:          5,
		Name:        "Magnesium",
		Description: "Sleep support",
		OutOfStock:  true,
		Images:      []string{"mag.jpg"},
		Tags:        []int64{3},
	}

	t.Run("Success Evicts Products Cache", func(t *testing.T) {
		svc, queries, _, products := newTestService()

		queries.On("UpdateSupplement", mock.Anything, params).Return(repository.WriteSuccess).Once()
		products.On("EvictCache", mock.Anything).Return(nil).Once()

		resp := svc.EditSupplement(context.Background(), 5, "Magnesium", "Sleep support", true, []string{"mag.jpg"}, []int64{3})

		assert.Equal(t, http.StatusOK, resp.Status)
		products.AssertExpectations(t)
	})

	t.Run("Eviction Failure Still Succeeds", func(t *testing.T) {
		svc, queries, _, products := newTestService()

		queries.On("UpdateSupplement", mock.Anything, params).Return(repository.WriteSuccess).Once()
		products.On("EvictCache", mock.Anything).Return(errors.New("products service unavailable")).Once()

		resp := svc.EditSupplement(context.Background(), 5, "Magnesium", "Sleep support", true, []string{"mag.jpg"}, []int64{3})

		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "Success", resp.Message)
	})

	t.Run("Unknown ID Skips Eviction", func(t *testing.T) {
		svc, queries, _, products := newTestService()

		queries.On("UpdateSupplement", mock.Anything, params).Return(repository.WriteNotModified).Once()

		resp := svc.EditSupplement(context.Background(), 5, "Magnesium", "Sleep support", true, []string{"mag.jpg"}, []int64{3})

		assert.Equal(t, http.StatusNotModified, resp.Status)
		products.AssertNotCalled(t, "EvictCache")
	})
}

func TestDeleteSupplement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, queries, _, _ := newTestService()

		queries.On("DeleteSupplement", mock.Anything, int64(5)).
			Return(repository.WriteSuccess).Once()

		resp := svc.DeleteSupplement(context.Background(), 5)

		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("Unknown ID Is Not Modified", func(t *testing.T) {
		svc, queries, _, _ := newTestService()

		queries.On("DeleteSupplement", mock.Anything, int64(5)).
			Return(repository.WriteNotModified).Once()

		resp := svc.DeleteSupplement(context.Background(), 5)

		assert.Equal(t, http.StatusNotModified, resp.Status)
	})
}
