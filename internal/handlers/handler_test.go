package handlers_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
	"github.com/vitalmarket/supplements-service/internal/service"
)

const supplementsURL = "/api/supplements"

type MockService struct {
	mock.Mock
}

func (m *MockService) GetSupplement(ctx context.Context, id int64) service.Response {
	args := m.Called(ctx, id)
	return args.Get(0).(service.Response)
}

func (m *MockService) GetSupplementsByIDs(ctx context.Context, ids []int64) service.Response {
	args := m.Called(ctx, ids)
	return args.Get(0).(service.Response)
}

func (m *MockService) GetSupplements(ctx context.Context, from, limit int32) service.Response {
	args := m.Called(ctx, from, limit)
	return args.Get(0).(service.Response)
}

func (m *MockService) SearchSupplements(ctx context.Context, term string) service.Response {
	args := m.Called(ctx, term)
	return args.Get(0).(service.Response)
}

func (m *MockService) AddSupplement(ctx context.Context, name, description string, images []string, tags []int64) service.Response {
	args := m.Called(ctx, name, description, images, tags)
	return args.Get(0).(service.Response)
}

func (m *MockService) EditSupplement(ctx context.Context, id int64, name, description string, outOfStock bool, images []string, tags []int64) service.Response {
	args := m.Called(ctx, id, name, description, outOfStock, images, tags)
	return args.Get(0).(service.Response)
}

func (m *MockService) DeleteSupplement(ctx context.Context, id int64) service.Response {
	args := m.Called(ctx, id)
	return args.Get(0).(service.Response)
}

func successResponse(data []service.SupplementView) service.Response {
	return service.Response{Status: http.StatusOK, Message: "Success", Data: data}
}

func noContentResponse() service.Response {
	return service.Response{Status: http.StatusNoContent, Message: "No content"}
}

func notModifiedResponse() service.Response {
	return service.Response{Status: http.StatusNotModified, Message: "Not modified"}
}
