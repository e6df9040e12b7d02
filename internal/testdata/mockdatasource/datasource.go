package mockdatasource

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/repository"
)

type DataSource struct {
	mock.Mock
}

// Interface compliance check
var _ repository.DataSource = &DataSource{}

func (m *DataSource) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DataSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DataSource) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
