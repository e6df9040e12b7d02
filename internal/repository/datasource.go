package repository

import (
	"context"

	"marketplace-analytics/internal/model"
)

// DataSource reads full snapshots of the marketplace entities.
type DataSource interface {
	// ListUsers returns every registered customer.
	ListUsers(ctx context.Context) ([]model.User, error)

	// ListProducts returns the whole catalogue.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// ListOrders returns every order with its line items.
	ListOrders(ctx context.Context) ([]model.Order, error)
}
