package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketplace-analytics/internal/model"
)

func TestFileRepository_MissingFilesAreEmpty(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)

	orders, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestFileRepository_ReadsWrittenCollections(t *testing.T) {
	dir := t.TempDir()
	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	orders := []model.Order{{
		ID:        "o1",
		UserID:    "u1",
		Items:     []model.LineItem{{ProductID: "p1", UnitPrice: 12.5, Quantity: 2}},
		Total:     25,
		Status:    model.OrderShipped,
		CreatedAt: created,
	}}
	require.NoError(t, WriteCollection(filepath.Join(dir, OrdersFile), orders))

	got, err := NewFileRepository(dir).ListOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, orders, got)
}

func TestFileRepository_RereadsOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	path := filepath.Join(dir, ProductsFile)

	require.NoError(t, WriteCollection(path, []model.Product{{ID: "p1"}}))
	first, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, WriteCollection(path, []model.Product{{ID: "p1"}, {ID: "p2"}}))
	second, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)
}

func TestFileRepository_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(`{"id":`), 0o644))

	_, err := NewFileRepository(dir).ListUsers(context.Background())
	require.ErrorContains(t, err, "decode users.json")
}

func TestFileRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileRepository(t.TempDir()).ListUsers(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
