package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"marketplace-analytics/internal/model"
)

const (
	UsersFile    = "users.json"
	ProductsFile = "products.json"
	OrdersFile   = "orders.json"
)

type fileRepository struct {
	dir string
}

// NewFileRepository creates a DataSource over JSON array files in dir. Files
// are read on every call, so edits are picked up without a restart.
func NewFileRepository(dir string) DataSource {
	return &fileRepository{dir: dir}
}

func (r *fileRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	return readCollection[model.User](ctx, filepath.Join(r.dir, UsersFile))
}

func (r *fileRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	return readCollection[model.Product](ctx, filepath.Join(r.dir, ProductsFile))
}

func (r *fileRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	return readCollection[model.Order](ctx, filepath.Join(r.dir, OrdersFile))
}

// readCollection decodes a JSON array file. A missing file is an empty
// collection.
func readCollection[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	out := []T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// WriteCollection stores items as an indented JSON array, replacing path.
func WriteCollection[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
