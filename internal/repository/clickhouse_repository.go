package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace-analytics/internal/model"
)

// ClickHouseConn is the subset of clickhouse.Conn the repository uses.
type ClickHouseConn interface {
	Select(ctx context.Context, dest any, query string, args ...any) error
}

type userRow struct {
	ID          string     `ch:"id"`
	Name        string     `ch:"name"`
	Email       string     `ch:"email"`
	CreatedAt   time.Time  `ch:"created_at"`
	LastLoginAt *time.Time `ch:"last_login_at"`
	IsActive    bool       `ch:"is_active"`
}

type productRow struct {
	ID            string   `ch:"id"`
	Name          string   `ch:"name"`
	Category      string   `ch:"category"`
	Price         float64  `ch:"price"`
	DiscountPrice *float64 `ch:"discount_price"`
	Stock         int32    `ch:"stock"`
	SalesCount    int32    `ch:"sales_count"`
	Rating        float64  `ch:"rating"`
}

type orderRow struct {
	ID             string    `ch:"id"`
	UserID         string    `ch:"user_id"`
	Total          float64   `ch:"total"`
	Status         string    `ch:"status"`
	PaymentMethod  string    `ch:"payment_method"`
	ShippingMethod string    `ch:"shipping_method"`
	City           string    `ch:"city"`
	Region         string    `ch:"region"`
	Country        string    `ch:"country"`
	CreatedAt      time.Time `ch:"created_at"`
}

type orderItemRow struct {
	OrderID   string  `ch:"order_id"`
	ProductID string  `ch:"product_id"`
	Name      string  `ch:"name"`
	Price     float64 `ch:"price"`
	Quantity  uint32  `ch:"quantity"`
}

type clickhouseRepository struct {
	conn ClickHouseConn
}

// NewClickHouseRepository creates a DataSource backed by ClickHouse.
func NewClickHouseRepository(conn ClickHouseConn) DataSource {
	return &clickhouseRepository{conn: conn}
}

func (r *clickhouseRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := r.conn.Select(ctx, &rows, selectUsersQuery); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, model.User{
			ID:          row.ID,
			Name:        row.Name,
			Email:       row.Email,
			CreatedAt:   row.CreatedAt.UTC(),
			LastLoginAt: utcPtr(row.LastLoginAt),
			Active:      row.IsActive,
		})
	}
	return users, nil
}

func (r *clickhouseRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	if err := r.conn.Select(ctx, &rows, selectProductsQuery); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, model.Product{
			ID:            row.ID,
			Name:          row.Name,
			Category:      row.Category,
			Price:         row.Price,
			DiscountPrice: row.DiscountPrice,
			Stock:         int(row.Stock),
			SalesCount:    int(row.SalesCount),
			Rating:        row.Rating,
		})
	}
	return products, nil
}

func (r *clickhouseRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	var rows []orderRow
	if err := r.conn.Select(ctx, &rows, selectOrdersQuery); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	var itemRows []orderItemRow
	if err := r.conn.Select(ctx, &itemRows, selectOrderItemsQuery); err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}

	items := make(map[string][]model.LineItem)
	for _, it := range itemRows {
		items[it.OrderID] = append(items[it.OrderID], model.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  int(it.Quantity),
		})
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, model.Order{
			ID:              row.ID,
			UserID:          row.UserID,
			Total:           row.Total,
			Status:          model.OrderStatus(row.Status),
			PaymentMethod:   row.PaymentMethod,
			ShippingMethod:  row.ShippingMethod,
			ShippingAddress: address(row.City, row.Region, row.Country),
			CreatedAt:       row.CreatedAt.UTC(),
		})
	}
	attachItems(orders, items)
	return orders, nil
}
