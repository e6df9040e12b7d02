package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"marketplace-analytics/internal/model"
)

// Rows is the cursor shape shared by database/sql and pgx.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// QueryFunc runs query and passes the open cursor to each. The cursor is
// closed when QueryFunc returns.
type QueryFunc func(ctx context.Context, query string, each func(Rows) error) error

// PgxQuerier is satisfied by *pgxpool.Pool and *pgx.Conn.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type sqlRepository struct {
	query QueryFunc
}

// NewSQLRepository creates a DataSource over a database/sql handle (MySQL).
func NewSQLRepository(db *sql.DB) DataSource {
	return &sqlRepository{query: func(ctx context.Context, query string, each func(Rows) error) error {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		return each(rows)
	}}
}

// NewPostgresRepository creates a DataSource over a pgx pool.
func NewPostgresRepository(pool PgxQuerier) DataSource {
	return &sqlRepository{query: func(ctx context.Context, query string, each func(Rows) error) error {
		rows, err := pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		return each(rows)
	}}
}

func (r *sqlRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.query(ctx, selectUsersQuery, func(rows Rows) error {
		for rows.Next() {
			var (
				u         model.User
				name      sql.NullString
				email     sql.NullString
				lastLogin sql.NullTime
			)
			if err := rows.Scan(&u.ID, &name, &email, &u.CreatedAt, &lastLogin, &u.Active); err != nil {
				return err
			}
			u.Name, u.Email = name.String, email.String
			u.CreatedAt = u.CreatedAt.UTC()
			if lastLogin.Valid {
				t := lastLogin.Time.UTC()
				u.LastLoginAt = &t
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

func (r *sqlRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := r.query(ctx, selectProductsQuery, func(rows Rows) error {
		for rows.Next() {
			var (
				p        model.Product
				name     sql.NullString
				discount sql.NullFloat64
			)
			if err := rows.Scan(&p.ID, &name, &p.Category, &p.Price, &discount, &p.Stock, &p.SalesCount, &p.Rating); err != nil {
				return err
			}
			p.Name = name.String
			if discount.Valid {
				d := discount.Float64
				p.DiscountPrice = &d
			}
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

func (r *sqlRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.query(ctx, selectOrdersQuery, func(rows Rows) error {
		for rows.Next() {
			var (
				o                     model.Order
				status                string
				payment, shipping     sql.NullString
				city, region, country sql.NullString
			)
			if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &status, &payment, &shipping, &city, &region, &country, &o.CreatedAt); err != nil {
				return err
			}
			o.Status = model.OrderStatus(status)
			o.PaymentMethod, o.ShippingMethod = payment.String, shipping.String
			o.ShippingAddress = address(city.String, region.String, country.String)
			o.CreatedAt = o.CreatedAt.UTC()
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	items := make(map[string][]model.LineItem)
	err = r.query(ctx, selectOrderItemsQuery, func(rows Rows) error {
		for rows.Next() {
			var (
				orderID string
				li      model.LineItem
				name    sql.NullString
			)
			if err := rows.Scan(&orderID, &li.ProductID, &name, &li.UnitPrice, &li.Quantity); err != nil {
				return err
			}
			li.Name = name.String
			items[orderID] = append(items[orderID], li)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}

	attachItems(orders, items)
	return orders, nil
}
