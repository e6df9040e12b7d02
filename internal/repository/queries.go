package repository

import "marketplace-analytics/internal/model"

// Snapshot queries shared by the relational and columnar stores. Column names
// match the ch tags of the ClickHouse row types.
const (
	selectUsersQuery = `SELECT id, name, email, created_at, last_login_at, is_active
FROM users ORDER BY created_at, id`

	selectProductsQuery = `SELECT id, name, category, price, discount_price, stock, sales_count, rating
FROM products ORDER BY id`

	selectOrdersQuery = `SELECT id, user_id, total, status, payment_method, shipping_method, city, region, country, created_at
FROM orders ORDER BY created_at, id`

	selectOrderItemsQuery = `SELECT order_id, product_id, name, price, quantity
FROM order_items ORDER BY order_id, position`
)

// attachItems sets the line items of every order from items keyed by order
// id. Orders without items get an empty slice.
func attachItems(orders []model.Order, items map[string][]model.LineItem) {
	for i := range orders {
		if li, ok := items[orders[i].ID]; ok {
			orders[i].Items = li
		} else {
			orders[i].Items = []model.LineItem{}
		}
	}
}

func address(city, region, country string) *model.Address {
	if city == "" && region == "" && country == "" {
		return nil
	}
	return &model.Address{City: city, Region: region, Country: country}
}
