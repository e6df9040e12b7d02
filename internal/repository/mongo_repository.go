package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-analytics/internal/model"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)

// Identifiers may be stored as ObjectIDs or plain strings, so they are
// decoded loosely and normalised by idString.
type userDocument struct {
	ID          any        `bson:"_id"`
	Name        string     `bson:"name"`
	Email       string     `bson:"email"`
	CreatedAt   time.Time  `bson:"createdAt"`
	LastLoginAt *time.Time `bson:"lastLoginAt,omitempty"`
	IsActive    bool       `bson:"isActive"`
}

type productDocument struct {
	ID            any      `bson:"_id"`
	Name          string   `bson:"name"`
	Category      string   `bson:"category"`
	Price         float64  `bson:"price"`
	DiscountPrice *float64 `bson:"discountPrice,omitempty"`
	Stock         int      `bson:"stock"`
	SalesCount    int      `bson:"salesCount"`
	Rating        float64  `bson:"rating"`
}

type lineItemDocument struct {
	ProductID any     `bson:"productId"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type addressDocument struct {
	City    string `bson:"city"`
	Region  string `bson:"region"`
	Country string `bson:"country"`
}

type orderDocument struct {
	ID              any                `bson:"_id"`
	UserID          any                `bson:"userId"`
	Items           []lineItemDocument `bson:"items"`
	Total           float64            `bson:"total"`
	Status          string             `bson:"status"`
	PaymentMethod   string             `bson:"paymentMethod"`
	ShippingMethod  string             `bson:"shippingMethod"`
	ShippingAddress *addressDocument   `bson:"shippingAddress,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

type mongoRepository struct {
	db *mongo.Database
}

// NewMongoRepository creates a DataSource reading the users, products and
// orders collections of db.
func NewMongoRepository(db *mongo.Database) DataSource {
	return &mongoRepository{db: db}
}

func (r *mongoRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var docs []userDocument
	if err := r.findAll(ctx, UsersCollection, "createdAt", &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (r *mongoRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var docs []productDocument
	if err := r.findAll(ctx, ProductsCollection, "_id", &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}

func (r *mongoRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	var docs []orderDocument
	if err := r.findAll(ctx, OrdersCollection, "createdAt", &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]model.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toModel())
	}
	return orders, nil
}

func (r *mongoRepository) findAll(ctx context.Context, collection, sortKey string, out any) error {
	opts := options.Find().SetSort(bson.M{sortKey: 1})
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:          idString(d.ID),
		Name:        d.Name,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt.UTC(),
		LastLoginAt: utcPtr(d.LastLoginAt),
		Active:      d.IsActive,
	}
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:            idString(d.ID),
		Name:          d.Name,
		Category:      d.Category,
		Price:         d.Price,
		DiscountPrice: d.DiscountPrice,
		Stock:         d.Stock,
		SalesCount:    d.SalesCount,
		Rating:        d.Rating,
	}
}

func (d orderDocument) toModel() model.Order {
	o := model.Order{
		ID:             idString(d.ID),
		UserID:         idString(d.UserID),
		Items:          make([]model.LineItem, 0, len(d.Items)),
		Total:          d.Total,
		Status:         model.OrderStatus(d.Status),
		PaymentMethod:  d.PaymentMethod,
		ShippingMethod: d.ShippingMethod,
		CreatedAt:      d.CreatedAt.UTC(),
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, model.LineItem{
			ProductID: idString(it.ProductID),
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}
	if a := d.ShippingAddress; a != nil {
		o.ShippingAddress = &model.Address{City: a.City, Region: a.Region, Country: a.Country}
	}
	return o
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
