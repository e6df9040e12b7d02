// Package seed generates a synthetic marketplace dataset for local runs and
// load tests.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

// Options sizes the generated dataset. Records are spread over the Days
// before Now. Pin Now for reproducible output.
type Options struct {
	Users    int
	Products int
	Orders   int
	Days     int
	Now      time.Time
}

// Dataset is one generated snapshot.
type Dataset struct {
	Users    []model.User
	Products []model.Product
	Orders   []model.Order
}

var (
	categories      = []string{"electronics", "home", "kitchen", "fashion", "books", "toys"}
	paymentMethods  = []string{"card", "paypal", "bank_transfer", "cash_on_delivery"}
	shippingMethods = []string{"standard", "express", "pickup"}
	addresses       = []model.Address{
		{City: "Istanbul", Region: "Marmara", Country: "TR"},
		{City: "Ankara", Region: "Central Anatolia", Country: "TR"},
		{City: "Izmir", Region: "Aegean", Country: "TR"},
		{City: "Berlin", Region: "Berlin", Country: "DE"},
		{City: "Lyon", Region: "Auvergne-Rhone-Alpes", Country: "FR"},
	}
	// Weighted so most orders complete.
	statuses = []model.OrderStatus{
		model.OrderDelivered, model.OrderDelivered, model.OrderDelivered, model.OrderDelivered,
		model.OrderShipped, model.OrderShipped,
		model.OrderProcessing, model.OrderConfirmed, model.OrderPending,
		model.OrderCancelled, model.OrderRefunded,
	}
)

// Generate builds a dataset from rng. The same seed and options, Now
// included, always yield the same dataset, ids included. A zero Now means the
// current time, so timestamps then differ between runs.
func Generate(rng *rand.Rand, opts Options) (Dataset, error) {
	if opts.Users <= 0 || opts.Products <= 0 || opts.Days <= 0 {
		return Dataset{}, fmt.Errorf("users, products and days must be positive")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	now := opts.Now.UTC().Truncate(time.Second)
	span := time.Duration(opts.Days) * 24 * time.Hour

	newID := func(prefix string) (string, error) {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		return prefix + "_" + id.String(), nil
	}

	ds := Dataset{
		Users:    make([]model.User, 0, opts.Users),
		Products: make([]model.Product, 0, opts.Products),
		Orders:   make([]model.Order, 0, opts.Orders),
	}

	for i := 0; i < opts.Users; i++ {
		id, err := newID("usr")
		if err != nil {
			return Dataset{}, err
		}
		ds.Users = append(ds.Users, model.User{
			ID:        id,
			Name:      fmt.Sprintf("Customer %d", i+1),
			Email:     fmt.Sprintf("customer%d@example.com", i+1),
			CreatedAt: randomTime(rng, now.Add(-span), now),
			Active:    rng.Intn(10) < 8,
		})
	}

	for i := 0; i < opts.Products; i++ {
		id, err := newID("prd")
		if err != nil {
			return Dataset{}, err
		}
		price := analytics.Round(5+rng.Float64()*495, 2)
		p := model.Product{
			ID:         id,
			Name:       fmt.Sprintf("Product %d", i+1),
			Category:   categories[rng.Intn(len(categories))],
			Price:      price,
			Stock:      rng.Intn(200),
			SalesCount: rng.Intn(1000),
			Rating:     analytics.Round(1+rng.Float64()*4, 1),
		}
		if rng.Intn(10) < 3 {
			discount := analytics.Round(price*0.8, 2)
			p.DiscountPrice = &discount
		}
		if rng.Intn(10) == 0 {
			p.Stock = 0
		}
		ds.Products = append(ds.Products, p)
	}

	for i := 0; i < opts.Orders; i++ {
		id, err := newID("ord")
		if err != nil {
			return Dataset{}, err
		}
		user := ds.Users[rng.Intn(len(ds.Users))]

		items := make([]model.LineItem, 0, 4)
		subtotals := make([]float64, 0, 4)
		for n := 1 + rng.Intn(4); n > 0; n-- {
			p := ds.Products[rng.Intn(len(ds.Products))]
			li := model.LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.EffectivePrice(),
				Quantity:  1 + rng.Intn(3),
			}
			items = append(items, li)
			subtotals = append(subtotals, li.Subtotal())
		}

		o := model.Order{
			ID:             id,
			UserID:         user.ID,
			Items:          items,
			Total:          analytics.Money(subtotals...),
			Status:         statuses[rng.Intn(len(statuses))],
			PaymentMethod:  paymentMethods[rng.Intn(len(paymentMethods))],
			ShippingMethod: shippingMethods[rng.Intn(len(shippingMethods))],
			CreatedAt:      randomTime(rng, user.CreatedAt, now),
		}
		if rng.Intn(20) != 0 {
			addr := addresses[rng.Intn(len(addresses))]
			o.ShippingAddress = &addr
		}
		ds.Orders = append(ds.Orders, o)
	}

	return ds, nil
}

// randomTime returns a second-precision instant in [from, to).
func randomTime(rng *rand.Rand, from, to time.Time) time.Time {
	window := to.Sub(from)
	if window <= time.Second {
		return from.Truncate(time.Second)
	}
	offset := time.Duration(rng.Int63n(int64(window/time.Second))) * time.Second
	return from.Add(offset).Truncate(time.Second)
}
