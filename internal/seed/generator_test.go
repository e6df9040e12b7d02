package seed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-analytics/internal/analytics"
)

var testOpts = Options{
	Users:    25,
	Products: 10,
	Orders:   120,
	Days:     180,
	Now:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
}

func TestGenerate_Sizes(t *testing.T) {
	ds, err := Generate(rand.New(rand.NewSource(1)), testOpts)
	require.NoError(t, err)

	assert.Len(t, ds.Users, 25)
	assert.Len(t, ds.Products, 10)
	assert.Len(t, ds.Orders, 120)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(42)), testOpts)
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(42)), testOpts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_Consistency(t *testing.T) {
	ds, err := Generate(rand.New(rand.NewSource(7)), testOpts)
	require.NoError(t, err)

	users := make(map[string]time.Time, len(ds.Users))
	for _, u := range ds.Users {
		_, dup := users[u.ID]
		require.False(t, dup, "duplicate user id %s", u.ID)
		users[u.ID] = u.CreatedAt
	}
	products := make(map[string]bool, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ID] = true
		assert.LessOrEqual(t, p.EffectivePrice(), p.Price)
		assert.GreaterOrEqual(t, p.Rating, 1.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}

	for _, o := range ds.Orders {
		joined, ok := users[o.UserID]
		require.True(t, ok, "order %s references unknown user", o.ID)
		assert.False(t, o.CreatedAt.Before(joined), "order %s predates its customer", o.ID)
		assert.True(t, o.CreatedAt.Before(testOpts.Now), "order %s is in the future", o.ID)

		require.NotEmpty(t, o.Items)
		subtotals := make([]float64, 0, len(o.Items))
		for _, li := range o.Items {
			assert.True(t, products[li.ProductID])
			subtotals = append(subtotals, li.Subtotal())
		}
		assert.Equal(t, analytics.Money(subtotals...), o.Total)
	}
}

func TestGenerate_RejectsEmptyCatalogue(t *testing.T) {
	_, err := Generate(rand.New(rand.NewSource(1)), Options{Users: 3, Days: 10})
	assert.EqualError(t, err, "users, products and days must be positive")
}

func TestGenerate_ZeroNowUsesCurrentTime(t *testing.T) {
	opts := testOpts
	opts.Now = time.Time{}

	before := time.Now().Add(-time.Second)
	ds, err := Generate(rand.New(rand.NewSource(3)), opts)
	require.NoError(t, err)
	after := time.Now()

	for _, u := range ds.Users {
		assert.True(t, u.CreatedAt.After(before.Add(-time.Duration(opts.Days)*24*time.Hour)))
		assert.True(t, u.CreatedAt.Before(after))
	}
}
