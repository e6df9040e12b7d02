package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-analytics/internal/model"
)

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()

	require.Equal(t, oid.Hex(), idString(oid))
	require.Equal(t, "u-1", idString("u-1"))
	require.Equal(t, "42", idString(int32(42)))
	require.Equal(t, "", idString(nil))
}

func TestOrderDocument_DecodesMixedIdentifiers(t *testing.T) {
	oid := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	created := time.Date(2025, 4, 1, 8, 30, 0, 0, time.UTC)

	raw, err := bson.Marshal(bson.M{
		"_id":    oid,
		"userId": userID,
		"items": bson.A{
			bson.M{"productId": "p1", "name": "Mug", "price": 12.0, "quantity": int32(2)},
		},
		"total":           int32(24),
		"status":          "shipped",
		"paymentMethod":   "paypal",
		"shippingAddress": bson.M{"city": "Porto", "country": "PT"},
		"createdAt":       created,
	})
	require.NoError(t, err)

	var doc orderDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	order := doc.toModel()

	require.Equal(t, oid.Hex(), order.ID)
	require.Equal(t, userID.Hex(), order.UserID)
	require.Equal(t, 24.0, order.Total)
	require.Equal(t, model.OrderShipped, order.Status)
	require.Equal(t, []model.LineItem{{ProductID: "p1", Name: "Mug", UnitPrice: 12, Quantity: 2}}, order.Items)
	require.Equal(t, "PT", order.Region())
	require.True(t, created.Equal(order.CreatedAt))
}

func TestUserDocument_ToModel(t *testing.T) {
	login := time.Date(2025, 1, 2, 0, 0, 0, 0, time.FixedZone("CET", 3600))
	doc := userDocument{ID: "u1", CreatedAt: login.Add(-time.Hour), LastLoginAt: &login, IsActive: true}

	u := doc.toModel()
	require.Equal(t, "u1", u.ID)
	require.Equal(t, time.UTC, u.LastLoginAt.Location())
	require.True(t, u.Active)
}
