package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
	OrderRefunded,
}

// LineItem is a single product line of an order.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Address is the shipping destination of an order.
type Address struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// Order is a placed order. Total is trusted as stored.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []LineItem  `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	ShippingMethod  string      `json:"shippingMethod,omitempty"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// IsRevenue reports whether the order counts toward revenue figures.
// Cancelled and refunded orders do not.
func (o Order) IsRevenue() bool {
	return o.Status != OrderCancelled && o.Status != OrderRefunded
}

// ItemCount is the number of units across all line items.
func (o Order) ItemCount() int {
	n := 0
	for _, li := range o.Items {
		n += li.Quantity
	}
	return n
}

// Region returns the shipping region, falling back to the country.
func (o Order) Region() string {
	if o.ShippingAddress == nil {
		return ""
	}
	if o.ShippingAddress.Region != "" {
		return o.ShippingAddress.Region
	}
	return o.ShippingAddress.Country
}

// FieldValue exposes order attributes by name to the aggregation reducers.
// "revenue" is only present on revenue-bearing orders.
func (o Order) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return o.ID, true
	case "userId":
		return o.UserID, true
	case "total":
		return o.Total, true
	case "revenue":
		if !o.IsRevenue() {
			return nil, false
		}
		return o.Total, true
	case "status":
		return string(o.Status), true
	case "itemCount":
		return o.ItemCount(), true
	case "paymentMethod":
		return o.PaymentMethod, o.PaymentMethod != ""
	case "shippingMethod":
		return o.ShippingMethod, o.ShippingMethod != ""
	case "region":
		r := o.Region()
		return r, r != ""
	default:
		return nil, false
	}
}
