package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery status values stored on the wire. The strings are part of the
// client contract (chart labels key on them), including the space in
// "In Transit".
const (
	StatusPending   = "Pending"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"
)

// DeliveryStatuses lists every known status, in chart display order.
var DeliveryStatuses = []string{StatusPending, StatusInTransit, StatusDelivered}

// Order is a shipment record in the "orders" collection. Fields are stored
// verbatim from the submission; productId and customerId are opaque strings
// with no foreign-key enforcement against products or users.
//
// Quantity is a string (the entry form posts it as one); the analytics
// layer parses it when summing.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Product        string             `bson:"product" json:"product"`
	ProductID      string             `bson:"productId" json:"productId"`
	Shipper        string             `bson:"shipper" json:"shipper"`
	Customer       string             `bson:"customer" json:"customer"`
	CustomerID     string             `bson:"customerId" json:"customerId"`
	House          string             `bson:"house" json:"house"`
	City           string             `bson:"city" json:"city"`
	State          string             `bson:"state" json:"state"`
	Pincode        string             `bson:"pincode" json:"pincode"`
	Country        string             `bson:"country" json:"country"`
	DeliveryStatus string             `bson:"deliveryStatus" json:"deliveryStatus"`
	Quantity       string             `bson:"quantity" json:"quantity"`
	Date           time.Time          `bson:"date" json:"date"`
}
