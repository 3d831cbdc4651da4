package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
	Register("orders", SeedOrders)
}

// SeedUsers creates the demo login. Re-running is a no-op thanks to the
// upsert on username.
func SeedUsers(ctx context.Context, db *mongo.Database) error {
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"username": "admin"},
		bson.M{"$setOnInsert": bson.M{"username": "admin", "password": hash}},
		options.Update().SetUpsert(true),
	)
	return err
}

// SeedProducts loads a small demo catalog keyed by productId.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	products := []models.Product{
		{ProductID: "P-1001", Name: "Steel Bolts 10mm", Price: 4.5, Stock: 1200},
		{ProductID: "P-1002", Name: "Copper Wire 5m", Price: 12.0, Stock: 300},
		{ProductID: "P-1003", Name: "Hydraulic Pump", Price: 420.0, Stock: 18},
	}

	col := db.Collection("products")
	for _, p := range products {
		_, err := col.UpdateOne(ctx,
			bson.M{"productId": p.ProductID},
			bson.M{"$setOnInsert": p},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedOrders inserts a handful of shipments across the delivery statuses
// so the dashboard charts have something to show. Skipped when the
// collection already has data.
func SeedOrders(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("orders")

	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	orders := []any{
		models.Order{
			Product: "Steel Bolts 10mm", ProductID: "P-1001",
			Shipper: "BlueDart", Customer: "Acme Fabrication", CustomerID: "C-77",
			House: "12", City: "Mumbai", State: "Maharashtra", Pincode: "400001", Country: "India",
			DeliveryStatus: models.StatusDelivered, Quantity: "200", Date: now.AddDate(0, 0, -3),
		},
		models.Order{
			Product: "Copper Wire 5m", ProductID: "P-1002",
			Shipper: "Delhivery", Customer: "Volt Systems", CustomerID: "C-12",
			House: "8B", City: "Pune", State: "Maharashtra", Pincode: "411001", Country: "India",
			DeliveryStatus: models.StatusInTransit, Quantity: "40", Date: now.AddDate(0, 0, -1),
		},
		models.Order{
			Product: "Hydraulic Pump", ProductID: "P-1003",
			Shipper: "BlueDart", Customer: "Acme Fabrication", CustomerID: "C-77",
			House: "12", City: "Delhi", State: "Delhi", Pincode: "110001", Country: "India",
			DeliveryStatus: models.StatusPending, Quantity: "2", Date: now,
		},
	}

	_, err = col.InsertMany(ctx, orders)
	return err
}
