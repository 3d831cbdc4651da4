package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/config"
	"github.com/infernolabs/scmflow/database/seeders"
	"github.com/infernolabs/scmflow/pkg/database"
	"github.com/infernolabs/scmflow/pkg/storage"
)

// bootDB loads config and opens the MongoDB connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// scmflow db:ping
var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Verify the MongoDB connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		fmt.Printf("MongoDB reachable at %s (db %q)\n", config.MongoURI(), config.MongoDB())
		return nil
	},
}

// scmflow seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo users, products and orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		return seeders.RunAll(ctx, database.DB())
	},
}

// scmflow export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the order book to the storage disk as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())
		storage.Connect()

		path, err := services.NewOrderService().ExportCSV(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Exported:", path)
		return nil
	},
}
