// Package main provides the scmflow management CLI.
//
//	scmflow serve        # start the API server
//	scmflow route:list   # list registered routes
//	scmflow db:ping      # verify the MongoDB connection
//	scmflow seed         # load demo data
//	scmflow export       # write the order book to the storage disk as CSV
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scmflow",
	Short: "SCMFlow, the supply chain management API",
	Long:  "SCMFlow serves the supply chain dashboard: orders, inventory, auth and analytics over MongoDB.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
}
