// cmd/server is the bare API entry point. The scmflow CLI wraps the same
// bootstrap with management commands.
package main

import (
	"log"

	"github.com/infernolabs/scmflow/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
