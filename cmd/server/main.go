// Bare server entry point. The stockshop CLI wraps this same bootstrap
// with database and worker commands.
package main

import (
	"fmt"
	"os"

	"github.com/aferchichi/stockshop/internal/server"

	_ "github.com/aferchichi/stockshop/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
