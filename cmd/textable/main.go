// Command textable parses whitespace-aligned command output.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tsawler/textable/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
