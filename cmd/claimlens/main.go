package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"claimlens/internal/cli"
)

func main() {
	// Load a .env file if one is present; absence is fine
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
