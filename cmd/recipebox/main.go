package main

import (
	"fmt"
	"os"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/delivery/cli"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
