package main

import (
	"moviehub/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env if present; the OMDb API key usually lives there.
	_ = godotenv.Load()

	// Delegate all execution to the CLI package
	cli.Execute()
}
