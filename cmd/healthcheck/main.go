package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/services"
	"github.com/mkvist/shelfmark/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the configured store backend
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	// Perform health check
	result := services.HealthCheck(cfg, st)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
