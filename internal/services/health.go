package services

import (
	"fmt"
	"log"
	"time"

	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Assets       string            `json:"assets,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, st store.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	if err := st.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Store = "unreachable"
		result.Details["store_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Store ping failed: %v", err)
		log.Printf("Health check failed - store ping: %v", err)
	} else {
		result.Store = "ok"
		result.Details["store_backend"] = cfg.DBType
		if cfg.DBDatabase != "" {
			result.Details["store_database"] = cfg.DBDatabase
		}
	}

	// The asset host only matters when image URLs resolve against one.
	if cfg.AssetBaseURL != "" {
		if err := utils.PingService(cfg.AssetBaseURL, 3*time.Second); err != nil {
			result.Status = "unhealthy"
			result.Assets = "unreachable"
			result.Details["asset_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Asset host ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; asset host ping failed: %v", err)
			}
			log.Printf("Health check failed - asset host ping: %v", err)
		} else {
			result.Assets = "ok"
			result.Details["asset_base_url"] = cfg.AssetBaseURL
		}
	}

	return result
}
