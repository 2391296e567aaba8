package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Result cache
	CacheDir      string // BadgerDB directory for memoized analytics results
	CacheInMemory bool   // Run the cache without a backing directory (tests, dev)

	// Analytics cache TTLs. The short TTL covers cheap per-entity queries
	// (bridge, risk, partner recommendations), the long TTL covers the
	// population-wide scans (experts, trust, opportunities, impact).
	CacheTTLShort time.Duration
	CacheTTLLong  time.Duration

	// Result limits
	BridgeMaxPaths   int // Max shortest paths returned per bridge query
	ExpertDefault    int // Default hidden-expert result count
	TrustHubCount    int // Top researchers reported as trust hubs
	OpportunityLimit int // Max lost-opportunity pairs returned
	RiskProjectLimit int // Max high-risk projects returned
	RecommendDefault int // Default partner recommendation count
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		CacheDir:      getEnv("CACHE_DIR", "cache"),
		CacheInMemory: getEnv("CACHE_IN_MEMORY", "") == "true",
		CacheTTLShort: time.Duration(getEnvInt("CACHE_TTL_SHORT", 1800)) * time.Second,
		CacheTTLLong:  time.Duration(getEnvInt("CACHE_TTL_LONG", 3600)) * time.Second,

		BridgeMaxPaths:   getEnvInt("BRIDGE_MAX_PATHS", 3),
		ExpertDefault:    getEnvInt("EXPERT_DEFAULT", 10),
		TrustHubCount:    getEnvInt("TRUST_HUB_COUNT", 5),
		OpportunityLimit: getEnvInt("OPPORTUNITY_LIMIT", 20),
		RiskProjectLimit: getEnvInt("RISK_PROJECT_LIMIT", 15),
		RecommendDefault: getEnvInt("RECOMMEND_DEFAULT", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if !c.CacheInMemory && c.CacheDir == "" {
		return fmt.Errorf("CACHE_DIR is required unless CACHE_IN_MEMORY=true")
	}
	if c.CacheTTLShort <= 0 || c.CacheTTLLong <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
