package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"collabgraph/backend/internal/analytics"
	"collabgraph/backend/internal/cache"
	"collabgraph/backend/internal/graph"
	"collabgraph/backend/pkg/config"
	"collabgraph/backend/pkg/logger"
)

func main() {
	// Load configuration first so the logger knows the environment
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting analytics API server...")

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Result cache
	cacheDir := cfg.CacheDir
	if cfg.CacheInMemory {
		cacheDir = ""
	}
	resultCache, err := cache.Open(cacheDir)
	if err != nil {
		log.Fatal("Failed to open result cache", zap.Error(err))
	}
	defer resultCache.Close()

	// Initialize dependencies
	repo := graph.NewRepository(driver)
	service := analytics.NewService(repo, resultCache, analytics.Config{
		BridgeMaxPaths:   cfg.BridgeMaxPaths,
		ExpertDefault:    cfg.ExpertDefault,
		TrustHubCount:    cfg.TrustHubCount,
		OpportunityLimit: cfg.OpportunityLimit,
		RiskProjectLimit: cfg.RiskProjectLimit,
		RecommendDefault: cfg.RecommendDefault,
		TTLShort:         cfg.CacheTTLShort,
		TTLLong:          cfg.CacheTTLLong,
	})

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Analytics routes. Every operation returns the uniform envelope with
	// HTTP 200; only malformed request parameters map to 400.
	api := router.Group("/api/analytics")
	{
		api.GET("/bridge/:from/:to", func(c *gin.Context) {
			result := service.FindResearchBridge(c.Request.Context(), c.Param("from"), c.Param("to"))
			c.JSON(http.StatusOK, result)
		})

		api.GET("/experts", func(c *gin.Context) {
			limit, ok := intQuery(c, "limit", 0)
			if !ok {
				return
			}
			result := service.FindHiddenExperts(c.Request.Context(), c.Query("area"), limit)
			c.JSON(http.StatusOK, result)
		})

		api.GET("/trust", func(c *gin.Context) {
			minCollaborations, ok := intQuery(c, "min_collaborations", 2)
			if !ok {
				return
			}
			result := service.AnalyzeTrustNetwork(c.Request.Context(), c.Query("department"), minCollaborations)
			c.JSON(http.StatusOK, result)
		})

		api.GET("/opportunities", func(c *gin.Context) {
			minSimilarity, ok := floatQuery(c, "min_similarity", 0.3)
			if !ok {
				return
			}
			result := service.FindLostOpportunities(c.Request.Context(), minSimilarity)
			c.JSON(http.StatusOK, result)
		})

		api.GET("/risk", func(c *gin.Context) {
			minScore, ok := floatQuery(c, "min_score", 1.5)
			if !ok {
				return
			}
			result := service.IdentifyHighRiskProjects(c.Request.Context(), minScore)
			c.JSON(http.StatusOK, result)
		})

		api.GET("/impact/:projectID", func(c *gin.Context) {
			result := service.AnalyzeProjectImpact(c.Request.Context(), c.Param("projectID"))
			c.JSON(http.StatusOK, result)
		})

		api.GET("/partners/:id", func(c *gin.Context) {
			limit, ok := intQuery(c, "limit", 0)
			if !ok {
				return
			}
			result := service.RecommendPartners(c.Request.Context(), c.Param("id"), limit)
			c.JSON(http.StatusOK, result)
		})
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// intQuery parses an optional integer query parameter, writing a 400 response
// and returning ok=false when the value is present but not an integer.
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %q", name, raw)})
		return 0, false
	}
	return value, true
}

// floatQuery is intQuery for float parameters
func floatQuery(c *gin.Context, name string, fallback float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %q", name, raw)})
		return 0, false
	}
	return value, true
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
