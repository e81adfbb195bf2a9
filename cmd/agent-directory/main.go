package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdir/agent-directory/api"
	"github.com/agentdir/agent-directory/config"
	"github.com/agentdir/agent-directory/internal/catalog"
	"github.com/agentdir/agent-directory/internal/ratings"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML config file (optional)")
		port       = flag.Int("port", 0, "Port to run the server on (overrides config)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Agent Directory - A searchable directory of AI agents with ratings\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                               # Start server with defaults\n", os.Args[0])
		fmt.Printf("  %s --port 9000                   # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config ./config.yaml        # Use a config file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Agent Directory v1.0.0\n")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	var logger *zap.Logger
	if cfg.Server.Mode == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Load the agent catalog
	cat := catalog.New(catalog.Options{
		CSVPath:        cfg.Data.CatalogCSV,
		UserAgentsPath: cfg.Data.UserAgents,
		Threshold:      cfg.Search.Threshold,
		Logger:         logger,
	})
	logger.Info("catalog ready", zap.Int("agent_count", cat.Count()))

	// Open the rating store
	var backend ratings.Backend
	switch cfg.Ratings.Backend {
	case "sqlite":
		sqliteBackend, err := ratings.NewSQLiteBackend(cfg.Ratings.Path)
		if err != nil {
			logger.Fatal("failed to open sqlite rating store", zap.String("path", cfg.Ratings.Path), zap.Error(err))
		}
		defer func() { _ = sqliteBackend.Close() }()
		backend = sqliteBackend
	default:
		backend = ratings.NewJSONBackend(cfg.Ratings.Path)
	}

	store, err := ratings.NewStore(backend, logger)
	if err != nil {
		logger.Fatal("failed to load rating store", zap.String("path", cfg.Ratings.Path), zap.Error(err))
	}

	// Initialize Gin router
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, api.NewAPI(cat, store, cfg.Search.MinTopRated, logger))

	// Start the server
	logger.Info("starting server", zap.Int("port", cfg.Server.Port))
	if err := router.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
