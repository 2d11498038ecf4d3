package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/config"
	"github.com/restockhq/reorder-engine/pkg/database"
	"github.com/restockhq/reorder-engine/pkg/handlers"
	"github.com/restockhq/reorder-engine/pkg/llm"
	"github.com/restockhq/reorder-engine/pkg/logging"
	"github.com/restockhq/reorder-engine/pkg/mailer"
	mcpserver "github.com/restockhq/reorder-engine/pkg/mcp"
	"github.com/restockhq/reorder-engine/pkg/mcp/tools"
	"github.com/restockhq/reorder-engine/pkg/middleware"
	"github.com/restockhq/reorder-engine/pkg/repositories"
	"github.com/restockhq/reorder-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database", cfg.Database.Host),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("agent_enabled", cfg.AI.IsConfigured()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Migrations run over database/sql; the serving path uses pgx pools.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	sqlDB.Close() //nolint:errcheck

	db, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to catalogue store", zap.Error(err))
	}
	defer db.Close()

	productRepo := repositories.NewProductRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)

	smtpMailer := mailer.NewSMTPMailer(&cfg.Email, logger)
	dispatcher := services.NewOrderDispatcher(vendorRepo, smtpMailer, logger)
	inventoryService := services.NewInventoryService(productRepo, vendorRepo, smtpMailer, logger)
	reconciliationService := services.NewReconciliationService(db, productRepo, dispatcher, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewReconcileHandler(reconciliationService, logger).RegisterRoutes(mux)
	handlers.NewInventoryHandler(inventoryService, logger).RegisterRoutes(mux)

	// The agent endpoint is optional; without an LLM endpoint configured it
	// responds 503 and the rest of the API works normally.
	var agent handlers.AgentRunner
	if cfg.AI.IsConfigured() {
		chatClient, err := llm.NewChatClient(&cfg.AI, logger)
		if err != nil {
			logger.Fatal("Failed to create LLM client", zap.Error(err))
		}
		executor := llm.NewInventoryToolExecutor(inventoryService, logger)
		agent = llm.NewAgent(chatClient, executor, logger)
	}
	handlers.NewAgentHandler(agent, logger).RegisterRoutes(mux)

	mcpSrv := mcpserver.NewServer("reorder-engine", cfg.Version, logger)
	tools.RegisterHealthTool(mcpSrv.MCP(), cfg.Version)
	tools.RegisterInventoryTools(mcpSrv.MCP(), &tools.InventoryToolDeps{
		InventoryService: inventoryService,
		Logger:           logger,
	})
	mux.Handle("/mcp", mcpSrv.NewStreamableHTTPServer())

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting reorder-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
