package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"archiva/internal/auth"
	"archiva/internal/config"
	"archiva/internal/handler"
	"archiva/internal/middleware"
	"archiva/internal/repository/postgres"
	"archiva/internal/repository/redisstore"
	"archiva/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier backed by the JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Postgres connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("schema migrated", "table_prefix", cfg.TablePrefix)
	}

	// Redis client shared by the view state store and the list cache
	redisClient, err := redisstore.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	corpusRepo := postgres.NewCorpusRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)
	viewStore := redisstore.NewViewStateStoreWithClient(redisClient, logger)
	listCache := redisstore.NewListCache(redisClient, logger)

	// Services
	corpusService := service.NewCorpusService(corpusRepo, viewStore, listCache, logger)
	folderService := service.NewFolderService(folderRepo, docRepo, corpusRepo, txManager, listCache, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, corpusRepo, listCache, logger)
	treeService := service.NewTreeService(folderRepo, docRepo, corpusRepo, listCache, logger)
	moveService := service.NewMoveService(folderService, docService, folderRepo, logger)
	viewService := service.NewViewStateService(viewStore, folderRepo, corpusRepo, logger)

	// Handlers
	corpusHandler := handler.NewCorpusHandler(corpusService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	treeHandler := handler.NewTreeHandler(treeService, folderService, logger)
	moveHandler := handler.NewMoveHandler(moveService, logger)
	viewHandler := handler.NewViewHandler(viewService, logger)
	healthHandler := handler.NewHealthHandler(pool, viewStore)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Corpus routes
	mux.HandleFunc("POST /api/corpora", corpusHandler.Create)
	mux.HandleFunc("GET /api/corpora", corpusHandler.List)
	mux.HandleFunc("GET /api/corpora/{id}", corpusHandler.Get)
	mux.HandleFunc("PATCH /api/corpora/{id}", corpusHandler.Update)
	mux.HandleFunc("DELETE /api/corpora/{id}", corpusHandler.Delete)

	// Corpus-scoped tree, listing and trash routes
	mux.HandleFunc("GET /api/corpora/{id}/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/corpora/{id}/folders", treeHandler.ListFolders)
	mux.HandleFunc("GET /api/corpora/{id}/children", treeHandler.ListRootChildren)
	mux.HandleFunc("GET /api/corpora/{id}/trash", treeHandler.GetTrash)

	// Drag-and-drop move resolution
	mux.HandleFunc("POST /api/corpora/{id}/moves", moveHandler.Move)

	// Per-user tree view state
	mux.HandleFunc("GET /api/corpora/{id}/view", viewHandler.Get)
	mux.HandleFunc("PUT /api/corpora/{id}/view/selection", viewHandler.Select)
	mux.HandleFunc("POST /api/corpora/{id}/view/expanded/{folderID}/toggle", viewHandler.Toggle)
	mux.HandleFunc("POST /api/corpora/{id}/view/expand-all", viewHandler.ExpandAll)
	mux.HandleFunc("POST /api/corpora/{id}/view/collapse-all", viewHandler.CollapseAll)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.Get)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.Update)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.Children)
	mux.HandleFunc("GET /api/folders/{id}/destinations", folderHandler.Destinations)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.Create)
	mux.HandleFunc("GET /api/documents/search", docHandler.Search) // Must come before {id} route
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.Delete)

	// Build middleware chain, applied in reverse order (they wrap each other)
	// Order: CORS -> RequestLog -> Recovery -> Auth -> Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(verifier)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
