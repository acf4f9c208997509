package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/txledger/internal/api/handlers"
	"github.com/dvloznov/txledger/internal/api/middleware"
	"github.com/dvloznov/txledger/internal/infra/duckdb"
	"github.com/dvloznov/txledger/internal/logger"
)

const defaultDBPath = "data/transactions.duckdb"

func main() {
	// Parse command-line flags
	var (
		port   = flag.String("port", "8000", "HTTP server port")
		dbPath = flag.String("db", os.Getenv("TXLEDGER_DB"), "path to the DuckDB database file (or set TXLEDGER_DB env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	if *dbPath == "" {
		*dbPath = defaultDBPath
	}

	// Open the store and make sure the table and sequence exist before
	// serving any request.
	repo, err := duckdb.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize schema")
	}

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(repo, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		case http.MethodGet:
			transactionsHandler.List(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/transactions/", func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/transactions/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid transaction ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			transactionsHandler.Get(w, r, id)
		case http.MethodPut:
			transactionsHandler.Update(w, r, id)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Service info endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Transaction API",
			"version": "1.0.0",
		})
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("db", *dbPath).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
