package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/txledger/internal/batch"
	"github.com/dvloznov/txledger/internal/logger"
	"github.com/dvloznov/txledger/internal/store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	dbPath := flag.String("db", "", "path to the DuckDB database file (created if absent)")
	parquetPath := flag.String("parquet", "", "directory containing partitioned parquet files")
	flag.Parse()

	if *dbPath == "" || *parquetPath == "" {
		log.Fatal().Msg("Error: --db and --parquet are required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("db", *dbPath).Str("parquet", *parquetPath).Msg("Starting batch ingestion")

	result, err := batch.Ingest(ctx, log, *dbPath, *parquetPath, store.TransactionDefinition)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	fmt.Printf("Ingestion done for %s, %d lines processed.\n", result.Table, result.Rows)
}
