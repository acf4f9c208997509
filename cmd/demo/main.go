// Command demo exercises the transaction API end to end: it creates a few
// random transactions over HTTP, reads, updates and deletes the last one,
// then runs a batch ingestion directly against a DuckDB file.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/dvloznov/txledger/internal/batch"
	"github.com/dvloznov/txledger/internal/logger"
	"github.com/dvloznov/txledger/internal/store"
)

func main() {
	log := logger.New()

	apiURL := flag.String("api-url", "http://localhost:8000/transactions", "base URL of the transactions API")
	dbPath := flag.String("db", "data/batch_ingestions.duckdb", "DuckDB file for the batch ingestion step")
	parquetPath := flag.String("parquet", "data/partitioned_data", "directory of partitioned parquet files")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	log.Info().Msg("Starting transaction API demo")

	// Step 1: create a few transactions
	var createdIDs []int64
	for i := 0; i < 3; i++ {
		created, err := createTransaction(client, *apiURL, randomTransaction())
		if err != nil {
			log.Fatal().Err(err).Msg("Create failed")
		}
		log.Info().Int64("id", created.ID).Float64("amount", created.Amount).Msg("Created transaction")
		createdIDs = append(createdIDs, created.ID)
	}

	// Step 2: work with the last created transaction
	id := createdIDs[len(createdIDs)-1]

	read, err := getTransaction(client, *apiURL, id)
	if err != nil {
		log.Fatal().Err(err).Int64("id", id).Msg("Read failed")
	}
	log.Info().Int64("id", read.ID).Float64("amount", read.Amount).Msg("Read transaction")

	newAmount := round2(randFloat(1000.0, 5000.0))
	updated, err := updateAmount(client, *apiURL, id, newAmount)
	if err != nil {
		log.Fatal().Err(err).Int64("id", id).Msg("Update failed")
	}
	log.Info().Int64("id", updated.ID).Float64("amount", updated.Amount).Msg("Updated transaction")

	if err := deleteTransaction(client, *apiURL, id); err != nil {
		log.Fatal().Err(err).Int64("id", id).Msg("Delete failed")
	}
	log.Info().Int64("id", id).Msg("Deleted transaction")

	// Step 3: batch ingestion. A failure here is reported but does not
	// abort the demo.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := batch.Ingest(ctx, log, *dbPath, *parquetPath, store.TransactionDefinition)
	if err != nil {
		log.Error().Err(err).Msg("Batch ingestion failed")
	} else {
		log.Info().Str("table", result.Table).Int64("rows", result.Rows).Msg("Batch ingestion completed")
	}

	log.Info().Msg("Demo completed")
}

// randomTransaction builds a payload with positive values: time is a random
// integer, features and amount are random floats rounded to two decimals so
// they survive the store's FLOAT columns unchanged.
func randomTransaction() *store.Transaction {
	return &store.Transaction{
		Time:   rand.Int63n(100000) + 1,
		V1:     round2(randFloat(0.1, 5.0)),
		V2:     round2(randFloat(0.1, 5.0)),
		V3:     round2(randFloat(0.1, 5.0)),
		V4:     round2(randFloat(0.1, 5.0)),
		V5:     round2(randFloat(0.1, 5.0)),
		V6:     round2(randFloat(0.1, 5.0)),
		V7:     round2(randFloat(0.1, 5.0)),
		V8:     round2(randFloat(0.1, 5.0)),
		V9:     round2(randFloat(0.1, 5.0)),
		V10:    round2(randFloat(0.1, 5.0)),
		V11:    round2(randFloat(0.1, 5.0)),
		V12:    round2(randFloat(0.1, 5.0)),
		V13:    round2(randFloat(0.1, 5.0)),
		V14:    round2(randFloat(0.1, 5.0)),
		V15:    round2(randFloat(0.1, 5.0)),
		V16:    round2(randFloat(0.1, 5.0)),
		V17:    round2(randFloat(0.1, 5.0)),
		V18:    round2(randFloat(0.1, 5.0)),
		V19:    round2(randFloat(0.1, 5.0)),
		V20:    round2(randFloat(0.1, 5.0)),
		V21:    round2(randFloat(0.1, 5.0)),
		V22:    round2(randFloat(0.1, 5.0)),
		V23:    round2(randFloat(0.1, 5.0)),
		V24:    round2(randFloat(0.1, 5.0)),
		V25:    round2(randFloat(0.1, 5.0)),
		V26:    round2(randFloat(0.1, 5.0)),
		V27:    round2(randFloat(0.1, 5.0)),
		V28:    round2(randFloat(0.1, 5.0)),
		Amount: round2(randFloat(10.0, 1000.0)),
	}
}

func randFloat(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func createTransaction(client *http.Client, apiURL string, t *store.Transaction) (*store.Transaction, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	resp, err := client.Post(apiURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", apiURL, err)
	}
	defer resp.Body.Close()

	return decodeTransaction(resp)
}

func getTransaction(client *http.Client, apiURL string, id int64) (*store.Transaction, error) {
	url := fmt.Sprintf("%s/%d", apiURL, id)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	return decodeTransaction(resp)
}

func updateAmount(client *http.Client, apiURL string, id int64, amount float64) (*store.Transaction, error) {
	body, err := json.Marshal(map[string]float64{"amount": amount})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	url := fmt.Sprintf("%s/%d", apiURL, id)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PUT %s: %w", url, err)
	}
	defer resp.Body.Close()

	return decodeTransaction(resp)
}

func deleteTransaction(client *http.Client, apiURL string, id int64) error {
	url := fmt.Sprintf("%s/%d", apiURL, id)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("DELETE %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("DELETE %s: unexpected status %d", url, resp.StatusCode)
	}
	return nil
}

func decodeTransaction(resp *http.Response) (*store.Transaction, error) {
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Error)
	}

	var t store.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &t, nil
}
