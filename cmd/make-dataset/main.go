// Command make-dataset writes a partitioned Parquet dataset in the layout
// the batch ingestor expects: <out>/p=<n>/part-0.parquet.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/dvloznov/txledger/internal/logger"
)

// transactionRow mirrors the caller-supplied columns of the transactions
// table. No id and no created_at: the store assigns those.
type transactionRow struct {
	Time   int64   `parquet:"time"`
	V1     float64 `parquet:"v1"`
	V2     float64 `parquet:"v2"`
	V3     float64 `parquet:"v3"`
	V4     float64 `parquet:"v4"`
	V5     float64 `parquet:"v5"`
	V6     float64 `parquet:"v6"`
	V7     float64 `parquet:"v7"`
	V8     float64 `parquet:"v8"`
	V9     float64 `parquet:"v9"`
	V10    float64 `parquet:"v10"`
	V11    float64 `parquet:"v11"`
	V12    float64 `parquet:"v12"`
	V13    float64 `parquet:"v13"`
	V14    float64 `parquet:"v14"`
	V15    float64 `parquet:"v15"`
	V16    float64 `parquet:"v16"`
	V17    float64 `parquet:"v17"`
	V18    float64 `parquet:"v18"`
	V19    float64 `parquet:"v19"`
	V20    float64 `parquet:"v20"`
	V21    float64 `parquet:"v21"`
	V22    float64 `parquet:"v22"`
	V23    float64 `parquet:"v23"`
	V24    float64 `parquet:"v24"`
	V25    float64 `parquet:"v25"`
	V26    float64 `parquet:"v26"`
	V27    float64 `parquet:"v27"`
	V28    float64 `parquet:"v28"`
	Amount float64 `parquet:"amount"`
}

func main() {
	log := logger.New()

	out := flag.String("out", "data/partitioned_data", "output directory for the partitioned dataset")
	partitions := flag.Int("partitions", 2, "number of partition subdirectories")
	rowsPer := flag.Int("rows", 50, "rows per partition")
	flag.Parse()

	total := 0
	for p := 1; p <= *partitions; p++ {
		dir := filepath.Join(*out, fmt.Sprintf("p=%d", p))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create partition directory")
		}

		rows := make([]transactionRow, *rowsPer)
		for i := range rows {
			row := transactionRow{
				Time:   rand.Int63n(100000) + 1,
				Amount: round2(randFloat(10.0, 1000.0)),
			}
			row.V1 = round2(randFloat(0.1, 5.0))
			row.V2 = round2(randFloat(0.1, 5.0))
			row.V3 = round2(randFloat(0.1, 5.0))
			row.V4 = round2(randFloat(0.1, 5.0))
			row.V5 = round2(randFloat(0.1, 5.0))
			row.V6 = round2(randFloat(0.1, 5.0))
			row.V7 = round2(randFloat(0.1, 5.0))
			row.V8 = round2(randFloat(0.1, 5.0))
			row.V9 = round2(randFloat(0.1, 5.0))
			row.V10 = round2(randFloat(0.1, 5.0))
			row.V11 = round2(randFloat(0.1, 5.0))
			row.V12 = round2(randFloat(0.1, 5.0))
			row.V13 = round2(randFloat(0.1, 5.0))
			row.V14 = round2(randFloat(0.1, 5.0))
			row.V15 = round2(randFloat(0.1, 5.0))
			row.V16 = round2(randFloat(0.1, 5.0))
			row.V17 = round2(randFloat(0.1, 5.0))
			row.V18 = round2(randFloat(0.1, 5.0))
			row.V19 = round2(randFloat(0.1, 5.0))
			row.V20 = round2(randFloat(0.1, 5.0))
			row.V21 = round2(randFloat(0.1, 5.0))
			row.V22 = round2(randFloat(0.1, 5.0))
			row.V23 = round2(randFloat(0.1, 5.0))
			row.V24 = round2(randFloat(0.1, 5.0))
			row.V25 = round2(randFloat(0.1, 5.0))
			row.V26 = round2(randFloat(0.1, 5.0))
			row.V27 = round2(randFloat(0.1, 5.0))
			row.V28 = round2(randFloat(0.1, 5.0))
			rows[i] = row
		}

		file := filepath.Join(dir, "part-0.parquet")
		if err := parquet.WriteFile(file, rows); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("Failed to write parquet file")
		}
		total += len(rows)
		log.Info().Str("file", file).Int("rows", len(rows)).Msg("Wrote partition")
	}

	log.Info().Str("out", *out).Int("rows", total).Msg("Dataset written")
}

func randFloat(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
