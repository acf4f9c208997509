package store

import (
	"context"
	"errors"
	"time"
)

// Transaction is one row of the transactions table. ID and CreatedAt are
// assigned by the store and must never be supplied by callers.
type Transaction struct {
	ID        int64     `json:"id"`
	Time      int64     `json:"time"`
	V1        float64   `json:"v1"`
	V2        float64   `json:"v2"`
	V3        float64   `json:"v3"`
	V4        float64   `json:"v4"`
	V5        float64   `json:"v5"`
	V6        float64   `json:"v6"`
	V7        float64   `json:"v7"`
	V8        float64   `json:"v8"`
	V9        float64   `json:"v9"`
	V10       float64   `json:"v10"`
	V11       float64   `json:"v11"`
	V12       float64   `json:"v12"`
	V13       float64   `json:"v13"`
	V14       float64   `json:"v14"`
	V15       float64   `json:"v15"`
	V16       float64   `json:"v16"`
	V17       float64   `json:"v17"`
	V18       float64   `json:"v18"`
	V19       float64   `json:"v19"`
	V20       float64   `json:"v20"`
	V21       float64   `json:"v21"`
	V22       float64   `json:"v22"`
	V23       float64   `json:"v23"`
	V24       float64   `json:"v24"`
	V25       float64   `json:"v25"`
	V26       float64   `json:"v26"`
	V27       float64   `json:"v27"`
	V28       float64   `json:"v28"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertValues returns the caller-supplied column values in
// TransactionDefinition.ExpectedColumns order.
func (t *Transaction) InsertValues() []any {
	return []any{t.Time, t.V1, t.V2, t.V3, t.V4, t.V5, t.V6, t.V7, t.V8, t.V9, t.V10, t.V11, t.V12, t.V13, t.V14, t.V15, t.V16, t.V17, t.V18, t.V19, t.V20, t.V21, t.V22, t.V23, t.V24, t.V25, t.V26, t.V27, t.V28, t.Amount}
}

// TransactionPatch is a partial update. A nil field was not provided in the
// request and is left untouched; a non-nil field is written even when it
// carries the zero value. This keeps "absent" distinct from "set to zero".
type TransactionPatch struct {
	Time   *int64   `json:"time"`
	V1     *float64 `json:"v1"`
	V2     *float64 `json:"v2"`
	V3     *float64 `json:"v3"`
	V4     *float64 `json:"v4"`
	V5     *float64 `json:"v5"`
	V6     *float64 `json:"v6"`
	V7     *float64 `json:"v7"`
	V8     *float64 `json:"v8"`
	V9     *float64 `json:"v9"`
	V10    *float64 `json:"v10"`
	V11    *float64 `json:"v11"`
	V12    *float64 `json:"v12"`
	V13    *float64 `json:"v13"`
	V14    *float64 `json:"v14"`
	V15    *float64 `json:"v15"`
	V16    *float64 `json:"v16"`
	V17    *float64 `json:"v17"`
	V18    *float64 `json:"v18"`
	V19    *float64 `json:"v19"`
	V20    *float64 `json:"v20"`
	V21    *float64 `json:"v21"`
	V22    *float64 `json:"v22"`
	V23    *float64 `json:"v23"`
	V24    *float64 `json:"v24"`
	V25    *float64 `json:"v25"`
	V26    *float64 `json:"v26"`
	V27    *float64 `json:"v27"`
	V28    *float64 `json:"v28"`
	Amount *float64 `json:"amount"`
}

// Changes returns the provided column names and values, in schema order.
func (p *TransactionPatch) Changes() (cols []string, vals []any) {
	if p.Time != nil {
		cols = append(cols, "time")
		vals = append(vals, *p.Time)
	}
	if p.V1 != nil {
		cols = append(cols, "v1")
		vals = append(vals, *p.V1)
	}
	if p.V2 != nil {
		cols = append(cols, "v2")
		vals = append(vals, *p.V2)
	}
	if p.V3 != nil {
		cols = append(cols, "v3")
		vals = append(vals, *p.V3)
	}
	if p.V4 != nil {
		cols = append(cols, "v4")
		vals = append(vals, *p.V4)
	}
	if p.V5 != nil {
		cols = append(cols, "v5")
		vals = append(vals, *p.V5)
	}
	if p.V6 != nil {
		cols = append(cols, "v6")
		vals = append(vals, *p.V6)
	}
	if p.V7 != nil {
		cols = append(cols, "v7")
		vals = append(vals, *p.V7)
	}
	if p.V8 != nil {
		cols = append(cols, "v8")
		vals = append(vals, *p.V8)
	}
	if p.V9 != nil {
		cols = append(cols, "v9")
		vals = append(vals, *p.V9)
	}
	if p.V10 != nil {
		cols = append(cols, "v10")
		vals = append(vals, *p.V10)
	}
	if p.V11 != nil {
		cols = append(cols, "v11")
		vals = append(vals, *p.V11)
	}
	if p.V12 != nil {
		cols = append(cols, "v12")
		vals = append(vals, *p.V12)
	}
	if p.V13 != nil {
		cols = append(cols, "v13")
		vals = append(vals, *p.V13)
	}
	if p.V14 != nil {
		cols = append(cols, "v14")
		vals = append(vals, *p.V14)
	}
	if p.V15 != nil {
		cols = append(cols, "v15")
		vals = append(vals, *p.V15)
	}
	if p.V16 != nil {
		cols = append(cols, "v16")
		vals = append(vals, *p.V16)
	}
	if p.V17 != nil {
		cols = append(cols, "v17")
		vals = append(vals, *p.V17)
	}
	if p.V18 != nil {
		cols = append(cols, "v18")
		vals = append(vals, *p.V18)
	}
	if p.V19 != nil {
		cols = append(cols, "v19")
		vals = append(vals, *p.V19)
	}
	if p.V20 != nil {
		cols = append(cols, "v20")
		vals = append(vals, *p.V20)
	}
	if p.V21 != nil {
		cols = append(cols, "v21")
		vals = append(vals, *p.V21)
	}
	if p.V22 != nil {
		cols = append(cols, "v22")
		vals = append(vals, *p.V22)
	}
	if p.V23 != nil {
		cols = append(cols, "v23")
		vals = append(vals, *p.V23)
	}
	if p.V24 != nil {
		cols = append(cols, "v24")
		vals = append(vals, *p.V24)
	}
	if p.V25 != nil {
		cols = append(cols, "v25")
		vals = append(vals, *p.V25)
	}
	if p.V26 != nil {
		cols = append(cols, "v26")
		vals = append(vals, *p.V26)
	}
	if p.V27 != nil {
		cols = append(cols, "v27")
		vals = append(vals, *p.V27)
	}
	if p.V28 != nil {
		cols = append(cols, "v28")
		vals = append(vals, *p.V28)
	}
	if p.Amount != nil {
		cols = append(cols, "amount")
		vals = append(vals, *p.Amount)
	}
	return cols, vals
}

// Apply writes the provided fields of the patch onto t.
func (p *TransactionPatch) Apply(t *Transaction) {
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.V1 != nil {
		t.V1 = *p.V1
	}
	if p.V2 != nil {
		t.V2 = *p.V2
	}
	if p.V3 != nil {
		t.V3 = *p.V3
	}
	if p.V4 != nil {
		t.V4 = *p.V4
	}
	if p.V5 != nil {
		t.V5 = *p.V5
	}
	if p.V6 != nil {
		t.V6 = *p.V6
	}
	if p.V7 != nil {
		t.V7 = *p.V7
	}
	if p.V8 != nil {
		t.V8 = *p.V8
	}
	if p.V9 != nil {
		t.V9 = *p.V9
	}
	if p.V10 != nil {
		t.V10 = *p.V10
	}
	if p.V11 != nil {
		t.V11 = *p.V11
	}
	if p.V12 != nil {
		t.V12 = *p.V12
	}
	if p.V13 != nil {
		t.V13 = *p.V13
	}
	if p.V14 != nil {
		t.V14 = *p.V14
	}
	if p.V15 != nil {
		t.V15 = *p.V15
	}
	if p.V16 != nil {
		t.V16 = *p.V16
	}
	if p.V17 != nil {
		t.V17 = *p.V17
	}
	if p.V18 != nil {
		t.V18 = *p.V18
	}
	if p.V19 != nil {
		t.V19 = *p.V19
	}
	if p.V20 != nil {
		t.V20 = *p.V20
	}
	if p.V21 != nil {
		t.V21 = *p.V21
	}
	if p.V22 != nil {
		t.V22 = *p.V22
	}
	if p.V23 != nil {
		t.V23 = *p.V23
	}
	if p.V24 != nil {
		t.V24 = *p.V24
	}
	if p.V25 != nil {
		t.V25 = *p.V25
	}
	if p.V26 != nil {
		t.V26 = *p.V26
	}
	if p.V27 != nil {
		t.V27 = *p.V27
	}
	if p.V28 != nil {
		t.V28 = *p.V28
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
}

// Sentinel errors surfaced by Repository implementations.
var (
	ErrNotFound    = errors.New("transaction not found")
	ErrEmptyUpdate = errors.New("no fields to update")
)

// Repository is the record store gateway: it owns the physical store and
// guarantees the table and sequence exist before reads or writes.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, t *Transaction) (*Transaction, error)
	List(ctx context.Context, limit int) ([]*Transaction, error)
	Get(ctx context.Context, id int64) (*Transaction, error)
	Update(ctx context.Context, id int64, patch *TransactionPatch) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}
