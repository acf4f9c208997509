package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dvloznov/txledger/internal/api/middleware"
	"github.com/dvloznov/txledger/internal/store"
)

const defaultListLimit = 100

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	repo store.Repository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo store.Repository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		repo: repo,
		log:  log,
	}
}

// Create handles POST /transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t store.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.repo.Insert(r.Context(), &t)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, created)
}

// List handles GET /transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	transactions, err := h.repo.List(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	// Return the array directly, never null.
	if transactions == nil {
		transactions = []*store.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, transactions)
}

// Get handles GET /transactions/{id}
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request, id int64) {
	t, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, t)
}

// Update handles PUT /transactions/{id}
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var patch store.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.repo.Update(r.Context(), id, &patch)
	if errors.Is(err, store.ErrEmptyUpdate) {
		middleware.WriteError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
