package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/application/services"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/presentation/report"
)

// TransactionHandler handles HTTP requests for single transactions
type TransactionHandler struct {
	service  *services.TransactionService
	renderer *report.Renderer
	logger   *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *services.TransactionService, renderer *report.Renderer, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		service:  service,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers the transaction routes
func (h *TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/transactions/{signature}", h.GetTransaction)
}

// GetTransaction handles GET /api/v1/transactions/{signature}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	signature := chi.URLParam(r, "signature")

	status, response := h.details(r.Context(), signature)
	respondJSON(w, status, response)
}

func (h *TransactionHandler) details(ctx context.Context, signature string) (int, ToolResponse) {
	details, err := h.service.GetTransactionDetails(ctx, signature)
	switch {
	case errors.Is(err, entities.ErrInvalidSignature):
		return http.StatusBadRequest, failure("Invalid transaction signature format")
	case errors.Is(err, entities.ErrTransactionNotFound):
		return http.StatusNotFound, failure("Transaction not found")
	case err != nil:
		h.logger.Error("Failed to get transaction details",
			zap.Error(err),
			zap.String("signature", signature),
		)
		return http.StatusInternalServerError, failure(err.Error())
	}

	text, err := h.renderer.TransactionDetails(*details)
	if err != nil {
		h.logger.Error("Failed to render transaction details",
			zap.Error(err),
			zap.String("signature", signature),
		)
		return http.StatusInternalServerError, failure("Failed to render transaction details")
	}

	return http.StatusOK, success(text, details)
}
