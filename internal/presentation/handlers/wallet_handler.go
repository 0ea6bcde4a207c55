package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/application/services"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/solana"
	"github.com/bimakw/wallet-analyzer/internal/presentation/report"
)

// WalletHandler handles HTTP requests for wallet activity and analysis
type WalletHandler struct {
	activities *services.ActivityService
	analysis   *services.AnalysisService
	renderer   *report.Renderer
	logger     *zap.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(
	activities *services.ActivityService,
	analysis *services.AnalysisService,
	renderer *report.Renderer,
	logger *zap.Logger,
) *WalletHandler {
	return &WalletHandler{
		activities: activities,
		analysis:   analysis,
		renderer:   renderer,
		logger:     logger,
	}
}

// RegisterRoutes registers the wallet routes on a chi router
func (h *WalletHandler) RegisterRoutes(r chi.Router) {
	r.Route("/wallets", func(r chi.Router) {
		r.Get("/{address}/activity", h.GetActivity)
		r.Get("/{address}/analysis", h.GetAnalysis)
	})
}

// GetActivity handles GET /api/v1/wallets/{address}/activity
func (h *WalletHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}

	status, response := h.fetchActivity(r.Context(), address, limit)
	respondJSON(w, status, response)
}

// GetAnalysis handles GET /api/v1/wallets/{address}/analysis
func (h *WalletHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	status, response := h.analyze(r.Context(), address)
	respondJSON(w, status, response)
}

func (h *WalletHandler) fetchActivity(ctx context.Context, address string, limit int) (int, ToolResponse) {
	if err := solana.ValidateAddress(address); err != nil {
		return http.StatusBadRequest, failure("Invalid wallet address format")
	}

	activities := h.activities.FetchActivities(ctx, address, limit)

	text, err := h.renderer.ActivityHistory(address, activities)
	if err != nil {
		h.logger.Error("Failed to render activity report",
			zap.Error(err),
			zap.String("address", address),
		)
		return http.StatusInternalServerError, failure("Failed to render activity report")
	}

	return http.StatusOK, success(text, activities)
}

func (h *WalletHandler) analyze(ctx context.Context, address string) (int, ToolResponse) {
	if err := solana.ValidateAddress(address); err != nil {
		return http.StatusBadRequest, failure("Invalid wallet address format")
	}

	analysis := h.analysis.AnalyzeWallet(ctx, address)

	text, err := h.renderer.WalletAnalysis(analysis)
	if err != nil {
		h.logger.Error("Failed to render wallet analysis",
			zap.Error(err),
			zap.String("address", address),
		)
		return http.StatusInternalServerError, failure("Failed to render wallet analysis")
	}

	return http.StatusOK, success(text, analysis)
}
