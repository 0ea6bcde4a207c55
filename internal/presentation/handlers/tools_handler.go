package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Tool names accepted by POST /api/v1/tools/{name}
const (
	ToolFetchWalletActivity   = "fetchWalletActivity"
	ToolAnalyzeWallet         = "analyzeWallet"
	ToolGetTransactionDetails = "getTransactionDetails"
)

const maxToolBodyBytes = 1 << 16

// ToolArguments is the argument object of a tool call
type ToolArguments struct {
	Address   string `json:"address"`
	Limit     int    `json:"limit"`
	Signature string `json:"signature"`
}

// ToolDescriptor describes a callable tool
type ToolDescriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Arguments   []string `json:"arguments"`
}

// Tools lists the tool operations in registration order
var Tools = []ToolDescriptor{
	{
		Name:        ToolFetchWalletActivity,
		Description: "Fetch and classify the recent on-chain activity of a Solana wallet",
		Arguments:   []string{"address", "limit"},
	},
	{
		Name:        ToolAnalyzeWallet,
		Description: "Analyze a Solana wallet's DeFi profile, patterns, positions and strategies",
		Arguments:   []string{"address"},
	},
	{
		Name:        ToolGetTransactionDetails,
		Description: "Get the details of a Solana transaction",
		Arguments:   []string{"signature"},
	},
}

// ToolsHandler dispatches tool calls to the wallet and transaction handlers
type ToolsHandler struct {
	wallets      *WalletHandler
	transactions *TransactionHandler
	logger       *zap.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(wallets *WalletHandler, transactions *TransactionHandler, logger *zap.Logger) *ToolsHandler {
	return &ToolsHandler{
		wallets:      wallets,
		transactions: transactions,
		logger:       logger,
	}
}

// RegisterRoutes registers the tool routes
func (h *ToolsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tools", h.ListTools)
	r.Post("/tools/{name}", h.CallTool)
}

// ListTools handles GET /api/v1/tools
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"tools": Tools})
}

// CallTool handles POST /api/v1/tools/{name}
func (h *ToolsHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var args ToolArguments
	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid tool arguments")
			return
		}
	}

	h.logger.Debug("Tool call", zap.String("tool", name))

	var (
		status   int
		response ToolResponse
	)
	switch name {
	case ToolFetchWalletActivity:
		status, response = h.wallets.fetchActivity(r.Context(), args.Address, args.Limit)
	case ToolAnalyzeWallet:
		status, response = h.wallets.analyze(r.Context(), args.Address)
	case ToolGetTransactionDetails:
		status, response = h.transactions.details(r.Context(), args.Signature)
	default:
		respondError(w, http.StatusNotFound, "Unknown tool: "+name)
		return
	}

	respondJSON(w, status, response)
}
