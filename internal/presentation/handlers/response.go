package handlers

import (
	"encoding/json"
	"net/http"
)

// ToolResponse is the envelope returned by every analytics endpoint
type ToolResponse struct {
	Success bool        `json:"success"`
	Report  string      `json:"report,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func success(report string, data interface{}) ToolResponse {
	return ToolResponse{Success: true, Report: report, Data: data}
}

func failure(message string) ToolResponse {
	return ToolResponse{Success: false, Error: message}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, failure(message))
}
