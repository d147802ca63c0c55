package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DataResponse is the envelope for every successful single-record response.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ListResponse is the envelope for successful list responses, carrying the
// page item count and the pagination metadata alongside the records.
type ListResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination interface{} `json:"pagination"`
	Data       interface{} `json:"data"`
}

// ErrorResponse is the uniform error body: a status label ("fail" for
// client-caused failures, "error" for server-side ones), success:false, and
// a client-safe message. Raw error detail never appears here, only in logs.
type ErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope around the given record.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	RespondWithJSON(w, r, status, DataResponse{Success: true, Data: data})
}
