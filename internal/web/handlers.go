package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/csvloader/internal/ingest"
	"github.com/JonMunkholm/csvloader/internal/logging"
	"github.com/google/uuid"
)

// IngestRequest is the JSON body for POST /api/ingest.
type IngestRequest struct {
	CsvURL      string `json:"csvUrl"`
	TableName   string `json:"tableName"`
	CreateTable bool   `json:"createTable"`
}

// IngestResponse wraps the pipeline result with the ingestion ID assigned to
// this request for log correlation.
type IngestResponse struct {
	IngestID string `json:"ingestId"`
	ingest.Result
}

// handleIngest runs one CSV ingestion.
//
// A completed ingestion always returns 200: failures are reported in-band
// through the result's success flag and message, so the caller can read the
// partial row count no matter what went wrong. 400 is reserved for request
// bodies that cannot be decoded at all.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ingestID := uuid.New().String()
	logger := logging.WithFields(r.Context(),
		"ingest_id", ingestID,
		"table", req.TableName,
	)
	logger.Info("ingestion requested", "url", req.CsvURL, "create_table", req.CreateTable)

	result := s.service.Ingest(r.Context(), req.CsvURL, req.TableName, req.CreateTable)

	writeJSON(w, IngestResponse{IngestID: ingestID, Result: result})
}

// handleHealth reports liveness and backend reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.exec.Ping(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
