package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sautiwatch/sautiwatch/internal/client"
	"github.com/sautiwatch/sautiwatch/internal/models"
	"github.com/sautiwatch/sautiwatch/internal/sentiment"
)

const (
	RESULT_EXPORT_FILENAME = "sentiment_analysis.csv"
	LOG_EXPORT_FILENAME    = "mongo_sentiment_logs.csv"
)

type analyzeResponse struct {
	Result *models.AnalysisResult `json:"result"`
	Series [4]float64             `json:"series"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}
	if !req.Stakeholder.Valid() {
		writeError(w, http.StatusBadRequest, "unknown stakeholder category")
		return
	}

	req.Text = sentiment.CleanComment(req.Text)

	result, err := s.client.Analyze(r.Context(), req)
	if err != nil {
		var netErr *client.NetworkError
		var decErr *client.DecodeError
		switch {
		case errors.Is(err, client.ErrAnalysisInFlight):
			writeError(w, http.StatusConflict, "an analysis is already in flight")
		case errors.As(err, &netErr), errors.As(err, &decErr):
			slog.Error("[Server] Analysis failed",
				slog.String("error", err.Error()))
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Result: result,
		Series: client.NormalizedSeries(result),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result := s.client.CurrentResult()
	if result == nil {
		writeError(w, http.StatusNotFound, "no analysis result to export")
		return
	}

	csv, err := client.ToCSV(result)
	if err != nil {
		var missing *client.MissingFieldError
		if errors.As(err, &missing) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	serveCSV(w, RESULT_EXPORT_FILENAME, []byte(csv))
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	blob, err := s.client.FetchLogs(r.Context())
	if err != nil {
		slog.Error("[Server] Log export failed",
			slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	serveCSV(w, LOG_EXPORT_FILENAME, blob)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serveCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[Server] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
