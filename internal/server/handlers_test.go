package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sautiwatch/sautiwatch/config"
	"github.com/sautiwatch/sautiwatch/internal/client"
)

const mockAnalysisBody = `[{
	"vader":    {"label": "NEGATIVE", "compound": -0.6},
	"textblob": {"label": "NEGATIVE", "polarity": -0.4},
	"bert":     {"label": "NEGATIVE"},
	"swahili":  {"label": "NEGATIVE", "score": -0.5}
}]`

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	rc := client.New(up.URL+"/analyze", up.URL+"/logs")
	cfg := &config.Config{
		AnalysisEndpoint: up.URL + "/analyze",
		LogsEndpoint:     up.URL + "/logs",
		ServerAddr:       ":0",
		AppEnv:           "test",
	}

	return New(cfg, rc)
}

func analyzeBody() *strings.Reader {
	return strings.NewReader(`{"text":"Traffic is unbearable now","stakeholder":"local_citizen"}`)
}

func TestHandleAnalyze(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockAnalysisBody))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", analyzeBody())
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, [4]float64{-0.6, -0.4, -1, -0.5}, resp.Series)
	assert.Equal(t, "NEGATIVE", resp.Result.BERT.Label)
}

func TestHandleAnalyzeValidation(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":"","stakeholder":"local_citizen"}`},
		{"unknown stakeholder", `{"text":"hello","stakeholder":"tourist"}`},
		{"malformed json", `{"text":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleAnalyzeUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", analyzeBody())
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleExport(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockAnalysisBody))
	})

	// Nothing analyzed yet
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", analyzeBody())
	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sentiment_analysis.csv")

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Model,Label,Score", lines[0])
}

func TestHandleExportIncompleteResult(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"vader": {"label": "NEGATIVE", "compound": -0.6}}]`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", analyzeBody())
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleLogs(t *testing.T) {
	csv := "timestamp,platform,text,label\n"
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logs" {
			w.Write([]byte(csv))
			return
		}
		http.NotFound(w, r)
	})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mongo_sentiment_logs.csv")
	assert.Equal(t, csv, rec.Body.String())
}

func TestHandleLogsUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mongo unavailable", http.StatusServiceUnavailable)
	})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
