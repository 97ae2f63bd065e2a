package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sautiwatch/sautiwatch/internal/models"
)

const USER_AGENT = "sautiwatch-client/1.0 (+https://github.com/sautiwatch/sautiwatch)"

// ResultClient owns the interaction lifecycle with the remote analysis
// service: one in-flight analysis request at a time, a single current
// result replaced wholesale on each success, and derived views over it.
// Analyze and FetchLogs touch disjoint state and may run concurrently.
type ResultClient struct {
	httpClient       *http.Client
	analysisEndpoint string
	logsEndpoint     string

	busy atomic.Bool

	mu      sync.RWMutex
	current *models.AnalysisResult
}

func New(analysisEndpoint, logsEndpoint string) *ResultClient {
	var timeout time.Duration
	env := os.Getenv("APP_ENV")
	if env == "production" {
		timeout = 10 * time.Second
	} else {
		timeout = 60 * time.Second
	}

	slog.Info("[ResultClient] Initializing client",
		slog.Duration("timeout", timeout),
		slog.String("env", env))

	return &ResultClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		analysisEndpoint: analysisEndpoint,
		logsEndpoint:     logsEndpoint,
	}
}

// Busy reports whether an analysis request is pending. The triggering
// surface uses it to disable submission while one is in flight.
func (c *ResultClient) Busy() bool {
	return c.busy.Load()
}

// CurrentResult returns the last successful analysis, or nil before the
// first one completes.
func (c *ResultClient) CurrentResult() *models.AnalysisResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Analyze submits one text with its stakeholder category and, on
// success, replaces the current result wholesale. One best-effort
// attempt: no retry, the caller decides whether to resubmit. A failed
// call leaves the previous result untouched.
func (c *ResultClient) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrAnalysisInFlight
	}
	defer c.busy.Store(false)

	start := time.Now()
	slog.Info("[ResultClient] Requesting sentiment analysis",
		slog.String("stakeholder", string(req.Stakeholder)),
		slog.Int("text_length", len(req.Text)))

	payload := models.AnalysisBatchRequest{
		Texts:       []string{req.Text},
		Stakeholder: string(req.Stakeholder),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analysisEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", USER_AGENT)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("[ResultClient] Analysis request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, &NetworkError{Op: "POST", URL: c.analysisEndpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("[ResultClient] Analysis service returned non-success status",
			slog.Int("status", resp.StatusCode))
		return nil, &NetworkError{Op: "POST", URL: c.analysisEndpoint, Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "POST", URL: c.analysisEndpoint, Err: err}
	}

	var batch models.AnalysisBatchResponse
	if err := json.Unmarshal(respBody, &batch); err != nil {
		slog.Error("[ResultClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(respBody))
		return nil, &DecodeError{URL: c.analysisEndpoint, Err: err}
	}

	if len(batch) == 0 {
		return nil, &DecodeError{URL: c.analysisEndpoint, Err: fmt.Errorf("empty result batch")}
	}

	result := batch[0]

	c.mu.Lock()
	c.current = &result
	c.mu.Unlock()

	slog.Info("[ResultClient] Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))

	return &result, nil
}

// FetchLogs pulls the historical log export from the logs endpoint and
// relays the bytes unchanged. Independent of Analyze and the current
// result.
func (c *ResultClient) FetchLogs(ctx context.Context) (models.LogExport, error) {
	slog.Info("[ResultClient] Requesting log export")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.logsEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", USER_AGENT)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("[ResultClient] Log export request failed",
			slog.String("error", err.Error()))
		return nil, &NetworkError{Op: "GET", URL: c.logsEndpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "GET", URL: c.logsEndpoint, Status: resp.StatusCode}
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "GET", URL: c.logsEndpoint, Err: err}
	}

	slog.Info("[ResultClient] Log export request successful",
		slog.Int("bytes", len(blob)))

	return models.LogExport(blob), nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
