// Package source loads the regulatory body list from the contacts API and
// classifies the outcome into a cus.LoadResult.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/cus-report/internal/cus"
)

// Loader fetches and decodes the payload.
type Loader struct {
	fetcher cus.Fetcher
	url     string
	logger  *zap.Logger
}

// New constructs a Loader for url.
func New(fetcher cus.Fetcher, url string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, url: url, logger: logger}
}

// Load performs one GET and decodes the body. It never retries.
func (l *Loader) Load(ctx context.Context, runID string) cus.LoadResult {
	if l.fetcher == nil {
		return cus.LoadResult{Kind: cus.LoadTransportError, Err: errors.New("no fetcher configured")}
	}
	resp, err := l.fetcher.Fetch(ctx, cus.FetchRequest{
		RunID:   runID,
		URL:     l.url,
		Headers: http.Header{"Accept": {"application/json"}},
	})
	if err != nil {
		l.logger.Error("payload fetch failed", zap.String("run_id", runID), zap.String("url", l.url), zap.Error(err))
		return cus.LoadResult{Kind: cus.LoadTransportError, Err: fmt.Errorf("fetch payload: %w", err)}
	}
	l.logger.Debug("payload fetched",
		zap.String("run_id", runID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("duration", resp.Duration),
	)

	bodies, err := cus.Decode(resp.Body)
	switch {
	case errors.Is(err, cus.ErrEmptyResponse):
		l.logger.Warn("payload is empty", zap.String("run_id", runID))
		return cus.LoadResult{Kind: cus.LoadEmptyResponse, Response: resp, Err: err}
	case err != nil:
		l.logger.Error("payload decode failed", zap.String("run_id", runID), zap.Error(err))
		return cus.LoadResult{Kind: cus.LoadParseError, Response: resp, Err: err}
	}
	return cus.LoadResult{Kind: cus.LoadSuccess, Bodies: bodies, Response: resp}
}
