package cus

import (
	"net/http"
	"time"
)

// FetchRequest captures everything needed to fetch the payload.
type FetchRequest struct {
	RunID   string
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}
