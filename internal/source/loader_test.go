package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/cus-report/internal/cus"
	collyfetcher "github.com/JakeFAU/cus-report/internal/fetcher/colly"
)

type fakeFetcher struct {
	resp    cus.FetchResponse
	err     error
	request cus.FetchRequest
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, req cus.FetchRequest) (cus.FetchResponse, error) {
	f.calls++
	f.request = req
	if f.err != nil {
		return cus.FetchResponse{}, f.err
	}
	return f.resp, nil
}

func TestLoaderKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fetcher  *fakeFetcher
		wantKind cus.LoadKind
		wantLen  int
	}{
		{
			name:     "success",
			fetcher:  &fakeFetcher{resp: cus.FetchResponse{StatusCode: 200, Body: []byte(`{"cus":[{"code":"1"},{"code":"2"}]}`)}},
			wantKind: cus.LoadSuccess,
			wantLen:  2,
		},
		{
			name:     "empty body",
			fetcher:  &fakeFetcher{resp: cus.FetchResponse{StatusCode: 200}},
			wantKind: cus.LoadEmptyResponse,
		},
		{
			name:     "transport",
			fetcher:  &fakeFetcher{err: errors.New("dial tcp: refused")},
			wantKind: cus.LoadTransportError,
		},
		{
			name:     "malformed",
			fetcher:  &fakeFetcher{resp: cus.FetchResponse{StatusCode: 200, Body: []byte("not json")}},
			wantKind: cus.LoadParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader := New(tt.fetcher, "https://example.com/cus", zap.NewNop())
			got := loader.Load(context.Background(), "run-1")

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Len(t, got.Bodies, tt.wantLen)
			assert.Equal(t, 1, tt.fetcher.calls, "no retries")
			assert.Equal(t, "https://example.com/cus", tt.fetcher.request.URL)
			assert.Equal(t, "run-1", tt.fetcher.request.RunID)
			if tt.wantKind == cus.LoadSuccess {
				assert.NoError(t, got.Err)
			} else {
				assert.Error(t, got.Err)
			}
		})
	}
}

func TestLoaderEmptyWrapsSentinel(t *testing.T) {
	t.Parallel()

	loader := New(&fakeFetcher{resp: cus.FetchResponse{Body: []byte("null")}}, "u", nil)
	got := loader.Load(context.Background(), "run")
	require.Equal(t, cus.LoadEmptyResponse, got.Kind)
	assert.ErrorIs(t, got.Err, cus.ErrEmptyResponse)
}

func TestLoaderWithoutFetcher(t *testing.T) {
	t.Parallel()

	got := New(nil, "u", nil).Load(context.Background(), "run")
	assert.Equal(t, cus.LoadTransportError, got.Kind)
	assert.Error(t, got.Err)
}

func TestLoaderOverCollyFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind cus.LoadKind
	}{
		{name: "no content", status: http.StatusNoContent, wantKind: cus.LoadEmptyResponse},
		{name: "empty ok", status: http.StatusOK, wantKind: cus.LoadEmptyResponse},
		{name: "payload", status: http.StatusOK, body: `{"cus":[{"code":"001","region":"18"}]}`, wantKind: cus.LoadSuccess},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantKind: cus.LoadTransportError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			fetcher := collyfetcher.New(collyfetcher.Config{Timeout: 5 * time.Second})
			got := New(fetcher, srv.URL, zap.NewNop()).Load(context.Background(), "run-1")
			require.Equal(t, tt.wantKind, got.Kind, "err: %v", got.Err)
			if tt.wantKind == cus.LoadEmptyResponse {
				assert.ErrorIs(t, got.Err, cus.ErrEmptyResponse)
			}
		})
	}
}
