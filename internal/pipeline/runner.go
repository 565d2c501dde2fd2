// Package pipeline runs one report end to end: load the payload, select and
// count the region's bodies, render the document, store it, then notify.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/cus-report/internal/cus"
	"github.com/JakeFAU/cus-report/internal/docx"
	"github.com/JakeFAU/cus-report/internal/metrics"
	"github.com/JakeFAU/cus-report/internal/report"
)

// Console messages.
const (
	MsgRendering     = "Формируется документ. Это займёт некоторое время."
	MsgDone          = "Документ успешно сформирован: %s"
	MsgEmptyResponse = "Ошибка получения JSON"
)

// fileStampLayout is used in generated document names.
const fileStampLayout = "20060102-150405"

// Loader produces the classified payload for a run.
type Loader interface {
	Load(ctx context.Context, runID string) cus.LoadResult
}

// Config controls Runner behavior.
type Config struct {
	Region      string
	Prefix      string
	FileName    string
	Topic       string
	Application string
	// PushgatewayURL enables pushing the run's metrics when set.
	PushgatewayURL string
}

// Deps are the collaborators a Runner drives.
type Deps struct {
	Loader    Loader
	BlobStore cus.BlobStore
	Publisher cus.Publisher
	Hasher    cus.Hasher
	Clock     cus.Clock
	IDs       cus.IDGenerator
	Console   io.Writer
	Logger    *zap.Logger
}

// Summary describes a completed run.
type Summary struct {
	RunID       string
	Region      string
	Fetched     int
	Selected    int
	Counts      []cus.TypeCount
	Path        string
	URI         string
	Hash        string
	Bytes       int
	MessageID   string
	GeneratedAt time.Time
}

// Notification is the completion message published after the document is stored.
type Notification struct {
	RunID       string          `json:"run_id"`
	Region      string          `json:"region"`
	Total       int             `json:"total"`
	Counts      []cus.TypeCount `json:"counts"`
	BlobURI     string          `json:"blob_uri"`
	Hash        string          `json:"hash"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Runner executes report runs.
type Runner struct {
	deps Deps
	cfg  Config
}

// New constructs a Runner.
func New(deps Deps, cfg Config) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Console == nil {
		deps.Console = io.Discard
	}
	if cfg.Application == "" {
		cfg.Application = "cusreport"
	}
	return &Runner{deps: deps, cfg: cfg}
}

// Run performs one report run. On an empty API response it prints the
// failure line and returns cus.ErrEmptyResponse; nothing is stored unless
// the document rendered completely.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.deps.Loader == nil || r.deps.BlobStore == nil || r.deps.Clock == nil || r.deps.IDs == nil {
		return Summary{}, fmt.Errorf("runner is missing required dependencies")
	}
	runID, err := r.deps.IDs.NewID()
	if err != nil {
		return Summary{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := r.deps.Logger.With(zap.String("run_id", runID), zap.String("region", r.cfg.Region))
	run := metrics.NewRun()

	summary, outcome, err := r.execute(ctx, runID, run, logger)
	run.ObserveOutcome(outcome)
	r.pushMetrics(ctx, run, logger)

	if err != nil {
		logger.Error("report run failed", zap.String("outcome", outcome), zap.Error(err))
		return summary, err
	}
	logger.Info("report run completed",
		zap.Int("selected", summary.Selected),
		zap.String("uri", summary.URI),
		zap.String("hash", summary.Hash),
	)
	return summary, nil
}

func (r *Runner) execute(ctx context.Context, runID string, run *metrics.Run, logger *zap.Logger) (Summary, string, error) {
	summary := Summary{RunID: runID, Region: r.cfg.Region}

	result := r.deps.Loader.Load(ctx, runID)
	if result.Response.StatusCode != 0 {
		run.ObserveFetch(len(result.Response.Body), result.Response.Duration)
	}
	switch result.Kind {
	case cus.LoadSuccess:
	case cus.LoadEmptyResponse:
		r.say(MsgEmptyResponse)
		return summary, metrics.OutcomeEmptyResponse, cus.ErrEmptyResponse
	case cus.LoadParseError:
		return summary, metrics.OutcomeParseError, fmt.Errorf("parse payload: %w", result.Err)
	default:
		return summary, metrics.OutcomeTransportError, fmt.Errorf("load payload: %w", result.Err)
	}

	generatedAt := r.deps.Clock.Now()
	data := report.NewData(runID, r.cfg.Region, generatedAt, result.Bodies)
	run.ObserveSelection(len(result.Bodies), data.Counts)
	summary.Fetched = len(result.Bodies)
	summary.Selected = len(data.Bodies)
	summary.Counts = data.Counts
	summary.GeneratedAt = generatedAt
	logger.Debug("bodies selected", zap.Int("fetched", summary.Fetched), zap.Int("selected", summary.Selected))

	r.say(MsgRendering)
	started := time.Now()
	doc, err := report.Render(data, r.cfg.Application)
	run.ObserveStage("render", time.Since(started))
	if err != nil {
		return summary, metrics.OutcomeRenderError, fmt.Errorf("render report: %w", err)
	}
	run.ObserveDocument(len(doc))
	summary.Bytes = len(doc)

	if r.deps.Hasher != nil {
		hash, err := r.deps.Hasher.Hash(doc)
		if err != nil {
			return summary, metrics.OutcomeRenderError, fmt.Errorf("hash document: %w", err)
		}
		summary.Hash = hash
	}

	summary.Path = r.objectPath(generatedAt)
	started = time.Now()
	uri, err := r.deps.BlobStore.PutObject(ctx, summary.Path, docx.ContentType, bytes.NewReader(doc))
	run.ObserveStage("store", time.Since(started))
	if err != nil {
		return summary, metrics.OutcomeStoreError, fmt.Errorf("store document: %w", err)
	}
	summary.URI = uri

	if r.cfg.Topic != "" && r.deps.Publisher != nil {
		started = time.Now()
		msgID, err := r.deps.Publisher.Publish(ctx, r.cfg.Topic, Notification{
			RunID:       runID,
			Region:      r.cfg.Region,
			Total:       summary.Selected,
			Counts:      summary.Counts,
			BlobURI:     uri,
			Hash:        summary.Hash,
			GeneratedAt: generatedAt,
		})
		run.ObserveStage("publish", time.Since(started))
		if err != nil {
			return summary, metrics.OutcomePublishError, fmt.Errorf("publish notification: %w", err)
		}
		summary.MessageID = msgID
	}

	r.say(fmt.Sprintf(MsgDone, uri))
	return summary, metrics.OutcomeSuccess, nil
}

// objectPath joins the configured prefix and the document file name.
func (r *Runner) objectPath(generatedAt time.Time) string {
	name := r.cfg.FileName
	if name == "" {
		name = fmt.Sprintf("cus-%s-%s.docx", r.cfg.Region, generatedAt.Format(fileStampLayout))
	}
	prefix := strings.Trim(r.cfg.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func (r *Runner) pushMetrics(ctx context.Context, run *metrics.Run, logger *zap.Logger) {
	if r.cfg.PushgatewayURL == "" {
		return
	}
	if err := run.Push(ctx, r.cfg.PushgatewayURL, r.cfg.Region); err != nil {
		logger.Warn("metrics push failed", zap.String("pushgateway", r.cfg.PushgatewayURL), zap.Error(err))
	}
}

func (r *Runner) say(line string) {
	if _, err := fmt.Fprintln(r.deps.Console, line); err != nil {
		r.deps.Logger.Debug("console write failed", zap.Error(err))
	}
}
