package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/cus-report/internal/clock/system"
	"github.com/JakeFAU/cus-report/internal/config"
	"github.com/JakeFAU/cus-report/internal/cus"
	collyfetcher "github.com/JakeFAU/cus-report/internal/fetcher/colly"
	"github.com/JakeFAU/cus-report/internal/hash/sha256"
	"github.com/JakeFAU/cus-report/internal/id/uuid"
	"github.com/JakeFAU/cus-report/internal/logging"
	"github.com/JakeFAU/cus-report/internal/pipeline"
	pubsubpublisher "github.com/JakeFAU/cus-report/internal/publisher/pubsub"
	"github.com/JakeFAU/cus-report/internal/source"
	"github.com/JakeFAU/cus-report/internal/storage/gcs"
	"github.com/JakeFAU/cus-report/internal/storage/local"
	memorystore "github.com/JakeFAU/cus-report/internal/storage/memory"
)

func runReport(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.development = cfg.Logging.Development

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	blobs, closeBlobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closeBlobs, "blob store", logger)

	publisher, closePublisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closePublisher, "publisher", logger)

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:   cfg.HTTP.UserAgent,
		Timeout:     cfg.Timeout(),
		MaxBodySize: cfg.HTTP.MaxBodyBytes,
	})

	runner := pipeline.New(pipeline.Deps{
		Loader:    source.New(fetcher, cfg.API.URL, logger.Named("source")),
		BlobStore: blobs,
		Publisher: publisher,
		Hasher:    sha256.New(),
		Clock:     system.New(loc),
		IDs:       uuid.New(),
		Console:   cmd.OutOrStdout(),
		Logger:    logger.Named("pipeline"),
	}, pipeline.Config{
		Region:         cfg.Report.RegionCode,
		Prefix:         cfg.Output.Prefix,
		FileName:       cfg.Output.FileName,
		Topic:          cfg.PubSub.TopicName,
		Application:    cmd.Root().Name(),
		PushgatewayURL: cfg.Metrics.PushgatewayURL,
	})

	logger.Info("report run started",
		zap.String("url", cfg.API.URL),
		zap.String("region", cfg.Report.RegionCode),
		zap.String("storage", cfg.Storage.Backend),
	)
	_, err = runner.Run(ctx)
	return err
}

func buildBlobStore(ctx context.Context, cfg config.Config) (cus.BlobStore, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendGCS:
		store, err := gcs.Dial(ctx, gcs.Config{Bucket: cfg.Storage.GCSBucket})
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs storage: %w", err)
		}
		return store, store, nil
	case config.BackendMemory:
		return memorystore.NewBlobStore(), nil, nil
	default:
		store, err := local.New(local.Config{BaseDir: cfg.Output.Dir})
		if err != nil {
			return nil, nil, fmt.Errorf("init local storage: %w", err)
		}
		return store, nil, nil
	}
}

func buildPublisher(ctx context.Context, cfg config.Config) (cus.Publisher, io.Closer, error) {
	if cfg.PubSub.TopicName == "" {
		return nil, nil, nil
	}
	pub, err := pubsubpublisher.Dial(ctx, pubsubpublisher.Config{
		ProjectID: cfg.PubSub.ProjectID,
		TopicID:   cfg.PubSub.TopicName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init pubsub publisher: %w", err)
	}
	return pub, pub, nil
}

func closeQuietly(c io.Closer, name string, logger *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("close failed", zap.String("component", name), zap.Error(err))
	}
}
