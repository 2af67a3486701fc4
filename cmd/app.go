package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
	"github.com/ginjaninja78/booking-invoicer/internal/converter"
	"github.com/ginjaninja78/booking-invoicer/internal/logging"
	"github.com/ginjaninja78/booking-invoicer/internal/sink"
	"github.com/ginjaninja78/booking-invoicer/internal/storage/s3"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
	"github.com/ginjaninja78/booking-invoicer/internal/validation"
	"github.com/ginjaninja78/booking-invoicer/pkg/utils"
)

// application bundles what every command needs after startup.
type application struct {
	cfg    *config.AppConfig
	logger *logrus.Logger
	files  *utils.FileManager
	closer io.Closer
}

// loadApplication reads the application config and sets up logging.
func loadApplication() (*application, error) {
	cfg, err := config.LoadAppConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		File:    cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return &application{
		cfg:    cfg,
		logger: logger,
		files:  utils.NewFileManager(cfg.IncomingDir, cfg.ProcessedDir, cfg.PayloadsDir, cfg.ReportsDir),
		closer: closer,
	}, nil
}

func (a *application) Close() {
	a.closer.Close()
}

// loadPipelineInputs loads the booking settings and payload template and
// validates them.
//
// RETURNS:
//   - The settings and template.
//   - The validation result, also when it reports problems.
//   - An error if a file cannot be loaded at all.
func (a *application) loadPipelineInputs() (*config.Settings, *types.Document, *validation.ValidationResult, error) {
	settings, err := config.LoadSettings(a.cfg.SettingsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	template, err := config.LoadTemplate(a.cfg.TemplateFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load template: %w", err)
	}

	return settings, template, validation.Validate(settings, template), nil
}

// newProcessor wires the batch pipeline: local payload files, an optional S3
// mirror, and the HTTP submitter.
func (a *application) newProcessor(ctx context.Context, settings *config.Settings, template *types.Document) (*converter.Processor, error) {
	var store sink.PayloadStore = sink.NewFileStore(a.cfg.PayloadsDir)

	if a.cfg.S3.Enabled {
		objects, err := s3.NewS3Client(ctx, &a.cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to set up payload mirror: %w", err)
		}
		store = sink.NewMirrorStore(store, objects, a.cfg.S3.Bucket, a.cfg.S3.Prefix, a.logger)
		a.logger.WithFields(logrus.Fields{
			"bucket": a.cfg.S3.Bucket,
			"prefix": a.cfg.S3.Prefix,
		}).Info("Mirroring payloads to S3")
	}

	delivery := sink.New(store, sink.NewHTTPSubmitter(a.cfg.HTTPTimeout), settings, a.logger)
	return converter.New(a.files, converter.NewTransformer(settings, template), delivery, a.logger), nil
}
