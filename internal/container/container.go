package container

import (
	"context"
	"fmt"
	"io"

	"datacleaner/adapters/datareadiness/coercer"
	"datacleaner/adapters/excel"
	"datacleaner/app"
	"datacleaner/internal"
	"datacleaner/internal/cleaning"
	"datacleaner/internal/config"
	"datacleaner/internal/profiling"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Reader *excel.DataReader
	Writer *excel.DataWriter

	// Pipeline stages
	Filler     *cleaning.MissingValueFiller
	Dedup      *cleaning.Deduplicator
	Dates      *cleaning.DateNormalizer
	Profiler   *profiling.DataProfiler
	Service    *app.CleaningService
	closeLogFn func() error
}

// New creates a container whose logger writes to w at the given level
func New(cfg *config.Config, level internal.LogLevel, w io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(level, w),
	}
	c.initAdapters()
	c.initPipeline()
	return c, nil
}

// NewWithLogFile opens the configured log file and builds the container on
// top of it. When the file cannot be opened, logging falls back to stdout.
func NewWithLogFile(cfg *config.Config, level internal.LogLevel) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	w, closeFn, openErr := internal.OpenLogFile(cfg.Logging.FilePath)
	c, err := New(cfg, level, w)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	c.closeLogFn = closeFn
	if openErr != nil {
		c.Logger.Warn("Cannot open log file %s (%v); logging to stdout only", cfg.Logging.FilePath, openErr)
	}
	return c, nil
}

func (c *Container) initAdapters() {
	readerCfg := excel.DefaultReaderConfig()
	readerCfg.SheetName = c.Config.Data.SheetName
	c.Reader = excel.NewDataReader(readerCfg, c.Logger)

	writerCfg := excel.DefaultWriterConfig()
	if c.Config.Data.SheetName != "" {
		writerCfg.SheetName = c.Config.Data.SheetName
	}
	c.Writer = excel.NewDataWriter(writerCfg, c.Logger)
}

func (c *Container) initPipeline() {
	parser := coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())

	c.Filler = cleaning.NewMissingValueFiller(c.Config.Cleaning.FallbackValue, c.Logger)
	c.Dedup = cleaning.NewDeduplicator(c.Logger)
	c.Dates = cleaning.NewDateNormalizer(c.Config.Cleaning.DatePatterns, parser, c.Logger)
	c.Profiler = profiling.NewDataProfiler(c.Logger)

	c.Service = app.NewCleaningService(app.CleaningDeps{
		Reader:   c.Reader,
		Writer:   c.Writer,
		Filler:   c.Filler,
		Dedup:    c.Dedup,
		Dates:    c.Dates,
		Profiler: c.Profiler,
		Logger:   c.Logger,
	})
}

// Shutdown releases the log file
func (c *Container) Shutdown(ctx context.Context) error {
	if c.closeLogFn != nil {
		fn := c.closeLogFn
		c.closeLogFn = nil
		return fn()
	}
	return nil
}
