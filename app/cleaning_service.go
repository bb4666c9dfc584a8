package app

import (
	"context"
	"fmt"
	"time"

	"datacleaner/domain/core"
	"datacleaner/domain/stage"
	"datacleaner/domain/table"
	"datacleaner/internal"
	"datacleaner/internal/errors"
	"datacleaner/ports"
)

// CleaningService runs the load, fill, dedup, normalize, write pipeline
type CleaningService struct {
	reader   ports.TableReader
	writer   ports.TableWriter
	filler   ports.MissingValueFiller
	dedup    ports.Deduplicator
	dates    ports.DateNormalizer
	profiler ports.ProfilerPort
	logger   *internal.Logger
}

// CleaningDeps groups the collaborators of a CleaningService
type CleaningDeps struct {
	Reader   ports.TableReader
	Writer   ports.TableWriter
	Filler   ports.MissingValueFiller
	Dedup    ports.Deduplicator
	Dates    ports.DateNormalizer
	Profiler ports.ProfilerPort
	Logger   *internal.Logger
}

// RunResult summarizes one pipeline run
type RunResult struct {
	RunID             core.RunID     `json:"run_id"`
	Input             string         `json:"input"`
	Output            string         `json:"output"`
	RowsIn            int            `json:"rows_in"`
	RowsOut           int            `json:"rows_out"`
	Columns           int            `json:"columns"`
	Filled            int            `json:"filled"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	UnparseableDates  int            `json:"unparseable_dates"`
	Stages            []stage.Result `json:"stages"`
	Duration          time.Duration  `json:"duration"`
}

// NewCleaningService creates a cleaning service
func NewCleaningService(deps CleaningDeps) *CleaningService {
	logger := deps.Logger
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &CleaningService{
		reader:   deps.Reader,
		writer:   deps.Writer,
		filler:   deps.Filler,
		dedup:    deps.Dedup,
		dates:    deps.Dates,
		profiler: deps.Profiler,
		logger:   logger,
	}
}

// Run cleans the file at input and writes the result to output. Stages run
// in stage.Pipeline order; nothing is written unless every earlier stage
// succeeded. Every returned error carries an error code.
func (s *CleaningService) Run(ctx context.Context, input, output string) (result *RunResult, err error) {
	started := time.Now()
	result = &RunResult{RunID: core.NewRunID(), Input: input, Output: output}

	defer func() {
		if r := recover(); r != nil {
			err = errors.UnexpectedError(fmt.Errorf("panic: %v", r))
			s.logger.Error("Unexpected error during data cleaning: %v", err)
		}
		if err != nil && !errors.IsAppError(err) {
			err = errors.UnexpectedError(err)
		}
		result.Duration = time.Since(started)
	}()

	s.logger.Info("=== Data cleaning started (run %s) ===", result.RunID)
	s.logger.Info("Input: %s", input)
	s.logger.Info("Output: %s", output)

	if err := s.writer.CheckPath(output); err != nil {
		s.logger.Error("Invalid output path %s: %v", output, err)
		return result, err
	}

	var t *table.Table
	for _, name := range stage.Pipeline {
		if name != stage.StageLoad {
			if err := ctx.Err(); err != nil {
				s.logger.Error("Data cleaning canceled before stage %s: %v", name, err)
				return result, errors.Wrapf(err, "canceled before stage %s", name)
			}
		}

		timer := stage.Start(name)
		affected, loaded, err := s.runStage(ctx, name, t, result)
		if err != nil {
			return result, err
		}
		if loaded != nil {
			t = loaded
		}
		result.Stages = append(result.Stages, timer.Done(affected))
	}

	result.RowsOut = t.NumRows()
	s.logger.Info("=== Data cleaning completed successfully in %s ===", time.Since(started).Round(time.Millisecond))
	return result, nil
}

// runStage executes one stage. The load stage returns the table it read;
// the others work on t in place.
func (s *CleaningService) runStage(ctx context.Context, name stage.StageName, t *table.Table, result *RunResult) (int, *table.Table, error) {
	switch name {
	case stage.StageLoad:
		loaded, err := s.reader.ReadTable(ctx, result.Input)
		if err != nil {
			s.logger.Error("Data cleaning failed while loading %s: %v", result.Input, err)
			return 0, nil, err
		}
		result.RowsIn = loaded.NumRows()
		result.Columns = loaded.NumColumns()
		s.logProfile("Original", loaded)
		return loaded.NumRows(), loaded, nil

	case stage.StageFill:
		for _, fr := range s.filler.Fill(t) {
			result.Filled += fr.Filled
		}
		return result.Filled, nil, nil

	case stage.StageDedup:
		removed, err := s.dedup.Deduplicate(t)
		if err != nil {
			s.logger.Error("Failed to remove duplicates: %v", err)
			return 0, nil, errors.Wrapf(err, "stage %s", name)
		}
		result.DuplicatesRemoved = removed
		return removed, nil, nil

	case stage.StageNormalize:
		for _, dr := range s.dates.Normalize(t) {
			result.UnparseableDates += dr.Unparseable
		}
		s.logProfile("Cleaned", t)
		return result.UnparseableDates, nil, nil

	case stage.StageWrite:
		if err := s.writer.WriteTable(ctx, result.Output, t); err != nil {
			s.logger.Error("Data cleaning failed while saving %s: %v", result.Output, err)
			return 0, nil, err
		}
		s.logger.Info("Data saved successfully to %s", result.Output)
		return t.NumRows(), nil, nil
	}
	return 0, nil, fmt.Errorf("unknown stage %q", name)
}

func (s *CleaningService) logProfile(label string, t *table.Table) {
	if s.profiler == nil {
		return
	}
	s.profiler.LogProfile(label, s.profiler.ProfileTable(t))
}
