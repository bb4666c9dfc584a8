package ports

import (
	"datacleaner/domain/report"
	"datacleaner/domain/table"
)

// MissingValueFiller imputes nulls in place
type MissingValueFiller interface {
	Fill(t *table.Table) []report.FillReport
}

// Deduplicator removes repeated rows in place
type Deduplicator interface {
	Deduplicate(t *table.Table) (int, error)
}

// DateNormalizer converts date-like columns in place
type DateNormalizer interface {
	Normalize(t *table.Table) []report.DateReport
}

// ProfilerPort summarizes a table for logging
type ProfilerPort interface {
	ProfileTable(t *table.Table) report.TableProfile
	LogProfile(label string, profile report.TableProfile)
}
