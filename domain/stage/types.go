package stage

import (
	"time"
)

// StageName represents a named stage in the pipeline
type StageName string

// Predefined stage names, in execution order
const (
	StageLoad      StageName = "load"
	StageFill      StageName = "fill_missing"
	StageDedup     StageName = "deduplicate"
	StageNormalize StageName = "normalize_dates"
	StageWrite     StageName = "write"
)

// Pipeline lists the stages in the order they run
var Pipeline = []StageName{StageLoad, StageFill, StageDedup, StageNormalize, StageWrite}

// Result records the outcome of one stage
type Result struct {
	Name     StageName     `json:"name"`
	Duration time.Duration `json:"duration"`
	Affected int           `json:"affected"` // cells filled, rows removed, cells nulled...
}

// Timer measures a stage from creation to Done
type Timer struct {
	name  StageName
	start time.Time
}

// Start begins timing a stage
func Start(name StageName) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Done returns the stage result
func (t *Timer) Done(affected int) Result {
	return Result{Name: t.name, Duration: time.Since(t.start), Affected: affected}
}
