package entity

import (
	"time"

	"github.com/dtrajkov/attendance-tracker/constants"
)

// JobRecord tracks one submitted sheet image through the pipeline.
//
// Status only moves processing -> finished or processing -> failed, and
// ReportPath is non-empty exactly when Status is finished. The record is
// created by the submission handler and mutated once, by the pipeline, at
// completion.
type JobRecord struct {
	ID              int64
	SubmittedAt     time.Time
	SourceImagePath string
	ReportPath      string
	Status          constants.JobStatus
	ErrorMessage    string
	FinishedAt      *time.Time
}

// NewJobRecord builds an unsaved record for a freshly stored sheet image.
// The ID is assigned by the store on insert.
func NewJobRecord(sourceImagePath string) *JobRecord {
	return &JobRecord{
		SubmittedAt:     time.Now().UTC(),
		SourceImagePath: sourceImagePath,
		Status:          constants.JobStatusProcessing,
	}
}
