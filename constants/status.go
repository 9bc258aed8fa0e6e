package constants

// JobStatus is the canonical status for rows in job_records.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusProcessing JobStatus = "processing" // pipeline queued or running
	JobStatusFinished   JobStatus = "finished"   // terminal success, report written
	JobStatusFailed     JobStatus = "failed"     // terminal failure
)

// Terminal reports whether no further transition is allowed from s.
func (s JobStatus) Terminal() bool {
	return s == JobStatusFinished || s == JobStatusFailed
}
