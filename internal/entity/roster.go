package entity

// RosterEntry is one known participant. Names are stored trimmed; the roster
// is populated out-of-band and read-only while the pipeline runs.
type RosterEntry struct {
	ID   int64
	Name string
}
