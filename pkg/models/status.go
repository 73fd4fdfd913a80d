package models

// CandidateStatus represents the processing state of an image candidate
type CandidateStatus string

const (
	StatusUnset      CandidateStatus = ""           // Zero value = unset/unknown
	StatusPending    CandidateStatus = "pending"    // Candidate queued, not yet dispatched
	StatusFetching   CandidateStatus = "fetching"   // Fetch in flight
	StatusDownloaded CandidateStatus = "downloaded" // Stored on disk (terminal)
	StatusFiltered   CandidateStatus = "filtered"   // Rejected by the filter policy (terminal)
	StatusFailed     CandidateStatus = "failed"     // Transport/status/storage failure (terminal)
)

// String implements fmt.Stringer for logging
func (s CandidateStatus) String() string {
	if s == "" {
		return "unset"
	}
	return string(s)
}

// IsValid returns true if the status is a known operational value
func (s CandidateStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusFetching, StatusDownloaded, StatusFiltered, StatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true for states a candidate never leaves
func (s CandidateStatus) IsTerminal() bool {
	switch s {
	case StatusDownloaded, StatusFiltered, StatusFailed:
		return true
	}
	return false
}
