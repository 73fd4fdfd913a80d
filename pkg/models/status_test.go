package models

import "testing"

func TestCandidateStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   CandidateStatus
		expected string
	}{
		{"Unset", StatusUnset, "unset"},
		{"Pending", StatusPending, "pending"},
		{"Fetching", StatusFetching, "fetching"},
		{"Downloaded", StatusDownloaded, "downloaded"},
		{"Filtered", StatusFiltered, "filtered"},
		{"Failed", StatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCandidateStatus_IsValid(t *testing.T) {
	valid := []CandidateStatus{StatusPending, StatusFetching, StatusDownloaded, StatusFiltered, StatusFailed}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}

	invalid := []CandidateStatus{StatusUnset, CandidateStatus("bogus")}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestCandidateStatus_IsTerminal(t *testing.T) {
	terminal := []CandidateStatus{StatusDownloaded, StatusFiltered, StatusFailed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%q) = false, want true", s)
		}
	}

	nonTerminal := []CandidateStatus{StatusUnset, StatusPending, StatusFetching}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%q) = true, want false", s)
		}
	}
}
