package utils

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrTransport        = errors.New("network error")          // Wraps dial/TLS/timeout/body-read errors
	ErrHTTPStatus       = errors.New("http status")            // Followed by the numeric status code
	ErrFilesystem       = errors.New("file error")             // Wraps os errors
	ErrExtraction       = errors.New("page extraction failed") // Wraps page fetch/parse errors
	ErrRobotsDisallowed = errors.New("disallowed by robots.txt")
	ErrRequestCreation  = errors.New("failed to create HTTP request")
	ErrConfigValidation = errors.New("configuration validation error")
)

// FailureReason renders an error as the human-readable reason string carried
// by a failed download outcome. Sentinel-wrapped errors are already phrased
// for humans; anything else gets a generic prefix.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrTransport),
		errors.Is(err, ErrHTTPStatus),
		errors.Is(err, ErrFilesystem),
		errors.Is(err, ErrRobotsDisallowed):
		return err.Error()
	}
	return "error: " + err.Error()
}

// ErrorKind maps an error to a predefined category string for logging/metrics.
func ErrorKind(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrHTTPStatus):
		msg := err.Error()
		switch {
		case strings.HasSuffix(msg, " 404"):
			return "HTTP_404"
		case strings.HasSuffix(msg, " 403"):
			return "HTTP_403"
		case strings.HasSuffix(msg, " 429"):
			return "HTTP_429"
		}
		return "HTTP_Status"
	case errors.Is(err, ErrRobotsDisallowed):
		return "Policy_Robots"
	case errors.Is(err, ErrExtraction):
		return "Content_Extraction"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	case errors.Is(err, ErrFilesystem):
		if errors.Is(err, os.ErrPermission) {
			return "Filesystem_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Filesystem_NotExist"
		}
		return "Filesystem_Other"
	case errors.Is(err, ErrTransport):
		lower := strings.ToLower(err.Error())
		switch {
		case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline exceeded"):
			return "Network_Timeout"
		case strings.Contains(lower, "connection refused"):
			return "Network_ConnectionRefused"
		case strings.Contains(lower, "no such host"):
			return "Network_DNSLookup"
		case strings.Contains(lower, "tls"), strings.Contains(lower, "certificate"):
			return "Network_TLS"
		case strings.Contains(lower, "reset by peer"):
			return "Network_ConnectionReset"
		}
		return "Network_Other"
	}

	// --- Fallback checks for common underlying error types ---

	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Network_Timeout"
	}

	return "Unknown"
}
