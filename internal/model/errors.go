package model

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrorCode is the machine-readable classification of a pipeline failure
type ErrorCode string

const (
	CodeInputInvalid          ErrorCode = "input_invalid"           // Bad or unreachable source, not retried
	CodeTranscriptUnavailable ErrorCode = "transcript_unavailable"  // No captions; terminal, suggest pasting text
	CodeExtractionParse       ErrorCode = "extraction_parse_failure" // Unusable structure after repair retry
	CodeAssetGeneration       ErrorCode = "asset_generation_failure" // One asset failed after its retry budget
	CodeGenerationInProgress  ErrorCode = "generation_in_progress"  // Single-flight lock already held
	CodeInternal              ErrorCode = "internal_error"          // Transport/auth failures, sanitized
)

// PipelineError is a coded error with a redacted human-readable detail
type PipelineError struct {
	Code   ErrorCode
	Detail string
	Err    error // Wrapped cause, may be nil
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return string(e.Code)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewError creates a coded error, redacting secrets from the detail string
func NewError(code ErrorCode, detail string, cause error) *PipelineError {
	return &PipelineError{
		Code:   code,
		Detail: Redact(detail),
		Err:    cause,
	}
}

// Errorf creates a coded error with a formatted, redacted detail
func Errorf(code ErrorCode, format string, args ...interface{}) *PipelineError {
	return NewError(code, fmt.Sprintf(format, args...), nil)
}

// CodeOf extracts the error code from an error chain, or CodeInternal
func CodeOf(err error) ErrorCode {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeInternal
}

// IsCode reports whether the error chain carries the given code
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Key material must never leak into user-facing error text
var secretPattern = regexp.MustCompile(`(?i)(sk-[a-zA-Z0-9_-]{8,}|bearer\s+\S+|api[_-]?key["':=\s]+\S+)`)

// Redact strips anything that looks like a credential from the string
func Redact(s string) string {
	return secretPattern.ReplaceAllString(s, "[redacted]")
}
