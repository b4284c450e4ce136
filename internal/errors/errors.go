package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// SpecMissing indicates the change specification file was not found
	SpecMissing ErrorCode = "SPEC_MISSING"
	// SpecInvalid indicates the change specification is unreadable or malformed
	SpecInvalid ErrorCode = "SPEC_INVALID"
	// ProviderUnavailable indicates the code structure provider failed
	ProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// ContractNotFound indicates a referenced contract document doesn't exist
	ContractNotFound ErrorCode = "CONTRACT_NOT_FOUND"
	// ContractInvalid indicates a contract document has an unrecognized shape
	ContractInvalid ErrorCode = "CONTRACT_INVALID"
	// ContractCompliance indicates one or more affected contracts failed validation
	ContractCompliance ErrorCode = "CONTRACT_COMPLIANCE"
	// HistoryUnavailable indicates the run history store could not be opened
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// RadiusError represents a radius error with code, message, and suggestions
type RadiusError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new RadiusError
func New(code ErrorCode, message string, cause error) *RadiusError {
	return &RadiusError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *RadiusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *RadiusError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *RadiusError) WithDetails(details interface{}) *RadiusError {
	e.Details = details
	return e
}

// IsFatal reports whether the code aborts the current operation.
// Every code in the taxonomy is fatal; tolerance mismatches are logged
// warnings and never reach this package.
func IsFatal(code ErrorCode) bool {
	return true
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	SpecMissing: {
		{
			Type:        RunCommand,
			Command:     "radius init",
			Safe:        true,
			Description: "Create a starter change specification and config",
		},
	},
	SpecInvalid: {
		{
			Type:        OpenDocs,
			URL:         "https://github.com/radius-dev/radius#change-specifications",
			Description: "Review the change specification format",
		},
	},
	ProviderUnavailable: {
		{
			Type:        RunCommand,
			Command:     "radius init",
			Safe:        true,
			Description: "Check provider configuration in .radius/config.json",
		},
	},
	ContractNotFound: {
		{
			Type:        RunCommand,
			Command:     "ls .radius/contracts",
			Safe:        true,
			Description: "List available contract documents",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
