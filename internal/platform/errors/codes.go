// Package errors provides structured error handling for the trainer services.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Player input errors
	CodeInvalidAction Code = "INVALID_ACTION"

	// Round state errors
	CodeRoundOver     Code = "ROUND_OVER"
	CodeStaleDecision Code = "STALE_DECISION"

	// Chart errors
	CodeChartUnavailable Code = "CHART_UNAVAILABLE"
	CodeChartNotFound    Code = "CHART_NOT_FOUND"
	CodeChartInvalid     Code = "CHART_INVALID"

	// Decision log errors
	CodeDecisionLogFailed Code = "DECISION_LOG_FAILED"

	// Session errors
	CodeSessionUnavailable Code = "SESSION_UNAVAILABLE"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// BadRequest - validation failures, bad input
	case CodeInvalidAction,
		CodeChartInvalid:
		return http.StatusBadRequest

	// Conflict - state doesn't allow operation
	case CodeRoundOver,
		CodeStaleDecision,
		CodeAlreadyExists:
		return http.StatusConflict

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeChartNotFound:
		return http.StatusNotFound

	// ServiceUnavailable - a collaborator could not serve the request
	case CodeChartUnavailable,
		CodeDecisionLogFailed,
		CodeSessionUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
