package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "micmac/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response with an explicit status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{Error: err.Error(), Code: string(apperrors.InternalError)}
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		resp.Error = coded.Message
		resp.Code = string(coded.Code)
		resp.Details = coded.Details
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteCodedError writes an error with status derived from its code.
func WriteCodedError(w http.ResponseWriter, err error) {
	WriteError(w, err, statusForCode(apperrors.CodeOf(err)))
}

// statusForCode maps domain error codes to HTTP status codes
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.NotFound:
		return http.StatusNotFound // 404
	case apperrors.ValidationFailed:
		return http.StatusBadRequest // 400
	case apperrors.ImportInvalid:
		return http.StatusBadRequest // 400
	case apperrors.ScaleViolation:
		return http.StatusBadRequest // 400
	case apperrors.MatrixIncomplete:
		return http.StatusBadRequest // 400
	case apperrors.ScaleInUse:
		return http.StatusConflict // 409
	case apperrors.NoResult:
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, apperrors.New(apperrors.ValidationFailed, message), http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, apperrors.New(apperrors.NotFound, message), http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string, cause error) {
	WriteError(w, apperrors.Wrap(apperrors.InternalError, message, cause), http.StatusInternalServerError)
}
