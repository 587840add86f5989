// Package response centralizes JSON encoding and the mapping from error
// codes to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type ErrorCollector interface {
	IncError(code common.Code)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal server error", err)
	}
	if errorCollector != nil {
		errorCollector.IncError(appErr.Code)
	}
	JSON(w, statusFor(appErr.Code), errorBody{
		Error:  appErr.Message,
		Code:   string(appErr.Code),
		Fields: appErr.Fields,
	})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
