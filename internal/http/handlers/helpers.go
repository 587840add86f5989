package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return common.NewError(common.CodeValidation, "request body is required", nil)
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid JSON body", err)
	}
	return nil
}

// idFromPath extracts the path segment after prefix, stopping at the next
// slash: idFromPath("/jobs/{id}/status", "/jobs/") yields {id}.
func idFromPath(r *http.Request, prefix string) (common.UUID, error) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	id, err := common.ParseUUID(rest)
	if err != nil {
		return "", common.NewError(common.CodeNotFound, "resource not found", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func queryInt(r *http.Request, name string, fallback int) int {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
