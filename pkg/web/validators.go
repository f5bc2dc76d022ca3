package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
)

// ParseEnum reads the query parameter key and checks it against allowed.
// An absent parameter yields def.
func ParseEnum(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key, def string, allowed ...string) (string, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, true
	}
	if !slices.Contains(allowed, value) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", key, value))
		return "", false
	}
	return value, true
}
