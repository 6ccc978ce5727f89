package validators

import (
	"net/http"
	"strconv"

	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
)

// Identifiers in query strings (product ids, category slugs, cursors) never
// need more than this.
const maxQueryIDLen = 256

// QueryString returns the trimmed value of key capped at maxLen runes.
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}

// QueryID reads an identifier-like query parameter.
func QueryID(r *http.Request, key string) string {
	return QueryString(r, key, maxQueryIDLen)
}

// ParseQueryInt reads an optional bounded integer such as a page size. An
// absent or blank value yields defaultVal.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := QueryID(r, key)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
