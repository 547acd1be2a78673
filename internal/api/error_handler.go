package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/vytor/chessdash/internal/charts"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if stderrors.Is(err, charts.ErrNoData) {
		log.Debug("nothing to chart")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	appErr := errors.FromDomain(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	if strings.HasPrefix(r.URL.Path, "/api/") || r.Header.Get("Accept") == "application/json" {
		writeJSON(w, r, appErr.Status, map[string]any{
			"error": map[string]any{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	http.Error(w, appErr.Message, appErr.Status)
}
