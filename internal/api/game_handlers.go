package api

import (
	"net/http"

	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
)

const defaultPageSize = 50

type gamesParams struct {
	Page    int `query:"page" validate:"gte=1"`
	PerPage int `query:"per_page" validate:"oneof=10 25 50 100"`
}

type gamesResponse struct {
	Games      []models.GameRecord `json:"games"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
	TotalCount int                 `json:"total_count"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var p gamesParams
	if p.Page, err = intParam(q, "page", 1); err != nil {
		handleError(w, r, err)
		return
	}
	if p.PerPage, err = intParam(q, "per_page", defaultPageSize); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(p); err != nil {
		handleError(w, r, err)
		return
	}

	offset := (p.Page - 1) * p.PerPage
	log := logger.FromContext(r.Context()).WithFields(map[string]any{
		"page":     p.Page,
		"per_page": p.PerPage,
	})
	log.Debug("listing games")

	games, totalCount, err := s.Stats.ListGames(r.Context(), filter, p.PerPage, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}

	totalPages := totalCount / p.PerPage
	if totalCount%p.PerPage != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	writeJSON(w, r, http.StatusOK, gamesResponse{
		Games:      games,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		TotalCount: totalCount,
	})
}
