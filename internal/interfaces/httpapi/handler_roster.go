package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-draw/internal/usecase"
)

type rosterDTO struct {
	Goalkeepers []string `json:"goalkeepers"`
	LinePlayers []string `json:"linePlayers"`
	Total       int      `json:"total"`
	MeanSkill   float64  `json:"meanSkill"`
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	opts, err := h.rosterService.Options(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(opts))
}

func (h *Handler) ReloadRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadRoster")
	defer span.End()

	opts, err := h.rosterService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reload roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(opts))
}

func rosterToDTO(opts usecase.RosterOptions) rosterDTO {
	return rosterDTO{
		Goalkeepers: opts.Goalkeepers,
		LinePlayers: opts.LinePlayers,
		Total:       opts.Total,
		MeanSkill:   opts.Mean,
	}
}
