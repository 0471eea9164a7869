package httpapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/team-draw/internal/domain/draw"
	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	"github.com/riskibarqy/team-draw/internal/interfaces/share"
	"github.com/riskibarqy/team-draw/internal/usecase"
)

type guestRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Position string `json:"position" validate:"required,oneof=G Z L V M A g z l v m a"`
}

type drawRequest struct {
	Goalkeepers []string       `json:"goalkeepers" validate:"max=20,dive,required,max=80"`
	LinePlayers []string       `json:"linePlayers" validate:"max=40,dive,required,max=80"`
	Guests      []guestRequest `json:"guests" validate:"max=20,dive"`
	// GuestLists maps a position code to a comma separated list of guest names.
	GuestLists map[string]string `json:"guestLists" validate:"dive,keys,oneof=G Z L V M A g z l v m a,endkeys,max=1000"`
	Variety    *int              `json:"variety"`
}

type drawOptionsRequest struct {
	drawRequest
	Count int `json:"count" validate:"required,min=1"`
}

type drawDTO struct {
	ID           string    `json:"id"`
	Variety      int       `json:"variety"`
	CreatedAtUTC string    `json:"createdAtUtc"`
	TeamA        teamDTO   `json:"teamA"`
	TeamB        teamDTO   `json:"teamB"`
	Diff         float64   `json:"diff"`
	Search       searchDTO `json:"search"`
	ShareText    string    `json:"shareText"`
}

type teamDTO struct {
	Strength    float64   `json:"strength"`
	Goalkeepers int       `json:"goalkeepers"`
	LinePlayers int       `json:"linePlayers"`
	Rows        []slotDTO `json:"rows"`
}

type slotDTO struct {
	Label      string  `json:"label"`
	Code       string  `json:"code,omitempty"`
	Name       string  `json:"name"`
	Skill      float64 `json:"skill"`
	Origin     string  `json:"origin"`
	Improvised bool    `json:"improvised"`
	Reserve    bool    `json:"reserve"`
}

type searchDTO struct {
	Candidates int  `json:"candidates"`
	Sampled    bool `json:"sampled"`
	Shuffled   bool `json:"shuffled"`
}

func (h *Handler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraw")
	defer span.End()

	var req drawRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.drawService.Draw(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create draw failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, drawToDTO(outcome))
}

func (h *Handler) CreateDrawOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDrawOptions")
	defer span.End()

	var req drawOptionsRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcomes, err := h.drawService.Options(ctx, req.toInput(), req.Count)
	if err != nil {
		h.logger.WarnContext(ctx, "create draw options failed", "count", req.Count, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]drawDTO, 0, len(outcomes))
	for _, outcome := range outcomes {
		items = append(items, drawToDTO(outcome))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (req drawRequest) toInput() usecase.DrawInput {
	guests := make([]roster.Guest, 0, len(req.Guests))
	for _, g := range req.Guests {
		guests = append(guests, roster.Guest{
			Name:     g.Name,
			Position: position.Code(strings.ToUpper(strings.TrimSpace(g.Position))),
		})
	}

	codes := make([]string, 0, len(req.GuestLists))
	for code := range req.GuestLists {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		normalized := position.Code(strings.ToUpper(strings.TrimSpace(code)))
		guests = append(guests, roster.ParseGuestList(req.GuestLists[code], normalized)...)
	}

	return usecase.DrawInput{
		Goalkeepers: req.Goalkeepers,
		LinePlayers: req.LinePlayers,
		Guests:      guests,
		Variety:     req.Variety,
	}
}

func drawToDTO(outcome usecase.DrawOutcome) drawDTO {
	return drawDTO{
		ID:           outcome.ID,
		Variety:      outcome.Variety,
		CreatedAtUTC: outcome.CreatedAt.UTC().Format(time.RFC3339),
		TeamA:        teamToDTO(outcome.TeamA),
		TeamB:        teamToDTO(outcome.TeamB),
		Diff:         outcome.Diff,
		Search: searchDTO{
			Candidates: outcome.Candidates,
			Sampled:    outcome.Sampled,
			Shuffled:   outcome.Shuffled,
		},
		ShareText: share.Text(outcome.Result),
	}
}

func teamToDTO(team draw.Team) teamDTO {
	rows := make([]slotDTO, 0, len(team.Rows))
	for _, row := range team.Rows {
		rows = append(rows, slotDTO{
			Label:      row.Label,
			Code:       string(row.Code),
			Name:       row.Name,
			Skill:      row.Skill,
			Origin:     row.Origin,
			Improvised: row.Improvised,
			Reserve:    row.Reserve,
		})
	}

	return teamDTO{
		Strength:    team.Strength,
		Goalkeepers: team.Goalkeepers,
		LinePlayers: team.LinePlayers,
		Rows:        rows,
	}
}
