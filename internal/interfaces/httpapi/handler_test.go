package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/team-draw/internal/platform/id"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
	"github.com/riskibarqy/team-draw/internal/usecase"
)

type typedEnvelope[T any] struct {
	APIVersion string     `json:"apiVersion"`
	Data       T          `json:"data"`
	Error      *errorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	rosters := usecase.NewRosterService(memory.NewRosterRepository(memory.SeedRoster()), nil, logger)
	draws := usecase.NewDrawService(rosters, usecase.DefaultDrawLimits(), idgen.NewRandomGenerator("draw"), logger)
	return NewRouter(NewHandler(rosters, draws, logger), logger, true, []string{"*"})
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) typedEnvelope[T] {
	t.Helper()

	var out typedEnvelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandler_Healthz(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	require.Equal(t, "ok", body.Data["status"])
}

func TestHandler_GetRoster(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodGet, "/v1/roster", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[rosterDTO](t, rec)
	require.Equal(t, []string{"Everson", "Rafael"}, body.Data.Goalkeepers)
	require.Len(t, body.Data.LinePlayers, 14)
	require.Equal(t, 16, body.Data.Total)
}

func TestHandler_ReloadRosterWithoutCache(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodPost, "/v1/roster/reload", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 16, decodeBody[rosterDTO](t, rec).Data.Total)
}

func TestHandler_CreateDraw(t *testing.T) {
	payload := `{
		"goalkeepers": ["Rafael", "Everson"],
		"linePlayers": ["Gustavo", "Leo", "Marcos", "Andre", "Carlos", "Hulk", "Pedro", "Dudu"],
		"guests": [{"name": "Bia", "position": "m"}],
		"guestLists": {"A": "Joao, Ze"},
		"variety": 0
	}`

	rec := serve(t, newTestRouter(t), http.MethodPost, "/v1/draws", payload)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody[drawDTO](t, rec)
	got := body.Data

	require.True(t, strings.HasPrefix(got.ID, "draw_"))
	require.Equal(t, 0, got.Variety)
	require.Equal(t, 1, got.TeamA.Goalkeepers)
	require.Equal(t, 1, got.TeamB.Goalkeepers)
	require.Equal(t, 11, got.TeamA.LinePlayers+got.TeamB.LinePlayers)
	require.Len(t, got.TeamA.Rows, got.TeamA.Goalkeepers+got.TeamA.LinePlayers)
	require.Contains(t, got.ShareText, "TIME A")
	require.Contains(t, got.ShareText, "Joao (C)")
	require.InDelta(t, abs(got.TeamA.Strength-got.TeamB.Strength), got.Diff, 1e-9)
}

func TestHandler_CreateDraw_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty body", payload: ""},
		{name: "unknown field", payload: `{"linePlayers": ["Hulk", "Pedro"], "captain": "Hulk"}`},
		{name: "bad guest position", payload: `{"linePlayers": ["Hulk", "Pedro"], "guests": [{"name": "Bia", "position": "X"}]}`},
		{name: "unknown player", payload: `{"linePlayers": ["Hulk", "Romario"]}`},
		{name: "too few line players", payload: `{"linePlayers": ["Hulk"]}`},
		{name: "variety out of range", payload: `{"linePlayers": ["Hulk", "Pedro"], "variety": 11}`},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodPost, "/v1/draws", tt.payload)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeBody[any](t, rec)
			require.NotNil(t, body.Error)
			require.Equal(t, "INVALID_ARGUMENT", body.Error.Status)
		})
	}
}

func TestHandler_CreateDrawOptions(t *testing.T) {
	payload := `{
		"goalkeepers": ["Rafael"],
		"linePlayers": ["Gustavo", "Leo", "Marcos", "Andre", "Carlos", "Hulk"],
		"count": 3
	}`

	rec := serve(t, newTestRouter(t), http.MethodPost, "/v1/draws/options", payload)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	items := decodeBody[[]drawDTO](t, rec).Data
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		require.LessOrEqual(t, items[i-1].Diff, items[i].Diff)
	}
}

func TestHandler_CreateDrawOptions_RejectsMissingCount(t *testing.T) {
	rec := serve(t, newTestRouter(t), http.MethodPost, "/v1/draws/options", `{"linePlayers": ["Hulk", "Pedro"]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SwaggerRoutes(t *testing.T) {
	router := newTestRouter(t)

	doc := serve(t, router, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, doc.Code)
	require.Contains(t, doc.Body.String(), "/v1/draws")

	docs := serve(t, router, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, docs.Code)
	require.Contains(t, docs.Body.String(), "<title>Team Draw API</title>")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
