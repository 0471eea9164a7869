package rosterfile

import (
	"context"
	"os"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

// ErrInvalidRoster is returned when the file parses but has no usable shape.
var ErrInvalidRoster = crerr.New("invalid roster file")

// Column aliases accepted for each field. The Portuguese headers match the
// ranking spreadsheet export.
var (
	nameColumns     = []string{"name", "nome"}
	positionColumns = []string{"position", "posicao", "#"}
	skillColumns    = []string{"skill", "pontos/jogo", "nota"}
	wrapperKeys     = []string{"players", "ranking"}
)

// Repository reads the roster from a JSON export on every List call; wrap it
// with the cache decorator to avoid re-reading.
type Repository struct {
	path string
}

func NewRepository(path string) *Repository {
	return &Repository{path: strings.TrimSpace(path)}
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) List(_ context.Context) ([]roster.Player, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read roster file %s", r.path)
	}

	players, err := Decode(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode roster file %s", r.path)
	}
	return players, nil
}

// Decode accepts either a JSON array of rows or an object holding the rows
// under "players" or "Ranking". Header matching ignores case and surrounding
// spaces. Rows without a name are dropped; unparsable skills are left unrated.
func Decode(raw []byte) ([]roster.Player, error) {
	var doc any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "unmarshal roster json")
	}

	rows, err := rowsOf(doc)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Player, 0, len(rows))
	for i, item := range rows {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, crerr.Wrapf(ErrInvalidRoster, "row %d is not an object", i)
		}
		fields := normalizeKeys(row)

		name := strings.TrimSpace(stringValue(lookup(fields, nameColumns)))
		if name == "" {
			continue
		}

		skill, rated := skillValue(lookup(fields, skillColumns))
		out = append(out, roster.Player{
			Name:     name,
			Position: strings.TrimSpace(stringValue(lookup(fields, positionColumns))),
			Skill:    skill,
			Rated:    rated,
		})
	}

	return out, nil
}

func rowsOf(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		fields := normalizeKeys(v)
		for _, key := range wrapperKeys {
			if rows, ok := fields[key].([]any); ok {
				return rows, nil
			}
		}
		return nil, crerr.Wrap(ErrInvalidRoster, "object has no players or Ranking array")
	default:
		return nil, crerr.Wrapf(ErrInvalidRoster, "unexpected top-level %T", doc)
	}
}

func normalizeKeys(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = v
	}
	return out
}

func lookup(fields map[string]any, aliases []string) any {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func skillValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
