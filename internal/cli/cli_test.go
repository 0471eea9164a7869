package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

const rankingExport = `{"Ranking": [
	{"#": "G", "Nome": "Rafael", "Pontos/Jogo": "7,5"},
	{"#": "G", "Nome": "Everson", "Pontos/Jogo": 6},
	{"#": "Z", "Nome": "Gustavo", "Pontos/Jogo": 7},
	{"#": "LD", "Nome": "Marcos", "Pontos/Jogo": 6},
	{"#": "V", "Nome": "Andre", "Pontos/Jogo": 8},
	{"#": "M", "Nome": "Carlos", "Pontos/Jogo": 8.5},
	{"#": "A", "Nome": "Hulk", "Pontos/Jogo": 9},
	{"#": "M/A", "Nome": "Dudu", "Pontos/Jogo": "-"}
]}`

func writeRoster(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ranking.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func common(out *bytes.Buffer) CommonOpts {
	return CommonOpts{Version: "test", Logger: logging.NewNop(), Out: out}
}

func TestParseGuestFlags(t *testing.T) {
	got, err := parseGuestFlags([]string{"z=Joao, Pedro", "A=Ze"})
	require.NoError(t, err)
	require.Equal(t, []roster.Guest{
		{Name: "Joao", Position: position.CenterBack},
		{Name: "Pedro", Position: position.CenterBack},
		{Name: "Ze", Position: position.Forward},
	}, got)

	_, err = parseGuestFlags([]string{"Joao"})
	require.Error(t, err)

	_, err = parseGuestFlags([]string{"X=Joao"})
	require.Error(t, err)
}

func TestSplit_PrintsTeams(t *testing.T) {
	var out bytes.Buffer
	cmd := &Split{
		Roster:      writeRoster(t, rankingExport),
		Goalkeepers: []string{"Rafael", "Everson"},
		LinePlayers: []string{"Gustavo", "Marcos", "Andre", "Carlos", "Hulk", "Dudu"},
		Guests:      []string{"M=Bia"},
		Variety:     0,
		Options:     1,
	}
	cmd.Set(common(&out))

	require.NoError(t, cmd.Execute(nil))

	text := out.String()
	require.Contains(t, text, "TIME A (Força: ")
	require.Contains(t, text, "TIME B (Força: ")
	require.Contains(t, text, "Posição")
	require.Contains(t, text, "*⚽ TIMES SORTEADOS*")
	require.Contains(t, text, "Bia (C)")
}

func TestSplit_Options(t *testing.T) {
	var out bytes.Buffer
	cmd := &Split{
		Roster:      writeRoster(t, rankingExport),
		LinePlayers: []string{"Gustavo", "Marcos", "Andre", "Carlos"},
		Variety:     2,
		Options:     3,
	}
	cmd.Set(common(&out))

	require.NoError(t, cmd.Execute(nil))
	require.Equal(t, 3, strings.Count(out.String(), "=== Opção"))
}

func TestSplit_RejectsUnknownPlayer(t *testing.T) {
	var out bytes.Buffer
	cmd := &Split{
		Roster:      writeRoster(t, rankingExport),
		LinePlayers: []string{"Gustavo", "Romario"},
		Variety:     2,
		Options:     1,
	}
	cmd.Set(common(&out))

	err := cmd.Execute(nil)
	require.ErrorContains(t, err, "Romario")
	require.Empty(t, out.String())
}

func TestImport_SQLiteWithPrune(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")

	var out bytes.Buffer
	first := &Import{Roster: writeRoster(t, rankingExport), SQLite: dbPath}
	first.Set(common(&out))
	require.NoError(t, first.Execute(nil))
	require.Contains(t, out.String(), "8 jogadores importados para sqlite")

	out.Reset()
	smaller := `[{"#": "G", "Nome": "Rafael", "Pontos/Jogo": 8}, {"#": "A", "Nome": "Hulk", "Pontos/Jogo": 9}]`
	second := &Import{Roster: writeRoster(t, smaller), SQLite: dbPath, Prune: true}
	second.Set(common(&out))
	require.NoError(t, second.Execute(nil))
	require.Contains(t, out.String(), "6 removidos")

	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	players, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, players, 2)
	require.Equal(t, 8.0, players[0].Skill)
}

func TestImport_NeedsOneTarget(t *testing.T) {
	var out bytes.Buffer
	path := writeRoster(t, rankingExport)

	none := &Import{Roster: path}
	none.Set(common(&out))
	require.ErrorContains(t, none.Execute(nil), "required")

	both := &Import{Roster: path, SQLite: "x.db", DBURL: "postgres://localhost/x"}
	both.Set(common(&out))
	require.ErrorContains(t, both.Execute(nil), "either")
}
