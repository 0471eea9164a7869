package share

import (
	"strings"
	"testing"

	"github.com/riskibarqy/team-draw/internal/domain/draw"
	"github.com/riskibarqy/team-draw/internal/domain/formation"
)

func sampleResult() draw.Result {
	return draw.Result{
		TeamA: draw.Team{
			Rows: []formation.Assignment{
				{Label: "Goleiro", Name: "Rafael", Skill: 7.5, Origin: "G"},
				{Label: "Zagueiro", Name: "Gustavo", Skill: 7, Origin: "Z"},
				{Label: "Meia (Imp)", Name: "Joao (C)", Skill: 6.8, Origin: "A", Improvised: true},
			},
			Strength: 13.8,
		},
		TeamB: draw.Team{
			Rows: []formation.Assignment{
				{Label: "Atacante", Name: "Hulk", Skill: 9, Origin: "A"},
				{Label: "RESERVA", Name: "Dudu", Skill: 6.8, Origin: "M/A", Reserve: true},
			},
			Strength: 15.8,
		},
		Diff: 2,
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	want := "*⚽ TIMES SORTEADOS*\n\n" +
		"*🟥 TIME A*\n" +
		"Goleiro: Rafael\n" +
		"Zagueiro: Gustavo\n" +
		"Meia (Imp): Joao (C)\n" +
		"\n*🟦 TIME B*\n" +
		"Atacante: Hulk\n" +
		"RESERVA: Dudu\n"

	if got := Text(sampleResult()); got != want {
		t.Fatalf("unexpected share text:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestText_EmptyTeams(t *testing.T) {
	t.Parallel()

	want := "*⚽ TIMES SORTEADOS*\n\n*🟥 TIME A*\n\n*🟦 TIME B*\n"
	if got := Text(draw.Result{}); got != want {
		t.Fatalf("unexpected share text: %q", got)
	}
}

func TestHeading(t *testing.T) {
	t.Parallel()

	if got := Heading("TIME A", sampleResult().TeamA); got != "TIME A (Força: 13.8)" {
		t.Fatalf("unexpected heading %q", got)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	got, err := Table(sampleResult().TeamA)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	for _, want := range []string{"Posição", "Rafael", "Zagueiro", "Meia (Imp)", "6.8"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in table:\n%s", want, got)
		}
	}
	if lines := strings.Count(got, "\n"); lines < 3 {
		t.Fatalf("expected header and three rows, got:\n%s", got)
	}
}
