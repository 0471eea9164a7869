package draw

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

func sampleRoster() roster.Roster {
	return roster.New([]roster.Player{
		{Name: "Bruno", Position: "G", Skill: 6, Rated: true},
		{Name: "Caio", Position: "G", Skill: 8, Rated: true},
		{Name: "Davi", Position: "Z", Skill: 7, Rated: true},
		{Name: "Enzo", Position: "LD", Skill: 5, Rated: true},
		{Name: "Felipe", Position: "LE/V", Skill: 6, Rated: true},
		{Name: "Gabriel", Position: "V", Skill: 8, Rated: true},
		{Name: "Heitor", Position: "M", Skill: 9, Rated: true},
		{Name: "Igor", Position: "M/A", Skill: 4, Rated: true},
		{Name: "Joao", Position: "S", Skill: 10, Rated: true},
		{Name: "Kaique", Position: "Z/L", Skill: 3, Rated: true},
		{Name: "Lucas", Position: "", Skill: 0},
	})
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func namesOf(team Team) []string {
	out := make([]string, 0, len(team.Rows))
	for _, row := range team.Rows {
		out = append(out, row.Name)
	}
	return out
}

func TestController_SplitCoversEveryone(t *testing.T) {
	t.Parallel()

	src := sampleRoster()
	selection := Selection{
		Goalkeepers: []string{"Bruno", "Caio"},
		LinePlayers: []string{"Davi", "Enzo", "Felipe", "Gabriel", "Heitor", "Igor", "Joao", "Kaique", "Lucas"},
	}

	for seed := uint64(1); seed <= 20; seed++ {
		res := NewController(seeded(seed)).Split(selection, src, 2)

		if res.TeamA.Goalkeepers != 1 || res.TeamB.Goalkeepers != 1 {
			t.Fatalf("expected one goalkeeper per team, got %d and %d", res.TeamA.Goalkeepers, res.TeamB.Goalkeepers)
		}
		if res.TeamA.LinePlayers != 4 || res.TeamB.LinePlayers != 5 {
			t.Fatalf("expected 4/5 line players, got %d/%d", res.TeamA.LinePlayers, res.TeamB.LinePlayers)
		}

		seen := make(map[string]int)
		for _, name := range append(namesOf(res.TeamA), namesOf(res.TeamB)...) {
			seen[name]++
		}
		if len(seen) != 11 {
			t.Fatalf("expected 11 distinct players, got %v", seen)
		}
		for name, n := range seen {
			if n != 1 {
				t.Fatalf("player %s appears %d times", name, n)
			}
		}

		if want := math.Abs(res.TeamA.Strength - res.TeamB.Strength); res.Diff != want {
			t.Fatalf("diff=%v, want %v", res.Diff, want)
		}
	}
}

func TestController_StrongestGoalkeeperGoesToTeamA(t *testing.T) {
	t.Parallel()

	selection := Selection{
		Goalkeepers: []string{"Bruno", "Caio"},
		LinePlayers: []string{"Davi", "Enzo"},
	}
	res := NewController(seeded(9)).Split(selection, sampleRoster(), 0)

	if res.TeamA.Rows[0].Name != "Caio" {
		t.Fatalf("expected Caio in team A goal, got %+v", res.TeamA.Rows[0])
	}
	if res.TeamB.Rows[0].Name != "Bruno" {
		t.Fatalf("expected Bruno in team B goal, got %+v", res.TeamB.Rows[0])
	}
}

func TestController_GuestGoalkeeperJoinsOtherTeam(t *testing.T) {
	t.Parallel()

	src := sampleRoster()
	selection := Selection{
		Goalkeepers: []string{"Caio"},
		LinePlayers: []string{"Davi", "Enzo", "Felipe", "Gabriel"},
		Guests:      []roster.Guest{{Name: "Paulo", Position: position.Goalkeeper}},
	}
	res := NewController(seeded(4)).Split(selection, src, 2)

	if res.TeamA.Goalkeepers != 1 || res.TeamB.Goalkeepers != 1 {
		t.Fatalf("expected goalkeepers split 1/1, got %d/%d", res.TeamA.Goalkeepers, res.TeamB.Goalkeepers)
	}

	var guest string
	for _, row := range append(res.TeamA.Rows, res.TeamB.Rows...) {
		if strings.HasSuffix(row.Name, roster.GuestMarker) {
			guest = row.Name
			if row.Skill != src.Mean() {
				t.Fatalf("guest skill=%v, want roster mean %v", row.Skill, src.Mean())
			}
			if row.Label != position.LabelGoalkeeper {
				t.Fatalf("guest label=%q", row.Label)
			}
		}
	}
	if guest != "Paulo"+roster.GuestMarker {
		t.Fatalf("guest not found in result, got %q", guest)
	}
}

func TestController_UnratedPlayerUsesMean(t *testing.T) {
	t.Parallel()

	src := sampleRoster()
	selection := Selection{LinePlayers: []string{"Lucas", "Davi"}}
	res := NewController(seeded(2)).Split(selection, src, 0)

	for _, row := range append(res.TeamA.Rows, res.TeamB.Rows...) {
		if row.Name == "Lucas" {
			if row.Skill != src.Mean() {
				t.Fatalf("Lucas skill=%v, want %v", row.Skill, src.Mean())
			}
			if row.Label != position.LabelMidfielder {
				t.Fatalf("blank position should play midfield, got %q", row.Label)
			}
			return
		}
	}
	t.Fatalf("Lucas missing from result")
}

func TestController_EmptySelection(t *testing.T) {
	t.Parallel()

	res := NewController(seeded(1)).Split(Selection{}, sampleRoster(), 5)
	if len(res.TeamA.Rows) != 0 || len(res.TeamB.Rows) != 0 || res.Diff != 0 {
		t.Fatalf("expected empty teams, got %+v", res)
	}
}
