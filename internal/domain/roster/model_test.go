package roster

import (
	"math"
	"testing"

	"github.com/riskibarqy/team-draw/internal/domain/position"
)

func TestNew_DedupAndImpute(t *testing.T) {
	r := New([]Player{
		{Name: " Hugo ", Position: "A", Skill: 8, Rated: true},
		{Name: "hugo", Position: "Z", Skill: 1, Rated: true},
		{Name: "", Position: "M", Skill: 5, Rated: true},
		{Name: "Edu", Position: "V/M", Skill: 4, Rated: true},
		{Name: "Caio", Position: "L"},
		{Name: "Jean", Position: "M", Skill: math.NaN(), Rated: true},
	})

	if r.Len() != 4 {
		t.Fatalf("expected 4 players after dedup, got %d", r.Len())
	}
	if r.Mean() != 6 {
		t.Fatalf("expected mean 6, got %v", r.Mean())
	}

	hugo, ok := r.Lookup("HUGO")
	if !ok {
		t.Fatalf("expected case-insensitive lookup to find Hugo")
	}
	if hugo.Name != "Hugo" || hugo.Position != "A" || hugo.Skill != 8 {
		t.Fatalf("expected first Hugo row to win, got %+v", hugo)
	}

	for _, name := range []string{"Caio", "Jean"} {
		p, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("expected %s in roster", name)
		}
		if p.Rated || p.Skill != 6 {
			t.Fatalf("expected %s imputed to mean, got %+v", name, p)
		}
	}
}

func TestNew_EmptyRosterHasZeroMean(t *testing.T) {
	r := New(nil)
	if r.Len() != 0 || r.Mean() != 0 {
		t.Fatalf("expected empty roster with zero mean, got len=%d mean=%v", r.Len(), r.Mean())
	}
}

func TestRoster_SelectKeepsRosterOrder(t *testing.T) {
	r := New([]Player{
		{Name: "Ana", Position: "Z", Skill: 1, Rated: true},
		{Name: "Bia", Position: "L", Skill: 2, Rated: true},
		{Name: "Cris", Position: "M", Skill: 3, Rated: true},
	})

	got, missing := r.Select([]string{"cris", "Ana", "Nobody", "  "})
	if len(got) != 2 || got[0].Name != "Ana" || got[1].Name != "Cris" {
		t.Fatalf("unexpected selection: %+v", got)
	}
	if len(missing) != 1 || missing[0] != "Nobody" {
		t.Fatalf("unexpected missing names: %v", missing)
	}
}

func TestParseGuestList(t *testing.T) {
	guests := ParseGuestList("Primo do Edu, ,Vizinho ,", position.CenterBack)
	if len(guests) != 2 {
		t.Fatalf("expected 2 guests, got %d", len(guests))
	}
	if guests[0].Name != "Primo do Edu" || guests[1].Name != "Vizinho" {
		t.Fatalf("unexpected guest names: %+v", guests)
	}
	for _, g := range guests {
		if g.Position != position.CenterBack {
			t.Fatalf("expected guest position Z, got %s", g.Position)
		}
	}

	if got := ParseGuestList("", position.Forward); len(got) != 0 {
		t.Fatalf("expected no guests for empty text, got %+v", got)
	}
}

func TestGuest_Player(t *testing.T) {
	p := Guest{Name: " Tio do Hugo ", Position: position.Goalkeeper}.Player(5.5)
	if p.Name != "Tio do Hugo"+GuestMarker {
		t.Fatalf("unexpected guest name %q", p.Name)
	}
	if p.Position != "G" || p.Skill != 5.5 {
		t.Fatalf("unexpected guest player %+v", p)
	}
}
