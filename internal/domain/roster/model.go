package roster

import (
	"math"
	"strings"
)

// Player is one registered row of the roster source.
type Player struct {
	Name     string
	Position string
	Skill    float64
	// Rated is false when the source had no usable skill value and Skill was imputed.
	Rated bool
}

// Roster is an immutable, de-duplicated view of the registered players with
// missing skills already replaced by the roster mean.
type Roster struct {
	players []Player
	index   map[string]int
	mean    float64
}

// New drops unnamed rows, keeps the first row per name (case-insensitive) and
// imputes missing skills with the mean of the rated rows.
func New(players []Player) Roster {
	out := make([]Player, 0, len(players))
	index := make(map[string]int, len(players))

	var sum float64
	var rated int
	for _, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		key := NameKey(p.Name)
		if _, exists := index[key]; exists {
			continue
		}
		if math.IsNaN(p.Skill) || math.IsInf(p.Skill, 0) {
			p.Rated = false
		}
		if p.Rated {
			sum += p.Skill
			rated++
		}

		index[key] = len(out)
		out = append(out, p)
	}

	var mean float64
	if rated > 0 {
		mean = sum / float64(rated)
	}
	for i := range out {
		if !out[i].Rated {
			out[i].Skill = mean
		}
	}

	return Roster{players: out, index: index, mean: mean}
}

// NameKey is the lookup key used to match selected names against the roster.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r Roster) Len() int {
	return len(r.players)
}

// Mean is the average skill across the roster, used for guests.
func (r Roster) Mean() float64 {
	return r.mean
}

func (r Roster) Players() []Player {
	return append([]Player(nil), r.players...)
}

func (r Roster) Lookup(name string) (Player, bool) {
	i, ok := r.index[NameKey(name)]
	if !ok {
		return Player{}, false
	}
	return r.players[i], true
}

// Select returns the roster rows matching names, in roster order, plus the
// names that have no matching row.
func (r Roster) Select(names []string) ([]Player, []string) {
	wanted := make(map[string]struct{}, len(names))
	var missing []string
	for _, name := range names {
		key := NameKey(name)
		if key == "" {
			continue
		}
		if _, ok := r.index[key]; !ok {
			missing = append(missing, strings.TrimSpace(name))
			continue
		}
		wanted[key] = struct{}{}
	}

	out := make([]Player, 0, len(wanted))
	for _, p := range r.players {
		if _, ok := wanted[NameKey(p.Name)]; ok {
			out = append(out, p)
		}
	}

	return out, missing
}
