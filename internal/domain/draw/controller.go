package draw

import (
	"math"
	"sort"

	"github.com/riskibarqy/team-draw/internal/domain/balance"
	"github.com/riskibarqy/team-draw/internal/domain/formation"
	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

// Selection is what the organizer picked for one match.
type Selection struct {
	Goalkeepers []string
	LinePlayers []string
	Guests      []roster.Guest
}

// Team is one side of a draw.
type Team struct {
	Rows []formation.Assignment
	// Strength sums the skill of every non-goalkeeper row.
	Strength    float64
	Goalkeepers int
	LinePlayers int
}

type Result struct {
	TeamA Team
	TeamB Team
	Diff  float64
	// Candidates, Sampled and Shuffled describe the line-player search.
	Candidates int
	Sampled    bool
	Shuffled   bool
}

// Controller runs the draw pipeline. It is not safe for concurrent use since
// it owns its random source; use one controller per goroutine.
type Controller struct {
	rng balance.Random
}

func NewController(rng balance.Random) *Controller {
	return &Controller{rng: rng}
}

// Split looks the selected names up in the roster, adds guests at the roster
// mean, deals goalkeepers alternately strongest first, balances line players
// and fills both formations. Names missing from the roster are skipped; limit
// checks belong to the caller.
func (c *Controller) Split(selection Selection, source roster.Roster, variety int) Result {
	names := make([]string, 0, len(selection.Goalkeepers)+len(selection.LinePlayers))
	names = append(names, selection.Goalkeepers...)
	names = append(names, selection.LinePlayers...)
	registered, _ := source.Select(names)

	pool := make([]formation.Player, 0, len(registered)+len(selection.Guests))
	for _, p := range registered {
		pool = append(pool, formation.NewPlayer(p.Name, p.Skill, p.Position))
	}
	for _, g := range selection.Guests {
		p := g.Player(source.Mean())
		pool = append(pool, formation.NewPlayer(p.Name, p.Skill, p.Position))
	}

	var keepers, line []formation.Player
	for _, p := range pool {
		if p.IsGoalkeeper() {
			keepers = append(keepers, p)
			continue
		}
		line = append(line, p)
	}

	sort.SliceStable(keepers, func(i, j int) bool {
		return keepers[i].Skill > keepers[j].Skill
	})
	var sideA, sideB []formation.Player
	for i, gk := range keepers {
		if i%2 == 0 {
			sideA = append(sideA, gk)
		} else {
			sideB = append(sideB, gk)
		}
	}

	skills := make([]float64, len(line))
	for i, p := range line {
		skills[i] = p.Skill
	}
	split := balance.Partition(skills, balance.TopNFromVariety(variety), c.rng)
	for _, idx := range split.A {
		sideA = append(sideA, line[idx])
	}
	for _, idx := range split.B {
		sideB = append(sideB, line[idx])
	}

	teamA := newTeam(formation.Assign(sideA))
	teamB := newTeam(formation.Assign(sideB))
	return Result{
		TeamA:      teamA,
		TeamB:      teamB,
		Diff:       math.Abs(teamA.Strength - teamB.Strength),
		Candidates: split.Candidates,
		Sampled:    split.Sampled,
		Shuffled:   split.Shuffled,
	}
}

func newTeam(rows []formation.Assignment) Team {
	team := Team{Rows: rows}
	for _, row := range rows {
		if row.Label == position.LabelGoalkeeper {
			team.Goalkeepers++
			continue
		}
		team.LinePlayers++
		team.Strength += row.Skill
	}
	return team
}
