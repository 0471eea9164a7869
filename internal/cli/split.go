package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/team-draw/external/rosterfile"
	"github.com/riskibarqy/team-draw/internal/domain/draw"
	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	"github.com/riskibarqy/team-draw/internal/interfaces/share"
	idgen "github.com/riskibarqy/team-draw/internal/platform/id"
	"github.com/riskibarqy/team-draw/internal/usecase"
)

// Split draws teams from a roster export and prints them.
type Split struct {
	CommonOpts

	Roster      string   `long:"roster"  env:"ROSTER_FILE" required:"true" description:"roster JSON export"`
	Goalkeepers []string `long:"gk"      description:"selected goalkeeper, repeatable"`
	LinePlayers []string `long:"line"    description:"selected line player, repeatable"`
	Guests      []string `long:"guest"   description:"guests by position as CODE=Name1,Name2, repeatable"`
	Variety     int      `long:"variety" default:"2" description:"0 keeps only the most balanced splits, 10 widens the pool"`
	Options     int      `long:"options" default:"1" description:"number of alternative draws to print"`
}

// Execute runs the command.
func (s *Split) Execute([]string) error {
	ctx := context.Background()

	guests, err := parseGuestFlags(s.Guests)
	if err != nil {
		return err
	}

	logger := s.logger()
	rosters := usecase.NewRosterService(rosterfile.NewRepository(s.Roster), nil, logger)
	limits := usecase.DefaultDrawLimits()
	if s.Options > limits.MaxOptions {
		limits.MaxOptions = s.Options
	}
	draws := usecase.NewDrawService(rosters, limits, idgen.NewRandomGenerator("draw"), logger)

	input := usecase.DrawInput{
		Goalkeepers: s.Goalkeepers,
		LinePlayers: s.LinePlayers,
		Guests:      guests,
		Variety:     &s.Variety,
	}

	var outcomes []usecase.DrawOutcome
	if s.Options <= 1 {
		outcome, err := draws.Draw(ctx, input)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	} else {
		outcomes, err = draws.Options(ctx, input, s.Options)
		if err != nil {
			return err
		}
	}

	for i, outcome := range outcomes {
		if len(outcomes) > 1 {
			if _, err := fmt.Fprintf(s.out(), "=== Opção %d (diferença %.1f) ===\n\n", i+1, outcome.Diff); err != nil {
				return err
			}
		}
		if err := printOutcome(s.out(), outcome.Result); err != nil {
			return err
		}
	}
	return nil
}

func printOutcome(w io.Writer, result draw.Result) error {
	for _, side := range []struct {
		name string
		team draw.Team
	}{
		{name: "🟥 TIME A", team: result.TeamA},
		{name: "🟦 TIME B", team: result.TeamB},
	} {
		table, err := share.Table(side.team)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", share.Heading(side.name, side.team), table); err != nil {
			return err
		}
	}

	if result.Shuffled {
		if _, err := fmt.Fprintln(w, "(sorteio aleatório: jogadores demais para comparar todas as divisões)"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", share.Text(result))
	return err
}

// parseGuestFlags reads values such as "Z=Joao, Pedro".
func parseGuestFlags(values []string) ([]roster.Guest, error) {
	var guests []roster.Guest
	for _, value := range values {
		code, names, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("guest %q: expected CODE=Name1,Name2", value)
		}
		parsed := position.Code(strings.ToUpper(strings.TrimSpace(code)))
		if !parsed.Valid() {
			return nil, fmt.Errorf("guest %q: unknown position code %q", value, code)
		}
		guests = append(guests, roster.ParseGuestList(names, parsed)...)
	}
	return guests, nil
}
