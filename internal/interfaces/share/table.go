package share

import (
	"fmt"
	"strconv"

	"github.com/syohex/go-texttable"

	"github.com/riskibarqy/team-draw/internal/domain/draw"
)

// Table renders one team sheet for terminals.
func Table(team draw.Team) (string, error) {
	tbl := &texttable.TextTable{}
	if err := tbl.SetHeader("Posição", "Nome", "Skill", "Origem"); err != nil {
		return "", fmt.Errorf("set table header: %w", err)
	}

	for _, row := range team.Rows {
		if err := tbl.AddRow(
			row.Label,
			row.Name,
			strconv.FormatFloat(row.Skill, 'f', 1, 64),
			row.Origin,
		); err != nil {
			return "", fmt.Errorf("add row %s: %w", row.Name, err)
		}
	}

	return tbl.Draw(), nil
}
