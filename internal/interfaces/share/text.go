package share

import (
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/team-draw/internal/domain/draw"
)

const (
	textTitle = "*⚽ TIMES SORTEADOS*"
	textTeamA = "*🟥 TIME A*"
	textTeamB = "*🟦 TIME B*"
)

// Text renders a draw as the chat message pasted into the group: a title,
// then one "Label: Name" line per row for each team.
func Text(result draw.Result) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(textTitle)
	_, _ = buf.WriteString("\n\n")
	writeTeam(buf, textTeamA, result.TeamA)
	_ = buf.WriteByte('\n')
	writeTeam(buf, textTeamB, result.TeamB)

	return buf.String()
}

// Heading is the one-line team summary shown above each table.
func Heading(name string, team draw.Team) string {
	return name + " (Força: " + strconv.FormatFloat(team.Strength, 'f', 1, 64) + ")"
}

func writeTeam(buf *bytebufferpool.ByteBuffer, heading string, team draw.Team) {
	_, _ = buf.WriteString(heading)
	_ = buf.WriteByte('\n')
	for _, row := range team.Rows {
		_, _ = buf.WriteString(row.Label)
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(row.Name)
		_ = buf.WriteByte('\n')
	}
}
