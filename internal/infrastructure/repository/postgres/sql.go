package postgres

import (
	"database/sql"
	"math"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

const upsertChunkSize = 500

func skillToNull(p roster.Player) sql.NullFloat64 {
	if !p.Rated || math.IsNaN(p.Skill) || math.IsInf(p.Skill, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p.Skill, Valid: true}
}

func nullToPlayer(name, position string, skill sql.NullFloat64) roster.Player {
	return roster.Player{
		Name:     name,
		Position: position,
		Skill:    skill.Float64,
		Rated:    skill.Valid,
	}
}

func stringSliceToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
