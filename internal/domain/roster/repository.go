package roster

import "context"

// Repository exposes the roster source. Rows come back unprocessed; callers
// build a Roster from them.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
}
