package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// likeEscaper escapes ILIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a case-insensitive substring match.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw pq.StringArray) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse uuid %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// countRow is the shape of "SELECT key, COUNT(*) ... GROUP BY key" queries.
type countRow struct {
	ID    uuid.UUID `db:"id"`
	Count int64     `db:"count"`
}

// countMap seeds every requested id with zero so callers can index
// without a presence check.
func countMap(ids []uuid.UUID, rows []countRow) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		out[id] = 0
	}
	for _, r := range rows {
		out[r.ID] = r.Count
	}
	return out
}
