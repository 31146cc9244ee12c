package postgres

import (
	"fmt"
	"strings"
)

// sortKey maps an externally supplied sort name to a real column. Columns are
// only ever taken from these tables, never from caller input.
type sortKey struct {
	column      string
	defaultDesc bool
}

// orderClause builds a deterministic ORDER BY clause: the whitelisted sort
// column, the per-key default direction unless the caller overrides it, and an
// id ASC tie-break so equal keys always come back in insertion order.
func orderClause(keys map[string]sortKey, sortBy, sortOrder, fallback string) string {
	key, ok := keys[sortBy]
	if !ok {
		key = keys[fallback]
	}

	dir := "ASC"
	if key.defaultDesc {
		dir = "DESC"
	}
	switch strings.ToLower(sortOrder) {
	case "asc":
		dir = "ASC"
	case "desc":
		dir = "DESC"
	}

	return fmt.Sprintf("%s %s, id ASC", key.column, dir)
}
