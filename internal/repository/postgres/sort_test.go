package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testKeys = map[string]sortKey{
	"name":       {column: "name"},
	"revenue":    {column: "estimated_revenue", defaultDesc: true},
	"created_at": {column: "created_at", defaultDesc: true},
}

func TestOrderClause_DefaultDirections(t *testing.T) {
	require.Equal(t, "name ASC, id ASC", orderClause(testKeys, "name", "", "created_at"))
	require.Equal(t, "estimated_revenue DESC, id ASC", orderClause(testKeys, "revenue", "", "created_at"))
}

func TestOrderClause_ExplicitOverride(t *testing.T) {
	require.Equal(t, "estimated_revenue ASC, id ASC", orderClause(testKeys, "revenue", "asc", "created_at"))
	require.Equal(t, "name DESC, id ASC", orderClause(testKeys, "name", "DESC", "created_at"))
}

func TestOrderClause_UnknownKeyFallsBack(t *testing.T) {
	require.Equal(t, "created_at DESC, id ASC", orderClause(testKeys, "1; DROP TABLE jobs", "", "created_at"))
	require.Equal(t, "created_at DESC, id ASC", orderClause(testKeys, "", "", "created_at"))
}
