// Package platform names the single SQL dialect this compiler targets.
package platform

import "strings"

// Postgres is the only dialect the DDL emitter and migration planner support.
const Postgres = "postgres"

// NormalizeDialect maps accepted spellings to the canonical dialect name,
// returning "" for anything the compiler cannot target.
func NormalizeDialect(dialect string) string {
	switch strings.ToLower(dialect) {
	case "pgx", "postgresql", "postgres":
		return Postgres
	default:
		return ""
	}
}
