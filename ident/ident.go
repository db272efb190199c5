// Package ident implements the Identifier Service: a pure, deterministic
// mapping from source names to quoted SQL identifiers, parameterized by a
// strategy enum and a static reserved-word set. No global mutable state.
package ident

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/relschema/schemac/config"
)

// reservedWords is the minimum set spec.md §4.2 requires recognized.
var reservedWords = map[string]bool{
	"user": true, "order": true, "group": true, "table": true, "column": true,
	"select": true, "insert": true, "update": true, "delete": true, "where": true,
	"from": true, "join": true, "limit": true, "offset": true, "union": true,
	"all": true, "distinct": true, "having": true, "between": true, "like": true,
	"in": true, "exists": true, "case": true, "when": true, "then": true,
	"else": true, "end": true, "and": true, "or": true, "not": true,
	"null": true, "true": true, "false": true,
}

var nonSimpleChar = func(r rune) bool {
	return !(unicode.IsLower(r) || unicode.IsDigit(r) || r == '_')
}

// Service maps source names to SQL identifiers under a fixed strategy.
type Service struct {
	strategy config.IdentifierStrategy
	lower    cases.Caser
}

// New returns a Service for the given strategy; an empty strategy defaults
// to config.Preserve.
func New(strategy config.IdentifierStrategy) *Service {
	if strategy == "" {
		strategy = config.Preserve
	}
	return &Service{strategy: strategy, lower: cases.Lower(language.Und)}
}

// ColumnName applies the strategy transform to a field name; it is not pluralized.
func (s *Service) ColumnName(name string) string {
	return s.transform(name)
}

// TableName applies the strategy transform, then naive pluralization:
// append "s" if the transformed name has no trailing "s".
func (s *Service) TableName(name string) string {
	t := s.transform(name)
	if !strings.HasSuffix(t, "s") {
		t += "s"
	}
	return t
}

func (s *Service) transform(name string) string {
	switch s.strategy {
	case config.SnakeCase:
		return toSnakeCase(name)
	case config.Lower:
		return s.lower.String(name)
	case config.Upper:
		return strings.ToUpper(name)
	default: // config.Preserve
		return name
	}
}

// Quote returns name wrapped in double quotes iff it needs quoting: mixed
// case, a reserved word, or containing characters outside [a-z0-9_].
// Quoting itself is delegated to pq.QuoteIdentifier, which doubles embedded
// double quotes per the SQL identifier-escaping rule (Go's %q would instead
// backslash-escape them, which PostgreSQL does not accept in identifiers).
func (s *Service) Quote(name string) string {
	if s.NeedsQuoting(name) {
		return pq.QuoteIdentifier(name)
	}
	return name
}

// NeedsQuoting reports whether name requires double-quoting in emitted SQL.
func (s *Service) NeedsQuoting(name string) bool {
	if reservedWords[strings.ToLower(name)] {
		return true
	}
	if strings.IndexFunc(name, nonSimpleChar) >= 0 {
		return true
	}
	return isMixedCase(name)
}

func isMixedCase(name string) bool {
	hasUpper, hasLower := false, false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func toSnakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return strings.Trim(sb.String(), "_")
}

// IndexName implements index_name(table, column, kind) = "{kind}_{table}_{column}".
func IndexName(table, column, kind string) string {
	if kind == "" {
		kind = "idx"
	}
	return fmt.Sprintf("%s_%s_%s", kind, table, column)
}

// IndexNameMulti joins multiple columns with "_" for composite indexes.
func IndexNameMulti(table string, columns []string, kind string) string {
	if kind == "" {
		kind = "idx"
	}
	return fmt.Sprintf("%s_%s_%s", kind, table, strings.Join(columns, "_"))
}

// ConstraintName implements constraint_name(table, column, kind) analogously
// to IndexName.
func ConstraintName(table, column, kind string) string {
	return fmt.Sprintf("%s_%s_%s", kind, table, column)
}

// PolicyName implements policy_name(table, op, uid) = "policy_{table}_{op}_{uid}".
func PolicyName(table, op, uid string) string {
	return fmt.Sprintf("policy_%s_%s_%s", table, op, uid)
}
