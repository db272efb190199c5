// Package plan implements the Migration Planner: packages the additive step
// set produced by diff.Diff into the expand/validate phases, labels lock
// levels, renders SQL text, and describes CIC orchestration per spec.md §4.7.
package plan

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/relschema/schemac/diff"
)

// LockLevel is a PostgreSQL lock strength, used only for operator
// explainability; the planner never enforces it.
type LockLevel string

const (
	AccessExclusive    LockLevel = "ACCESS EXCLUSIVE"
	ShareRowExclusive  LockLevel = "SHARE ROW EXCLUSIVE"
	ShareUpdateExclusive LockLevel = "SHARE UPDATE EXCLUSIVE"
)

// ExecPhase is the orchestration phase a step's SQL must run in.
type ExecPhase string

const (
	Transactional    ExecPhase = "transactional"
	NonTransactional ExecPhase = "non_transactional"
)

// PlannedStep is one diff.Step annotated with its phase (expand/validate),
// lock level, execution phase, rendered SQL, and cleanup SQL.
type PlannedStep struct {
	Step                diff.Step
	MigrationPhase      string // "expand" or "validate"
	Lock                LockLevel
	ExecPhase           ExecPhase
	PerTableExclusivity bool
	SQL                 string
	CleanupSQL          string
}

// Plan is the full ordered, labeled step set for one migration run.
type Plan struct {
	Expand   []PlannedStep
	Validate []PlannedStep
}

// ErrUnsupportedStep is wrapped when Plan encounters a diff.Step of a kind
// the phase/lock function has no entry for — a programmer error upstream,
// since diff.Diff only ever produces the kinds this function knows.
var ErrUnsupportedStep = fmt.Errorf("planner: step kind incompatible with phase rules")

// Build converts steps into a Plan, preserving their relative order within
// each phase. The planner never reorders steps.
func Build(steps []diff.Step) (*Plan, error) {
	p := &Plan{}
	for _, s := range steps {
		ps, err := planStep(s)
		if err != nil {
			return nil, err
		}
		switch ps.MigrationPhase {
		case "expand":
			p.Expand = append(p.Expand, ps)
		case "validate":
			p.Validate = append(p.Validate, ps)
		}
	}
	return p, nil
}

// planStep is the total step→(phase, lock) function spec.md §9 calls for:
// every diff.StepKind has exactly one entry, eliminating an "unknown" branch.
func planStep(s diff.Step) (PlannedStep, error) {
	switch s.Kind {
	case diff.CreateTable:
		return PlannedStep{
			Step: s, MigrationPhase: "expand", Lock: AccessExclusive, ExecPhase: Transactional,
			SQL: fmt.Sprintf("-- placeholder: columns for %q arrive via subsequent add_column steps", quote(s.Table)),
		}, nil

	case diff.AddColumn:
		lock := ShareRowExclusive
		if !s.Nullable && s.Default == nil {
			lock = AccessExclusive
		}
		return PlannedStep{
			Step: s, MigrationPhase: "expand", Lock: lock, ExecPhase: Transactional,
			SQL: renderAddColumn(s),
		}, nil

	case diff.CreateIndexConcurrently:
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("idx_%s_%s", s.Table, strings.Join(s.Columns, "_"))
		}
		return PlannedStep{
			Step: s, MigrationPhase: "expand", Lock: ShareUpdateExclusive,
			ExecPhase: NonTransactional, PerTableExclusivity: true,
			SQL:        renderCreateIndexConcurrently(s, name),
			CleanupSQL: fmt.Sprintf("DROP INDEX CONCURRENTLY IF EXISTS %s;", quote(name)),
		}, nil

	case diff.AddFKNotValid:
		return PlannedStep{
			Step: s, MigrationPhase: "expand", Lock: ShareRowExclusive, ExecPhase: Transactional,
			SQL: renderAddFKNotValid(s),
		}, nil

	case diff.ValidateFK:
		return PlannedStep{
			Step: s, MigrationPhase: "validate", Lock: ShareRowExclusive, ExecPhase: Transactional,
			SQL: renderValidateFK(s),
		}, nil

	case diff.AddEnumValue:
		return PlannedStep{
			Step: s, MigrationPhase: "expand", Lock: AccessExclusive, ExecPhase: Transactional,
			SQL: renderAddEnumValue(s),
		}, nil

	default:
		return PlannedStep{}, fmt.Errorf("%w: %q", ErrUnsupportedStep, s.Kind)
	}
}

func renderAddColumn(s diff.Step) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ALTER TABLE %s ADD COLUMN %s %s", quote(s.Table), quote(s.Column), s.Type)
	if !s.Nullable && s.Default == nil {
		sb.WriteString(" NOT NULL")
	}
	if s.Default != nil {
		expr := s.Default.Expression
		if expr == "" {
			expr = s.Default.Literal
		}
		if expr != "" {
			fmt.Fprintf(&sb, " DEFAULT %s", expr)
		}
	}
	sb.WriteString(";")
	return sb.String()
}

func renderCreateIndexConcurrently(s diff.Step, name string) string {
	var sb strings.Builder
	sb.WriteString("CREATE INDEX CONCURRENTLY IF NOT EXISTS ")
	sb.WriteString(quote(name))
	sb.WriteString(" ON ")
	sb.WriteString(quote(s.Table))
	if s.Using != "" && s.Using != "btree" {
		fmt.Fprintf(&sb, " USING %s", s.Using)
	}
	fmt.Fprintf(&sb, " (%s)", strings.Join(quoteAll(s.Columns), ", "))
	sb.WriteString(";")
	return sb.String()
}

func renderAddFKNotValid(s diff.Step) string {
	name := fmt.Sprintf("fk_%s_%s", s.Table, s.Column)
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) NOT VALID;",
		quote(s.Table), quote(name), quote(s.Column), quote(s.RefTable), quote(s.RefColumn))
}

func renderValidateFK(s diff.Step) string {
	name := fmt.Sprintf("fk_%s_%s", s.Table, s.Column)
	return fmt.Sprintf("ALTER TABLE %s VALIDATE CONSTRAINT %s;", quote(s.Table), quote(name))
}

func renderAddEnumValue(s diff.Step) string {
	return fmt.Sprintf("ALTER TYPE %s ADD VALUE IF NOT EXISTS %s;", quote(s.Enum), pq.QuoteLiteral(s.EnumValue))
}

func quote(s string) string {
	return pq.QuoteIdentifier(s)
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quote(n)
	}
	return out
}

// ExpandSQL renders 001_expand.sql: every expand-phase step's SQL, each on
// its own line.
func (p *Plan) ExpandSQL() string {
	return renderAll(p.Expand)
}

// ValidateSQL renders 002_validate.sql: every validate-phase step's SQL.
// Empty when there are no validate steps (spec.md scenario B).
func (p *Plan) ValidateSQL() string {
	return renderAll(p.Validate)
}

func renderAll(steps []PlannedStep) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(s.SQL)
		if !strings.HasSuffix(s.SQL, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
