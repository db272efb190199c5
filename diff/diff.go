// Package diff implements the Diff Engine: computes the additive-only set
// of changes between a prior snapshot and the current IR, per spec.md §4.6.
//
// Dropped objects, renames, and type changes are never produced here; they
// are out of scope for the core and would have to be reported as
// diagnostics by a caller that wants them.
package diff

import (
	"github.com/relschema/schemac/ir"
)

// StepKind enumerates the five additive kinds plus the one SPEC_FULL
// addition (add_enum_value) for enum growth.
type StepKind string

const (
	CreateTable             StepKind = "create_table"
	AddColumn                StepKind = "add_column"
	CreateIndexConcurrently StepKind = "create_index_concurrently"
	AddFKNotValid           StepKind = "add_fk_not_valid"
	ValidateFK              StepKind = "validate_fk"
	AddEnumValue            StepKind = "add_enum_value"
)

// Step is one additive change. Fields not relevant to Kind are left zero.
type Step struct {
	Kind       StepKind
	Table      string
	Column     string
	Type       string
	Nullable   bool
	Default    *ir.DefaultValue
	Columns    []string
	Using      string
	Name       string
	RefTable   string
	RefColumn  string
	Enum       string
	EnumValue  string
}

// Diff computes the additive step set taking the schema from prior to curr.
// prior may be nil (bootstrap: every table is new). Enum growth steps are
// computed first and always precede every table step, so an add_enum_value
// step is guaranteed to exist before any add_column step that might default
// to the new value (spec.md §4.7's stable ordering rule).
func Diff(prior, curr *ir.Schema) []Step {
	steps := enumSteps(prior, curr)

	priorTables := map[string]*ir.Table{}
	if prior != nil {
		for _, t := range prior.Tables {
			priorTables[t.Name] = t
		}
	}

	for _, table := range curr.Tables {
		priorTable, existed := priorTables[table.Name]
		if !existed {
			steps = append(steps, Step{Kind: CreateTable, Table: table.Name})
			for _, f := range table.Fields {
				if f.Virtual {
					continue
				}
				steps = append(steps, columnStep(table.Name, f))
			}
			for _, f := range table.Fields {
				steps = append(steps, indexSteps(table.Name, f)...)
			}
			for _, f := range table.Fields {
				if f.ForeignKey != nil {
					steps = append(steps, fkSteps(table.Name, f)...)
				}
			}
			continue
		}

		priorFields := map[string]bool{}
		for _, f := range priorTable.Fields {
			priorFields[f.Name] = true
		}
		priorIndexSigs := map[string]bool{}
		for _, f := range priorTable.Fields {
			for _, req := range f.Indexes {
				priorIndexSigs[indexSignature(priorTable.Name, req)] = true
			}
		}
		priorFKs := map[string]bool{}
		for _, f := range priorTable.Fields {
			if f.ForeignKey != nil {
				priorFKs[f.Name] = true
			}
		}

		for _, f := range table.Fields {
			if f.Virtual {
				continue
			}
			if !priorFields[f.Name] {
				steps = append(steps, columnStep(table.Name, f))
			}
			for _, req := range f.Indexes {
				if !priorIndexSigs[indexSignature(table.Name, req)] {
					steps = append(steps, indexStep(table.Name, req))
				}
			}
			if f.ForeignKey != nil && !priorFKs[f.Name] {
				steps = append(steps, fkSteps(table.Name, f)...)
			}
		}
	}

	return steps
}

// enumSteps computes add_enum_value steps for growth against existing enum
// types. New enum types are created as part of create_table ordering
// upstream; only growth of a pre-existing type is diffed here. Callers must
// place these ahead of the per-table step set: a newly added column may
// default to a value this loop is adding.
func enumSteps(prior, curr *ir.Schema) []Step {
	var steps []Step

	priorEnums := map[string][]string{}
	if prior != nil {
		for _, e := range prior.Enums {
			priorEnums[e.Name] = e.Values
		}
	}
	for _, e := range curr.Enums {
		priorValues, existed := priorEnums[e.Name]
		if !existed {
			continue
		}
		seen := map[string]bool{}
		for _, v := range priorValues {
			seen[v] = true
		}
		for _, v := range e.Values {
			if !seen[v] {
				steps = append(steps, Step{Kind: AddEnumValue, Enum: e.Name, EnumValue: v})
			}
		}
	}

	return steps
}

func columnStep(table string, f *ir.Field) Step {
	sqlType := f.BaseType
	if f.List {
		sqlType += "[]"
	}
	return Step{
		Kind:     AddColumn,
		Table:    table,
		Column:   f.Name,
		Type:     sqlType,
		Nullable: !f.NonNull,
		Default:  f.Default,
	}
}

func indexSteps(table string, f *ir.Field) []Step {
	var out []Step
	for _, req := range f.Indexes {
		out = append(out, indexStep(table, req))
	}
	return out
}

func indexStep(table string, req ir.IndexRequest) Step {
	return Step{
		Kind:    CreateIndexConcurrently,
		Table:   table,
		Columns: req.Columns,
		Using:   req.Method,
		Name:    req.Name,
	}
}

func fkSteps(table string, f *ir.Field) []Step {
	return []Step{
		{Kind: AddFKNotValid, Table: table, Column: f.Name, RefTable: f.ForeignKey.RefTable, RefColumn: f.ForeignKey.RefColumn},
		{Kind: ValidateFK, Table: table, Column: f.Name},
	}
}

func indexSignature(table string, req ir.IndexRequest) string {
	s := table
	for _, c := range req.Columns {
		s += "|" + c
	}
	if req.Unique {
		s += "|u"
	}
	s += "|" + req.Where
	return s
}
