// Package compiler wires the IDL parser, IR builder, DDL emitter, diff
// engine, migration planner, and snapshot writer into the single top-level
// Compile/Plan entry points an executor or CLI drives.
package compiler

import (
	"fmt"

	"github.com/relschema/schemac/config"
	"github.com/relschema/schemac/diff"
	"github.com/relschema/schemac/emit"
	"github.com/relschema/schemac/evidence"
	"github.com/relschema/schemac/ident"
	"github.com/relschema/schemac/idl"
	"github.com/relschema/schemac/ir"
	"github.com/relschema/schemac/migration/plan"
	"github.com/relschema/schemac/snapshot"
)

// Result is everything one compile run produces: the IR itself (for
// callers that want to inspect it), the rendered DDL, the evidence map,
// emitter warnings, and the canonical snapshot ready to persist.
type Result struct {
	Schema   *ir.Schema
	DDL      string
	Evidence *evidence.Map
	Warnings []string
	Snapshot *snapshot.Document
}

// Compile parses source, lowers it to IR, and emits the bootstrap DDL
// script plus the snapshot that should be persisted on success.
func Compile(source string, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	doc, err := idl.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("compiler: parse: %w", err)
	}

	builder := ir.NewBuilder(cfg.IRVersion)
	schema, err := builder.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("compiler: build ir: %w", err)
	}

	ids := ident.New(cfg.IdentifierStrategy)
	ev := evidence.New()
	emitter := emit.New(ids, ev)

	if !cfg.EnableRLS {
		for _, t := range schema.Tables {
			if t.RLS != nil {
				t.RLS.Enabled = false
			}
		}
	}

	ddl, err := emitter.EmitSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("compiler: emit: %w", err)
	}

	return &Result{
		Schema:   schema,
		DDL:      ddl,
		Evidence: ev,
		Warnings: emitter.Warnings(),
		Snapshot: snapshot.Build(schema),
	}, nil
}

// Plan diffs the compiled schema against a prior snapshot (nil on a first
// run, in which case every table is planned as new) and returns the full
// expand/validate migration plan.
func Plan(schema *ir.Schema, priorSnapshot *snapshot.Document) (*plan.Plan, error) {
	var prior *ir.Schema
	if priorSnapshot != nil {
		prior = snapshot.ToIR(priorSnapshot)
	}
	steps := diff.Diff(prior, schema)
	return plan.Build(steps)
}
