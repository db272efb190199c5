package compiler_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/compiler"
	"github.com/relschema/schemac/config"
)

const simpleSource = `
type User @table {
  id: ID! @pk
  email: String! @unique
}
`

func TestCompileProducesDDLAndSnapshot(t *testing.T) {
	c := qt.New(t)

	result, err := compiler.Compile(simpleSource, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(result.DDL, qt.Contains, "CREATE TABLE")
	c.Assert(result.Snapshot, qt.IsNotNil)
	c.Assert(result.Snapshot.Tables, qt.HasLen, 1)
}

func TestCompileDefaultsConfigWhenNil(t *testing.T) {
	c := qt.New(t)

	result, err := compiler.Compile(simpleSource, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(result.Schema.IRVersion, qt.Equals, config.DefaultIRVersion)
}

func TestCompileParseErrorWraps(t *testing.T) {
	c := qt.New(t)

	_, err := compiler.Compile("type Bad @table { id: ! }", nil)
	c.Assert(err, qt.ErrorMatches, "compiler: parse:.*")
}

func TestCompileDisablesRLSWhenConfigured(t *testing.T) {
	c := qt.New(t)

	src := `
type Doc @table @rls {
  id: ID! @pk
}
`
	cfg := config.Default().WithRLSEnabled(false)
	result, err := compiler.Compile(src, cfg)
	c.Assert(err, qt.IsNil)
	c.Assert(result.DDL, qt.Not(qt.Contains), "ENABLE ROW LEVEL SECURITY")
}

func TestPlanBootstrapWithNoPriorSnapshot(t *testing.T) {
	c := qt.New(t)

	result, err := compiler.Compile(simpleSource, nil)
	c.Assert(err, qt.IsNil)

	p, err := compiler.Plan(result.Schema, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(len(p.Expand) > 0, qt.IsTrue)
	c.Assert(p.Validate, qt.HasLen, 0)
}

func TestPlanAgainstPriorSnapshotOnlyDiffsNewColumns(t *testing.T) {
	c := qt.New(t)

	first, err := compiler.Compile(simpleSource, nil)
	c.Assert(err, qt.IsNil)

	secondSource := `
type User @table {
  id: ID! @pk
  email: String! @unique
  phone: String
}
`
	second, err := compiler.Compile(secondSource, nil)
	c.Assert(err, qt.IsNil)

	p, err := compiler.Plan(second.Schema, first.Snapshot)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Expand, qt.HasLen, 1)
	c.Assert(p.Expand[0].Step.Column, qt.Equals, "phone")
}
