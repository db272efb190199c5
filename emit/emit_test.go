package emit_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/config"
	"github.com/relschema/schemac/emit"
	"github.com/relschema/schemac/evidence"
	"github.com/relschema/schemac/ident"
	"github.com/relschema/schemac/idl"
	"github.com/relschema/schemac/ir"
)

func buildSchema(c *qt.C, src string) *ir.Schema {
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)
	schema, err := ir.NewBuilder(config.DefaultIRVersion).Build(doc)
	c.Assert(err, qt.IsNil)
	return schema
}

func emitDDL(c *qt.C, schema *ir.Schema) (string, *evidence.Map) {
	ids := ident.New(config.Preserve)
	ev := evidence.New()
	ddl, err := emit.New(ids, ev).EmitSchema(schema)
	c.Assert(err, qt.IsNil)
	return ddl, ev
}

// Scenario A — bootstrap, single table.
func TestEmitSchemaBootstrapSingleTable(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type User @table {
  id: ID! @primaryKey
  email: String! @unique
}
`)
	ddl, _ := emitDDL(c, schema)

	c.Assert(ddl, qt.Contains, `CREATE TABLE IF NOT EXISTS "Users"`)
	c.Assert(ddl, qt.Contains, `"id" uuid NOT NULL`)
	c.Assert(ddl, qt.Contains, `"email" text NOT NULL`)
	c.Assert(ddl, qt.Contains, `PRIMARY KEY ("id")`)
	c.Assert(ddl, qt.Contains, `UNIQUE ("email")`)
	c.Assert(ddl, qt.Not(qt.Contains), "ENABLE ROW LEVEL SECURITY")
}

// Scenario C — new index with redundancy: a request covered by the primary
// key produces a skip notice, not a CREATE INDEX statement.
func TestEmitSchemaElidesRedundantIndex(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type User @table {
  id: ID! @primaryKey @index
  email: String! @unique
}
`)
	ddl, _ := emitDDL(c, schema)

	c.Assert(ddl, qt.Contains, "Skipped redundant index")
	c.Assert(ddl, qt.Not(qt.Contains), "CREATE INDEX")
}

// Scenario E — RLS preset: owner auto-discovers its column and emits
// ENABLE/FORCE followed by the four policies in fixed order.
func TestEmitSchemaOwnerPresetEmissionOrder(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type Doc @table @rls(preset: "owner") {
  id: ID! @primaryKey
  created_by: String!
}
`)
	ddl, _ := emitDDL(c, schema)

	enableIdx := indexOf(c, ddl, "ENABLE ROW LEVEL SECURITY")
	selectIdx := indexOf(c, ddl, `CREATE POLICY "policy_Docs_select`)
	insertIdx := indexOf(c, ddl, `CREATE POLICY "policy_Docs_insert`)
	updateIdx := indexOf(c, ddl, `CREATE POLICY "policy_Docs_update`)
	deleteIdx := indexOf(c, ddl, `CREATE POLICY "policy_Docs_delete`)

	c.Assert(enableIdx < selectIdx, qt.IsTrue)
	c.Assert(selectIdx < insertIdx, qt.IsTrue)
	c.Assert(insertIdx < updateIdx, qt.IsTrue)
	c.Assert(updateIdx < deleteIdx, qt.IsTrue)
	c.Assert(ddl, qt.Contains, "auth.uid() = created_by")
}

func indexOf(c *qt.C, haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	c.Fatalf("expected substring not found: %q", needle)
	return -1
}

// Testable Property 7 — evidence coverage: every non-virtual field and the
// table itself has at least one evidence record with a non-empty line range.
func TestEmitSchemaRecordsEvidenceForEveryColumn(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type User @table {
  id: ID! @primaryKey
  email: String!
}
`)
	_, ev := emitDDL(c, schema)

	table := schema.Tables[0]
	tableRecs := ev.Get(table.UID)
	c.Assert(tableRecs["table"], qt.HasLen, 1)
	c.Assert(tableRecs["table"][0].LineEnd >= tableRecs["table"][0].LineStart, qt.IsTrue)

	for _, f := range table.Fields {
		recs := ev.Get(f.UID)
		c.Assert(recs["column"], qt.HasLen, 1)
	}
}

// Testable Property 1 — determinism: emitting the same schema twice
// produces byte-identical DDL.
func TestEmitSchemaIsDeterministicAcrossCalls(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type User @table {
  id: ID! @primaryKey
  email: String! @unique
  created_by: String!
}

type Doc @table @rls(preset: "owner") {
  id: ID! @primaryKey
  created_by: String!
}
`)

	first, _ := emitDDL(c, schema)
	second, _ := emitDDL(c, schema)
	c.Assert(first, qt.Equals, second)
}

// §4.4 item 6 — a tenant preset's requested index is emitted after the
// policies, and flows through the same deduplicator as the table's own
// index requests: a duplicate signature is elided with a notice rather than
// a second CREATE INDEX.
func TestEmitSchemaTenantPresetRequestedIndexFlowsThroughDedup(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type Doc @table @rls(preset: "tenant", tenant_column: "org_id", membership_table: "memberships") {
  id: ID! @primaryKey
  org_id: ID! @index
}
`)
	ddl, _ := emitDDL(c, schema)

	enableIdx := indexOf(c, ddl, "ENABLE ROW LEVEL SECURITY")
	deleteIdx := indexOf(c, ddl, `CREATE POLICY "policy_Docs_delete`)
	c.Assert(enableIdx < deleteIdx, qt.IsTrue)
	c.Assert(ddl, qt.Contains, "Skipped redundant index")
}

// Scenario D's add-column half at the emit layer: a non-null column with no
// default must never silently lose its NOT NULL clause (the precise bug a
// coarse qt.Contains("CREATE TABLE") check previously let through).
func TestEmitSchemaNonNullColumnWithoutDefaultKeepsNotNull(t *testing.T) {
	c := qt.New(t)

	schema := buildSchema(c, `
type User @table {
  id: ID! @primaryKey
  org_id: ID! @foreignKey(ref: "Org.id")
}

type Org @table {
  id: ID! @primaryKey
}
`)
	ddl, _ := emitDDL(c, schema)

	c.Assert(ddl, qt.Contains, `"org_id" uuid NOT NULL`)
	c.Assert(ddl, qt.Contains, `FOREIGN KEY ("org_id") REFERENCES "Orgs" ("id")`)
}
