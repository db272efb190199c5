package snapshot_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/ir"
	"github.com/relschema/schemac/snapshot"
)

func sampleSchema() *ir.Schema {
	return &ir.Schema{
		IRVersion: "1",
		Tables: []*ir.Table{
			{
				Name: "Users",
				Fields: []*ir.Field{
					{Name: "id", BaseType: "uuid", NonNull: true},
					{Name: "email", BaseType: "text", NonNull: true,
						Indexes: []ir.IndexRequest{{Columns: []string{"email"}, Unique: true}}},
					{Name: "orgId", BaseType: "uuid", ForeignKey: &ir.ForeignKeyRef{Column: "orgId", RefTable: "Orgs", RefColumn: "id"}},
					{Name: "posts", Virtual: true},
				},
			},
		},
		Enums: []*ir.Enum{{Name: "Role", Values: []string{"ADMIN", "MEMBER"}}},
	}
}

func TestBuildSkipsVirtualFields(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	c.Assert(doc.Tables, qt.HasLen, 1)
	c.Assert(doc.Tables[0].Fields, qt.HasLen, 3)
	for _, f := range doc.Tables[0].Fields {
		c.Assert(f.Name, qt.Not(qt.Equals), "posts")
	}
}

func TestBuildCapturesIndexesAndForeignKeys(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	table := doc.Tables[0]
	c.Assert(table.Indexes, qt.HasLen, 1)
	c.Assert(table.Indexes[0].Unique, qt.IsTrue)
	c.Assert(table.ForeignKeys, qt.HasLen, 1)
	c.Assert(table.ForeignKeys[0].RefTable, qt.Equals, "Orgs")
}

func TestBuildCapturesEnums(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	c.Assert(doc.Enums, qt.HasLen, 1)
	c.Assert(doc.Enums[0].Values, qt.DeepEquals, []string{"ADMIN", "MEMBER"})
}

func TestMarshalParseRoundTrip(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	data, err := snapshot.Marshal(doc)
	c.Assert(err, qt.IsNil)

	parsed, err := snapshot.Parse(data)
	c.Assert(err, qt.IsNil)
	if diff := cmp.Diff(doc, parsed); diff != "" {
		c.Fatalf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestParseInvalidYAMLIsError(t *testing.T) {
	c := qt.New(t)

	_, err := snapshot.Parse([]byte("tables: [this is not: valid: yaml"))
	c.Assert(err, qt.IsNotNil)
}

func TestToIRReconstructsDiffableSchema(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	schema := snapshot.ToIR(doc)

	want := &ir.Schema{
		IRVersion: "1",
		Tables: []*ir.Table{{
			Name: "Users",
			Fields: []*ir.Field{
				{Name: "id", BaseType: "uuid", NonNull: true},
				{
					Name: "email", BaseType: "text", NonNull: true,
					Indexes: []ir.IndexRequest{{Columns: []string{"email"}, Unique: true}},
				},
				{Name: "orgId", BaseType: "uuid", ForeignKey: &ir.ForeignKeyRef{RefTable: "Orgs", RefColumn: "id"}},
			},
		}},
		Enums: []*ir.Enum{{Name: "Role", Values: []string{"ADMIN", "MEMBER"}}},
	}

	if diff := cmp.Diff(want, schema); diff != "" {
		c.Fatalf("ToIR reconstruction mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalIsDeterministicAcrossCalls(t *testing.T) {
	c := qt.New(t)

	doc := snapshot.Build(sampleSchema())
	a, err := snapshot.Marshal(doc)
	c.Assert(err, qt.IsNil)
	b, err := snapshot.Marshal(doc)
	c.Assert(err, qt.IsNil)
	c.Assert(string(a), qt.Equals, string(b))
}
