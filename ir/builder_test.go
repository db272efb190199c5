package ir_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/idl"
	"github.com/relschema/schemac/ir"
)

func build(c *qt.C, src string) *ir.Schema {
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)
	schema, err := ir.NewBuilder("1").Build(doc)
	c.Assert(err, qt.IsNil)
	return schema
}

func TestBuildSimpleTable(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type User @table {
  id: ID! @pk
  email: String! @unique
  age: Int
}
`)
	c.Assert(schema.Tables, qt.HasLen, 1)
	table := schema.Tables[0]
	c.Assert(table.Name, qt.Equals, "User")
	c.Assert(table.Fields, qt.HasLen, 3)

	id := table.Fields[0]
	c.Assert(id.BaseType, qt.Equals, "uuid")
	c.Assert(id.NonNull, qt.IsTrue)
	c.Assert(id.PrimaryKey, qt.IsTrue)

	email := table.Fields[1]
	c.Assert(email.BaseType, qt.Equals, "text")
	c.Assert(email.Unique, qt.IsTrue)

	age := table.Fields[2]
	c.Assert(age.BaseType, qt.Equals, "integer")
	c.Assert(age.NonNull, qt.IsFalse)
}

func TestBuildIgnoresNonTableTypes(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Orphan {
  id: ID!
}
`)
	c.Assert(schema.Tables, qt.HasLen, 0)
}

func TestBuildDuplicateTableIsError(t *testing.T) {
	c := qt.New(t)

	doc, err := idl.Parse(`
type User @table {
  id: ID!
}
type User @table {
  id: ID!
}
`)
	c.Assert(err, qt.IsNil)

	_, buildErr := ir.NewBuilder("1").Build(doc)
	c.Assert(buildErr, qt.ErrorMatches, ".*duplicate table name.*")
}

func TestBuildUnknownScalarIsError(t *testing.T) {
	c := qt.New(t)

	doc, err := idl.Parse(`
type Widget @table {
  id: ID!
  blob: Gibberish
}
`)
	c.Assert(err, qt.IsNil)

	_, buildErr := ir.NewBuilder("1").Build(doc)
	c.Assert(buildErr, qt.ErrorMatches, ".*unknown base scalar type.*")
}

func TestBuildCollectErrorsAccumulatesAll(t *testing.T) {
	c := qt.New(t)

	doc, err := idl.Parse(`
type A @table {
  id: ID!
  bad1: NotAType
}
type A @table {
  id: ID!
  bad2: AlsoNotAType
}
`)
	c.Assert(err, qt.IsNil)

	b := ir.NewBuilder("1")
	b.CollectErrors = true
	_, buildErr := b.Build(doc)
	c.Assert(buildErr, qt.IsNotNil)

	errs, ok := buildErr.(ir.ValidationErrors)
	c.Assert(ok, qt.IsTrue)
	c.Assert(len(errs) >= 2, qt.IsTrue)
}

func TestBuildForeignKeyRef(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Org @table {
  id: ID! @pk
  createdBy: ID! @fk(ref: "User.id")
}
`)
	field := schema.Tables[0].Fields[1]
	c.Assert(field.ForeignKey, qt.IsNotNil)
	c.Assert(field.ForeignKey.RefTable, qt.Equals, "User")
	c.Assert(field.ForeignKey.RefColumn, qt.Equals, "id")
}

func TestBuildMalformedForeignKeyIsError(t *testing.T) {
	c := qt.New(t)

	doc, err := idl.Parse(`
type Org @table {
  id: ID!
  createdBy: ID! @fk(ref: "nodot")
}
`)
	c.Assert(err, qt.IsNil)

	_, buildErr := ir.NewBuilder("1").Build(doc)
	c.Assert(buildErr, qt.ErrorMatches, ".*malformed foreignKey ref.*")
}

func TestBuildNonNullListItemGeneratesCheckConstraint(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Post @table {
  id: ID! @pk
  tags: [String!]!
}
`)
	table := schema.Tables[0]
	tags := table.Fields[1]
	c.Assert(tags.List, qt.IsTrue)
	c.Assert(tags.ItemNonNull, qt.IsTrue)

	var found bool
	for _, chk := range table.Checks {
		if chk.Name == "chk_Post_tags_notnull" {
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

func TestBuildFieldCheckPromotedToTableCheck(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Account @table {
  id: ID! @pk
  balance: Int @check(expr: "balance >= 0")
}
`)
	table := schema.Tables[0]
	c.Assert(table.Checks, qt.HasLen, 1)
	c.Assert(table.Checks[0].Expression, qt.Equals, "balance >= 0")
}

func TestBuildRLSConfigDefaults(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Doc @table @rls {
  id: ID! @pk
}
`)
	rlsCfg := schema.Tables[0].RLS
	c.Assert(rlsCfg, qt.IsNotNil)
	c.Assert(rlsCfg.Enabled, qt.IsTrue)
	c.Assert(rlsCfg.Select, qt.Equals, "true")
	c.Assert(rlsCfg.Delete, qt.Equals, "false")
	c.Assert(rlsCfg.Roles, qt.DeepEquals, []string{"authenticated"})
}

func TestBuildRLSPresetArgs(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type Doc @table @rls(preset: "owner", owner_column: "created_by") {
  id: ID! @pk
  created_by: ID!
}
`)
	rlsCfg := schema.Tables[0].RLS
	c.Assert(rlsCfg.Preset, qt.Equals, "owner")
	c.Assert(rlsCfg.PresetArgs["owner_column"], qt.Equals, "created_by")
}

func TestBuildVirtualFieldContributesNoColumn(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type User @table {
  id: ID! @pk
}
type Post @table {
  id: ID! @pk
  author: User @belongsTo
  comments: [Comment] @hasMany
}
type Comment @table {
  id: ID! @pk
}
`)
	var post *ir.Table
	for _, t := range schema.Tables {
		if t.Name == "Post" {
			post = t
		}
	}
	c.Assert(post, qt.IsNotNil)

	var comments *ir.Field
	for _, f := range post.Fields {
		if f.Name == "comments" {
			comments = f
		}
	}
	c.Assert(comments, qt.IsNotNil)
	c.Assert(comments.Virtual, qt.IsTrue)
}

func TestBuildUIDFallsBackToSynthesized(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type User @table {
  id: ID! @pk
}
`)
	c.Assert(schema.Tables[0].UID, qt.Equals, "tbl_user")
}

func TestBuildUIDExplicitValue(t *testing.T) {
	c := qt.New(t)

	schema := build(c, `
type User @table @uid(value: "custom_uid") {
  id: ID! @pk
}
`)
	c.Assert(schema.Tables[0].UID, qt.Equals, "custom_uid")
}
