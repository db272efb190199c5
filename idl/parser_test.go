package idl_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/idl"
)

func TestParseSimpleType(t *testing.T) {
	c := qt.New(t)

	src := `
type User @table {
  id: ID! @pk
  email: String! @unique
  age: Int
}
`
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)
	c.Assert(doc.Types, qt.HasLen, 1)

	ty := doc.Types[0]
	c.Assert(ty.Name, qt.Equals, "User")
	c.Assert(idl.HasAnnotation(ty.Annotations, "table"), qt.IsTrue)
	c.Assert(ty.Fields, qt.HasLen, 3)

	id := ty.Fields[0]
	c.Assert(id.Name, qt.Equals, "id")
	c.Assert(id.Type.Kind, qt.Equals, idl.NonNullType)
	c.Assert(id.Type.Of.Kind, qt.Equals, idl.NamedType)
	c.Assert(id.Type.Of.Name, qt.Equals, "ID")
	c.Assert(idl.HasAnnotation(id.Annotations, "pk"), qt.IsTrue)
}

func TestParseListAndNonNullWrappers(t *testing.T) {
	c := qt.New(t)

	src := `
type Post @table {
  tags: [String!]!
}
`
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)

	field := doc.Types[0].Fields[0]
	c.Assert(field.Type.Kind, qt.Equals, idl.NonNullType)
	list := field.Type.Of
	c.Assert(list.Kind, qt.Equals, idl.ListType)
	inner := list.Of
	c.Assert(inner.Kind, qt.Equals, idl.NonNullType)
	c.Assert(inner.Of.Name, qt.Equals, "String")
}

func TestParseAnnotationArguments(t *testing.T) {
	c := qt.New(t)

	src := `
type Org @table {
  id: ID! @pk
  createdBy: ID! @fk(table: "users", column: "id")
}
`
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)

	field := doc.Types[0].Fields[1]
	ann, ok := idl.FindAnnotation(field.Annotations, "fk")
	c.Assert(ok, qt.IsTrue)
	c.Assert(ann.Args["table"].Str, qt.Equals, "users")
	c.Assert(ann.Args["column"].Str, qt.Equals, "id")
}

func TestParseEnum(t *testing.T) {
	c := qt.New(t)

	src := `
enum Role {
  ADMIN
  MEMBER
  GUEST
}
`
	doc, err := idl.Parse(src)
	c.Assert(err, qt.IsNil)
	c.Assert(doc.Enums, qt.HasLen, 1)
	c.Assert(doc.Enums[0].Name, qt.Equals, "Role")
	c.Assert(doc.Enums[0].Values, qt.DeepEquals, []string{"ADMIN", "MEMBER", "GUEST"})
}

func TestParseUnterminatedStringIsError(t *testing.T) {
	c := qt.New(t)

	src := `
type Bad @table {
  id: ID! @default(value: "oops)
}
`
	_, err := idl.Parse(src)
	c.Assert(err, qt.ErrorMatches, ".*string.*")
}

func TestParseRejectsUnknownTypeWrapper(t *testing.T) {
	c := qt.New(t)

	// A bare '!' with no preceding type is malformed input.
	src := `
type Bad @table {
  id: !
}
`
	_, err := idl.Parse(src)
	c.Assert(err, qt.IsNotNil)
}
