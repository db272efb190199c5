package postgres_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/core/ast"
	"github.com/relschema/schemac/render/postgres"
)

func renderOne(c *qt.C, node ast.Node) string {
	r := postgres.New()
	c.Assert(r.Render(node), qt.IsNil)
	return r.String()
}

func TestRenderCreateTableWithColumnsAndConstraint(t *testing.T) {
	c := qt.New(t)

	table := ast.NewCreateTable(`"users"`)
	table.AddColumn(ast.NewColumn(`"id"`, "uuid").SetPrimary())
	table.AddColumn(ast.NewColumn(`"email"`, "text").SetNotNull())
	table.AddConstraint(ast.NewPrimaryKeyConstraint(`"id"`))

	out := renderOne(c, table)
	c.Assert(out, qt.Contains, `CREATE TABLE IF NOT EXISTS "users"`)
	c.Assert(out, qt.Contains, `"id" uuid NOT NULL`)
	c.Assert(out, qt.Contains, "PRIMARY KEY")
}

func TestRenderEnumQuotesLiteralsNotBackslashEscaped(t *testing.T) {
	c := qt.New(t)

	out := renderOne(c, ast.NewEnum(`"role"`, "o'brien", "ADMIN"))
	c.Assert(out, qt.Contains, `'o''brien'`)
}

func TestRenderForeignKeyConstraintDefaultsOnDeleteNoAction(t *testing.T) {
	c := qt.New(t)

	fk := ast.NewForeignKeyConstraint("fk_posts_author", []string{`"author_id"`}, &ast.ForeignKeyRef{
		Table: `"users"`, Column: `"id"`,
	})
	table := ast.NewCreateTable(`"posts"`)
	table.AddColumn(ast.NewColumn(`"author_id"`, "uuid"))
	table.AddConstraint(fk)

	out := renderOne(c, table)
	c.Assert(out, qt.Contains, "ON DELETE NO ACTION")
}

func TestRenderUniqueIndexIfNotExistsWithCondition(t *testing.T) {
	c := qt.New(t)

	idx := ast.NewIndex(`"idx_users_email"`, `"users"`, `"email"`)
	idx.SetUnique().SetIfNotExists().SetCondition("deleted_at IS NULL")

	out := renderOne(c, idx)
	c.Assert(out, qt.Contains, "CREATE UNIQUE INDEX IF NOT EXISTS")
	c.Assert(out, qt.Contains, "WHERE deleted_at IS NULL")
}

func TestRenderCreateRoleQuotesNameAndPasswordLiteral(t *testing.T) {
	c := qt.New(t)

	role := ast.NewCreateRole(`weird"role`)
	role.Login = true
	role.Password = `o'brien`

	out := renderOne(c, role)
	c.Assert(out, qt.Contains, `"weird""role"`)
	c.Assert(out, qt.Contains, `'o''brien'`)
}

func TestRenderAlterTableValidateConstraintQuotesName(t *testing.T) {
	c := qt.New(t)

	alter := &ast.AlterTableNode{
		Name:       `"posts"`,
		Operations: []ast.AlterOperation{&ast.ValidateConstraintOperation{Name: "fk_posts_author"}},
	}

	out := renderOne(c, alter)
	c.Assert(out, qt.Contains, `VALIDATE CONSTRAINT "fk_posts_author"`)
}

func TestRenderEnableRLSEmitsBothStatements(t *testing.T) {
	c := qt.New(t)

	out := renderOne(c, ast.NewAlterTableEnableRLS(`"docs"`))
	c.Assert(out, qt.Contains, "ENABLE ROW LEVEL SECURITY")
	c.Assert(out, qt.Contains, "FORCE ROW LEVEL SECURITY")
}

func TestRenderCreatePolicy(t *testing.T) {
	c := qt.New(t)

	pol := ast.NewCreatePolicy(`"policy_docs_select"`, `"docs"`).
		SetPolicyFor("SELECT").
		SetToRoles("authenticated").
		SetUsingExpression("owner_id = auth.uid()")

	out := renderOne(c, pol)
	c.Assert(out, qt.Contains, "CREATE POLICY")
	c.Assert(out, qt.Contains, "FOR SELECT")
	c.Assert(out, qt.Contains, "USING (owner_id = auth.uid())")
}
