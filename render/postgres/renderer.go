// Package postgres implements the DDL Emitter's Postgres rendering step: a
// Visitor over core/ast nodes that writes deterministic SQL text.
//
// Table, column, and index names arrive already quoted by the Identifier
// Service; the renderer never re-decides those. Constraint, role, and
// function names arrive unquoted and are quoted here via pgx's identifier
// sanitizer, since nothing upstream of the renderer owns that naming.
package postgres

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/relschema/schemac/core/ast"
)

// quoteIdent applies PostgreSQL identifier quoting via pgx's Identifier
// sanitizer. It is used only for names the upstream Identifier Service
// never quotes itself: constraint, role, and function names, which are
// plain Go strings by the time they reach a ConstraintNode/CreateRoleNode/
// CreateFunctionNode.
func quoteIdent(name string) string {
	if name == "" {
		return name
	}
	return pgx.Identifier{name}.Sanitize()
}

// Renderer accumulates rendered statements into a single SQL script.
type Renderer struct {
	buf strings.Builder
}

// New returns an empty Renderer.
func New() *Renderer {
	return &Renderer{}
}

// String returns the accumulated script.
func (r *Renderer) String() string {
	return r.buf.String()
}

// Render walks node, accumulating its SQL text.
func (r *Renderer) Render(node ast.Node) error {
	return node.Accept(r)
}

func (r *Renderer) writeStatement(stmt string) {
	r.buf.WriteString(stmt)
	if !strings.HasSuffix(stmt, ";") {
		r.buf.WriteString(";")
	}
	r.buf.WriteString("\n")
}

func (r *Renderer) VisitCreateTable(n *ast.CreateTableNode) error {
	var parts []string
	for _, col := range n.Columns {
		parts = append(parts, renderColumn(col))
	}
	for _, c := range n.Constraints {
		parts = append(parts, renderConstraint(c, false))
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ( %s )", n.Name, strings.Join(parts, ", "))
	r.writeStatement(stmt)
	return nil
}

func (r *Renderer) VisitAlterTable(n *ast.AlterTableNode) error {
	for _, op := range n.Operations {
		sql, err := renderAlterOperation(n.Name, op)
		if err != nil {
			return err
		}
		r.writeStatement(sql)
	}
	return nil
}

func (r *Renderer) VisitColumn(n *ast.ColumnNode) error {
	r.writeStatement(renderColumn(n))
	return nil
}

func (r *Renderer) VisitConstraint(n *ast.ConstraintNode) error {
	r.writeStatement(renderConstraint(n, true))
	return nil
}

func (r *Renderer) VisitIndex(n *ast.IndexNode) error {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if n.Unique {
		sb.WriteString("UNIQUE ")
	}
	sb.WriteString("INDEX ")
	if n.Concurrently {
		sb.WriteString("CONCURRENTLY ")
	}
	if n.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(n.Name)
	sb.WriteString(" ON ")
	sb.WriteString(n.Table)
	if n.Type != "" {
		fmt.Fprintf(&sb, " USING %s", n.Type)
	}
	fmt.Fprintf(&sb, " (%s)", strings.Join(n.Columns, ", "))
	if n.Condition != "" {
		fmt.Fprintf(&sb, " WHERE %s", n.Condition)
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitDropIndex(n *ast.DropIndexNode) error {
	var sb strings.Builder
	sb.WriteString("DROP INDEX ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(n.Name)
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitEnum(n *ast.EnumNode) error {
	quoted := make([]string, len(n.Values))
	for i, v := range n.Values {
		quoted[i] = pq.QuoteLiteral(v)
	}
	stmt := fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", n.Name, strings.Join(quoted, ", "))
	r.writeStatement(stmt)
	return nil
}

func (r *Renderer) VisitComment(n *ast.CommentNode) error {
	r.writeStatement(n.Text)
	return nil
}

func (r *Renderer) VisitDropTable(n *ast.DropTableNode) error {
	var sb strings.Builder
	sb.WriteString("DROP TABLE ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(n.Name)
	if n.Cascade {
		sb.WriteString(" CASCADE")
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitCreateType(n *ast.CreateTypeNode) error {
	switch def := n.TypeDef.(type) {
	case ast.EnumTypeDefinition:
		quoted := make([]string, len(def.Values))
		for i, v := range def.Values {
			quoted[i] = pq.QuoteLiteral(v)
		}
		r.writeStatement(fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", n.Name, strings.Join(quoted, ", ")))
	default:
		return fmt.Errorf("postgres: unsupported CREATE TYPE definition for %s", n.Name)
	}
	return nil
}

func (r *Renderer) VisitAlterType(n *ast.AlterTypeNode) error {
	for _, op := range n.Operations {
		switch o := op.(type) {
		case *ast.AddEnumValueOperation:
			var sb strings.Builder
			fmt.Fprintf(&sb, "ALTER TYPE %s ADD VALUE ", n.Name)
			if o.IfNotExist {
				sb.WriteString("IF NOT EXISTS ")
			}
			sb.WriteString(pq.QuoteLiteral(o.Value))
			if o.Before != "" {
				fmt.Fprintf(&sb, " BEFORE %s", pq.QuoteLiteral(o.Before))
			}
			if o.After != "" {
				fmt.Fprintf(&sb, " AFTER %s", pq.QuoteLiteral(o.After))
			}
			r.writeStatement(sb.String())
		default:
			return fmt.Errorf("postgres: unsupported ALTER TYPE operation on %s", n.Name)
		}
	}
	return nil
}

func (r *Renderer) VisitDropType(n *ast.DropTypeNode) error {
	var sb strings.Builder
	sb.WriteString("DROP TYPE ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(n.Name)
	if n.Cascade {
		sb.WriteString(" CASCADE")
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitExtension(n *ast.ExtensionNode) error {
	var sb strings.Builder
	sb.WriteString("CREATE EXTENSION ")
	if n.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(n.Name)
	if n.Version != "" {
		fmt.Fprintf(&sb, " VERSION '%s'", n.Version)
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitDropExtension(n *ast.DropExtensionNode) error {
	var sb strings.Builder
	sb.WriteString("DROP EXTENSION ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(n.Name)
	if n.Cascade {
		sb.WriteString(" CASCADE")
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitCreateFunction(n *ast.CreateFunctionNode) error {
	stmt := fmt.Sprintf(
		"CREATE OR REPLACE FUNCTION %s(%s) RETURNS %s LANGUAGE %s SECURITY %s %s AS $$ %s $$",
		quoteIdent(n.Name), n.Parameters, n.Returns, n.Language, n.Security, n.Volatility, n.Body,
	)
	r.writeStatement(stmt)
	return nil
}

func (r *Renderer) VisitDropFunction(n *ast.DropFunctionNode) error {
	var sb strings.Builder
	sb.WriteString("DROP FUNCTION ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	fmt.Fprintf(&sb, "%s(%s)", quoteIdent(n.Name), n.Parameters)
	if n.Cascade {
		sb.WriteString(" CASCADE")
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitCreatePolicy(n *ast.CreatePolicyNode) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE POLICY %s ON %s FOR %s TO %s", n.Name, n.Table, n.PolicyFor, n.ToRoles)
	if n.UsingExpression != "" {
		fmt.Fprintf(&sb, " USING (%s)", n.UsingExpression)
	}
	if n.WithCheckExpression != "" {
		fmt.Fprintf(&sb, " WITH CHECK (%s)", n.WithCheckExpression)
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitDropPolicy(n *ast.DropPolicyNode) error {
	var sb strings.Builder
	sb.WriteString("DROP POLICY ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	fmt.Fprintf(&sb, "%s ON %s", n.Name, n.Table)
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitAlterTableEnableRLS(n *ast.AlterTableEnableRLSNode) error {
	r.writeStatement(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", n.Table))
	r.writeStatement(fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", n.Table))
	return nil
}

func (r *Renderer) VisitAlterTableDisableRLS(n *ast.AlterTableDisableRLSNode) error {
	r.writeStatement(fmt.Sprintf("ALTER TABLE %s DISABLE ROW LEVEL SECURITY", n.Table))
	return nil
}

func (r *Renderer) VisitCreateRole(n *ast.CreateRoleNode) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE ROLE %s", quoteIdent(n.Name))
	if n.Login {
		sb.WriteString(" LOGIN")
	}
	if n.Superuser {
		sb.WriteString(" SUPERUSER")
	}
	if n.CreateDB {
		sb.WriteString(" CREATEDB")
	}
	if n.CreateRole {
		sb.WriteString(" CREATEROLE")
	}
	if n.Inherit {
		sb.WriteString(" INHERIT")
	} else {
		sb.WriteString(" NOINHERIT")
	}
	if n.Password != "" {
		fmt.Fprintf(&sb, " PASSWORD %s", pq.QuoteLiteral(n.Password))
	}
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitDropRole(n *ast.DropRoleNode) error {
	var sb strings.Builder
	sb.WriteString("DROP ROLE ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(quoteIdent(n.Name))
	r.writeStatement(sb.String())
	return nil
}

func (r *Renderer) VisitAlterRole(n *ast.AlterRoleNode) error {
	for _, op := range n.Operations {
		switch o := op.(type) {
		case *ast.SetLoginOperation:
			verb := "NOLOGIN"
			if o.Login {
				verb = "LOGIN"
			}
			r.writeStatement(fmt.Sprintf("ALTER ROLE %s %s", quoteIdent(n.Name), verb))
		case *ast.SetPasswordOperation:
			r.writeStatement(fmt.Sprintf("ALTER ROLE %s PASSWORD %s", quoteIdent(n.Name), pq.QuoteLiteral(o.Password)))
		default:
			return fmt.Errorf("postgres: unsupported ALTER ROLE operation on %s", n.Name)
		}
	}
	return nil
}

func renderColumn(col *ast.ColumnNode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", col.Name, col.Type)
	if !col.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if col.Default != nil {
		if col.Default.Expression != "" {
			fmt.Fprintf(&sb, " DEFAULT %s", col.Default.Expression)
		} else if col.Default.Value != "" {
			fmt.Fprintf(&sb, " DEFAULT %s", col.Default.Value)
		}
	}
	return sb.String()
}

// renderConstraint renders a table-level constraint. withName controls
// whether a CONSTRAINT clause prefixes the body — omitted for inline
// CREATE TABLE bodies (spec.md scenario A), included for ALTER TABLE ADD
// CONSTRAINT steps (spec.md scenario D).
func renderConstraint(c *ast.ConstraintNode, withName bool) string {
	var body string
	switch c.Type {
	case ast.PrimaryKeyConstraint:
		body = fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(c.Columns, ", "))
	case ast.UniqueConstraint:
		body = fmt.Sprintf("UNIQUE (%s)", strings.Join(c.Columns, ", "))
	case ast.ForeignKeyConstraint:
		onDelete := c.Reference.OnDelete
		if onDelete == "" {
			onDelete = "NO ACTION"
		}
		body = fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
			strings.Join(c.Columns, ", "), c.Reference.Table, c.Reference.Column, onDelete)
	case ast.CheckConstraint:
		body = fmt.Sprintf("CHECK (%s)", c.Expression)
	case ast.ExcludeConstraint:
		body = fmt.Sprintf("EXCLUDE USING %s (%s)", c.UsingMethod, c.ExcludeElements)
		if c.WhereCondition != "" {
			body += fmt.Sprintf(" WHERE (%s)", c.WhereCondition)
		}
	}
	if withName && c.Name != "" {
		return fmt.Sprintf("CONSTRAINT %s %s", quoteIdent(c.Name), body)
	}
	return body
}

func renderAlterOperation(table string, op ast.AlterOperation) (string, error) {
	switch o := op.(type) {
	case *ast.AddColumnOperation:
		var sb strings.Builder
		fmt.Fprintf(&sb, "ALTER TABLE %s ADD COLUMN %s", table, renderColumn(o.Column))
		return sb.String(), nil
	case *ast.AddConstraintOperation:
		return fmt.Sprintf("ALTER TABLE %s ADD %s", table, renderConstraint(o.Constraint, true)), nil
	case *ast.ValidateConstraintOperation:
		return fmt.Sprintf("ALTER TABLE %s VALIDATE CONSTRAINT %s", table, quoteIdent(o.Name)), nil
	default:
		return "", fmt.Errorf("postgres: unsupported ALTER TABLE operation on %s", table)
	}
}
