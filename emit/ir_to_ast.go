package emit

import (
	"fmt"

	"github.com/relschema/schemac/core/ast"
	"github.com/relschema/schemac/ident"
	"github.com/relschema/schemac/ir"
)

func buildColumnNode(ids *ident.Service, f *ir.Field) *ast.ColumnNode {
	sqlType := f.BaseType
	if f.List {
		sqlType += "[]"
	}
	col := ast.NewColumn(quote(ids.ColumnName(f.Name)), sqlType)
	if f.NonNull {
		col.SetNotNull()
	}
	if f.Default != nil {
		if f.Default.Expression != "" {
			col.SetDefaultExpression(f.Default.Expression)
		} else if f.Default.Literal != "" {
			col.SetDefault(f.Default.Literal)
		}
	}
	return col
}

// tableConstraints builds the table-level constraint list: primary key,
// unique, foreign key (as table constraints, per spec.md §4.5), plus any
// table-level CHECKs (field-level check(expr) promotions and non-null
// list-item CHECKs already folded into table.Checks by the IR builder).
func tableConstraints(ids *ident.Service, tableName string, table *ir.Table) []*ast.ConstraintNode {
	var out []*ast.ConstraintNode

	var pkCols []string
	for _, f := range table.Fields {
		if f.PrimaryKey {
			pkCols = append(pkCols, quote(ids.ColumnName(f.Name)))
		}
	}
	if len(pkCols) > 0 {
		out = append(out, ast.NewPrimaryKeyConstraint(pkCols...))
	}

	for _, f := range table.Fields {
		if f.Unique && !f.PrimaryKey {
			out = append(out, ast.NewUniqueConstraint(
				ident.ConstraintName(tableName, f.Name, "uk"),
				quote(ids.ColumnName(f.Name)),
			))
		}
	}

	for _, f := range table.Fields {
		if f.ForeignKey == nil {
			continue
		}
		refTable := ids.TableName(f.ForeignKey.RefTable)
		ref := &ast.ForeignKeyRef{
			Table:    quote(refTable),
			Column:   quote(ids.ColumnName(f.ForeignKey.RefColumn)),
			OnDelete: "NO ACTION",
		}
		name := ident.ConstraintName(tableName, f.Name, "fk")
		out = append(out, ast.NewForeignKeyConstraint(name, []string{quote(ids.ColumnName(f.Name))}, ref))
	}

	for _, chk := range table.Checks {
		c := &ast.ConstraintNode{Type: ast.CheckConstraint, Name: chk.Name, Expression: chk.Expression}
		out = append(out, c)
	}

	return out
}

func extensionNode(ext *ir.Extension) *ast.ExtensionNode {
	n := ast.NewExtension(ext.Name)
	if ext.IfNotExists {
		n.SetIfNotExists()
	}
	return n
}

func roleNode(role *ir.Role) *ast.CreateRoleNode {
	n := ast.NewCreateRole(role.Name)
	n.SetLogin(role.Login)
	return n
}

func functionNode(fn *ir.Function) *ast.CreateFunctionNode {
	params := ""
	for i, p := range fn.Parameters {
		if i > 0 {
			params += ", "
		}
		params += fmt.Sprintf("%s %s", p.Name, p.Type)
	}
	n := ast.NewCreateFunction(fn.Name).
		SetParameters(params).
		SetReturns(fn.Returns).
		SetLanguage(fn.Language).
		SetSecurity(fn.Security).
		SetVolatility(fn.Volatility).
		SetBody(fn.Body)
	if fn.Comment != "" {
		n.SetComment(fn.Comment)
	}
	return n
}
