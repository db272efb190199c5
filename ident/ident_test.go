package ident_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/config"
	"github.com/relschema/schemac/ident"
)

func TestTableNamePluralizesWithoutDoublingS(t *testing.T) {
	c := qt.New(t)

	svc := ident.New(config.Preserve)
	c.Assert(svc.TableName("User"), qt.Equals, "Users")
	c.Assert(svc.TableName("Status"), qt.Equals, "Status")
}

func TestColumnNameSnakeCase(t *testing.T) {
	c := qt.New(t)

	svc := ident.New(config.SnakeCase)
	c.Assert(svc.ColumnName("createdAt"), qt.Equals, "created_at")
	c.Assert(svc.ColumnName("ID"), qt.Equals, "id")
}

func TestColumnNameLowerAndUpper(t *testing.T) {
	c := qt.New(t)

	c.Assert(ident.New(config.Lower).ColumnName("MixedCase"), qt.Equals, "mixedcase")
	c.Assert(ident.New(config.Upper).ColumnName("mixedCase"), qt.Equals, "MIXEDCASE")
}

func TestNewDefaultsEmptyStrategyToPreserve(t *testing.T) {
	c := qt.New(t)

	svc := ident.New("")
	c.Assert(svc.ColumnName("CamelCase"), qt.Equals, "CamelCase")
}

func TestNeedsQuotingReservedWord(t *testing.T) {
	c := qt.New(t)

	svc := ident.New(config.Preserve)
	c.Assert(svc.NeedsQuoting("order"), qt.IsTrue)
	c.Assert(svc.NeedsQuoting("User"), qt.IsTrue) // mixed case
	c.Assert(svc.NeedsQuoting("plain_name"), qt.IsFalse)
}

func TestQuoteDoublesEmbeddedQuotes(t *testing.T) {
	c := qt.New(t)

	svc := ident.New(config.Preserve)
	c.Assert(svc.Quote(`we"ird`), qt.Equals, `"we""ird"`)
	c.Assert(svc.Quote("plain_name"), qt.Equals, "plain_name")
}

func TestIndexAndConstraintAndPolicyNaming(t *testing.T) {
	c := qt.New(t)

	c.Assert(ident.IndexName("users", "email", ""), qt.Equals, "idx_users_email")
	c.Assert(ident.IndexName("users", "email", "uniq"), qt.Equals, "uniq_users_email")
	c.Assert(ident.IndexNameMulti("users", []string{"org_id", "email"}, "idx"), qt.Equals, "idx_users_org_id_email")
	c.Assert(ident.ConstraintName("users", "org_id", "fk"), qt.Equals, "fk_users_org_id")
	c.Assert(ident.PolicyName("users", "select", "tbl_user"), qt.Equals, "policy_users_select_tbl_user")
}
