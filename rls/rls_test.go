package rls_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/ir"
	"github.com/relschema/schemac/rls"
)

func warnCollector() (func(string), *[]string) {
	var warnings []string
	return func(msg string) { warnings = append(warnings, msg) }, &warnings
}

func TestExpandReturnsNilWhenDisabled(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{Name: "docs", RLS: &ir.RLSConfig{Enabled: false}}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp, qt.IsNil)
}

func TestExpandReturnsNilWhenNoConfig(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{Name: "docs"}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp, qt.IsNil)
}

func TestExpandExplicitOrdersPoliciesSelectInsertUpdateDelete(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled: true,
			Select:  "true",
			Insert:  "true",
			Update:  "owner_id = auth.uid()",
			Delete:  "false",
			Roles:   []string{"authenticated"},
		},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.Policies, qt.HasLen, 4)
	var ops []string
	for _, p := range exp.Policies {
		ops = append(ops, p.Op)
	}
	c.Assert(ops, qt.DeepEquals, []string{"select", "insert", "update", "delete"})
}

func TestExpandOwnerPreset(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled:    true,
			Preset:     "owner",
			PresetArgs: map[string]string{"owner_column": "created_by"},
			Roles:      []string{"authenticated"},
		},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.Policies, qt.HasLen, 4)
	c.Assert(exp.Policies[0].Expression, qt.Equals, "auth.uid() = created_by")
}

func TestExpandUnknownPresetIsError(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS:  &ir.RLSConfig{Enabled: true, Preset: "nonexistent"},
	}
	_, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.ErrorMatches, ".*unknown rls preset.*")
}

func TestExpandMissingPresetParamIsError(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS:  &ir.RLSConfig{Enabled: true, Preset: "tenant"},
	}
	_, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.ErrorMatches, ".*missing required parameter.*")
}

func TestExpandOwnerPresetAutoDiscoversColumn(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name:   "docs",
		Fields: []*ir.Field{{Name: "created_by"}},
		RLS:    &ir.RLSConfig{Enabled: true, Preset: "owner", Roles: []string{"authenticated"}},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.Policies[0].Expression, qt.Equals, "auth.uid() = created_by")
}

func TestExpandPresetWithTenantWarnsOnConflict(t *testing.T) {
	c := qt.New(t)

	warn, warnings := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled:    true,
			Preset:     "owner",
			PresetArgs: map[string]string{"owner_column": "created_by"},
			Roles:      []string{"authenticated"},
		},
	}
	_, err := rls.Expand(table, rls.TenantColumn("org_id"), warn)
	c.Assert(err, qt.IsNil)
	c.Assert(*warnings, qt.HasLen, 1)
}

func TestTenantColumnNilForEmptyString(t *testing.T) {
	c := qt.New(t)

	c.Assert(rls.TenantColumn(""), qt.IsNil)
	c.Assert(*rls.TenantColumn("org_id"), qt.Equals, "org_id")
}

func TestExpandSoftDeletePresetEmitsNoDeletePolicy(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled:    true,
			Preset:     "soft-delete",
			PresetArgs: map[string]string{"deleted_at_column": "deleted_at"},
			Roles:      []string{"authenticated"},
		},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.Policies, qt.HasLen, 3)
	for _, p := range exp.Policies {
		c.Assert(p.Op, qt.Not(qt.Equals), "delete")
	}
}

func TestExpandTenantPresetAddsHelperFunctionAndAdminDeleteGuard(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled: true,
			Preset:  "tenant",
			PresetArgs: map[string]string{
				"tenant_column":    "org_id",
				"membership_table": "memberships",
			},
			Roles: []string{"authenticated"},
		},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.HelperFunctions, qt.HasLen, 1)

	var deletePolicy *rls.Policy
	for i := range exp.Policies {
		if exp.Policies[i].Op == "delete" {
			deletePolicy = &exp.Policies[i]
		}
	}
	c.Assert(deletePolicy, qt.IsNotNil)
	c.Assert(deletePolicy.Expression, qt.Contains, "is_admin()")

	c.Assert(exp.RequestedIndexes, qt.HasLen, 1)
	c.Assert(exp.RequestedIndexes[0].Columns, qt.DeepEquals, []string{"org_id"})
}

func TestExpandHierarchicalPresetRequestsIndexOnOrgColumn(t *testing.T) {
	c := qt.New(t)

	warn, _ := warnCollector()
	table := &ir.Table{
		Name: "docs",
		RLS: &ir.RLSConfig{
			Enabled: true,
			Preset:  "hierarchical",
			PresetArgs: map[string]string{
				"org_column":          "org_id",
				"org_hierarchy_table": "org_tree",
			},
			Roles: []string{"authenticated"},
		},
	}
	exp, err := rls.Expand(table, nil, warn)
	c.Assert(err, qt.IsNil)
	c.Assert(exp.HelperFunctions, qt.HasLen, 1)
	c.Assert(exp.RequestedIndexes, qt.HasLen, 1)
	c.Assert(exp.RequestedIndexes[0].Columns, qt.DeepEquals, []string{"org_id"})
}

func TestPresetNamesSorted(t *testing.T) {
	c := qt.New(t)

	names := rls.PresetNames()
	c.Assert(names, qt.HasLen, 8)
	for i := 1; i < len(names); i++ {
		c.Assert(names[i-1] < names[i], qt.IsTrue)
	}
}
