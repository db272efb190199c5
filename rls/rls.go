// Package rls implements the RLS Expander: turns a table's RLSConfig into a
// deterministic, ordered set of artifacts (helper functions, policies, and
// requested supporting indexes) per spec.md §4.4. The ENABLE/FORCE
// statements are written by the emitter; no auxiliary views are produced.
package rls

import (
	"fmt"
	"sort"

	"github.com/go-extras/go-kit/ptr"

	"github.com/relschema/schemac/ir"
)

// ErrUnknownPreset is wrapped when RLSConfig.Preset names a preset not in
// the catalog.
var ErrUnknownPreset = fmt.Errorf("unknown rls preset")

// ErrMissingPresetParam is wrapped when a preset's required parameter is
// absent from RLSConfig.PresetArgs.
var ErrMissingPresetParam = fmt.Errorf("rls preset missing required parameter")

// Policy is one resolved CREATE POLICY target.
type Policy struct {
	Op         string // select, insert, update, delete; emission order fixed
	Expression string
	Roles      []string
}

// Expansion is the full ordered set of artifacts the DDL emitter renders
// for one RLS-enabled table.
type Expansion struct {
	HelperFunctions  []*ir.Function
	Policies         []Policy
	RequestedIndexes []ir.IndexRequest
}

// opOrder is the fixed emission order spec.md §4.4 mandates.
var opOrder = []string{"select", "insert", "update", "delete"}

// presetRequiredParams lists the parameters each catalog preset requires.
var presetRequiredParams = map[string][]string{
	"owner":         {"owner_column"},
	"tenant":        {"tenant_column", "membership_table"},
	"public-read":   {"owner_column"},
	"authenticated": {},
	"admin-only":    {"membership_table"},
	"soft-delete":   {"deleted_at_column"},
	"time-window":   {"start_column", "end_column"},
	"hierarchical":  {"org_column", "org_hierarchy_table"},
}

// Expand resolves table's RLSConfig (preset or explicit per-op expressions)
// into an Expansion. tenantBy is the table's tenant(by) auto-discovery
// column, or nil when the table carries no tenant annotation; per open
// question 2, explicit preset options override tenant auto-discovery, and
// warn is invoked when both are set.
func Expand(table *ir.Table, tenantBy *string, warn func(string)) (*Expansion, error) {
	cfg := table.RLS
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	if cfg.Preset != "" {
		if tenantBy != nil && *tenantBy != "" {
			warn(fmt.Sprintf("table %s: both rls(preset: %q) and tenant(by: %q) specified; preset takes precedence", table.Name, cfg.Preset, *tenantBy))
		}
		return expandPreset(table, cfg)
	}

	return expandExplicit(table, cfg), nil
}

// TenantColumn is a small ptr.To convenience for callers that hold a
// possibly-empty discovered column name and want Expand's nil-means-unset
// contract rather than empty-string-means-unset.
func TenantColumn(column string) *string {
	if column == "" {
		return nil
	}
	return ptr.To(column)
}

func expandExplicit(table *ir.Table, cfg *ir.RLSConfig) *Expansion {
	exp := &Expansion{}
	ops := map[string]string{"select": cfg.Select, "insert": cfg.Insert, "update": cfg.Update, "delete": cfg.Delete}
	for _, op := range opOrder {
		expr := ops[op]
		if expr == "" {
			continue
		}
		exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
	}
	return exp
}

func expandPreset(table *ir.Table, cfg *ir.RLSConfig) (*Expansion, error) {
	required, ok := presetRequiredParams[cfg.Preset]
	if !ok {
		return nil, fmt.Errorf("%w: %q on table %s", ErrUnknownPreset, cfg.Preset, table.Name)
	}
	for _, param := range required {
		if cfg.PresetArgs[param] == "" {
			if discovered := autoDiscover(table, param); discovered != "" {
				if cfg.PresetArgs == nil {
					cfg.PresetArgs = map[string]string{}
				}
				cfg.PresetArgs[param] = discovered
				continue
			}
			return nil, fmt.Errorf("%w: %s requires %q on table %s", ErrMissingPresetParam, cfg.Preset, param, table.Name)
		}
	}

	exp := &Expansion{}
	switch cfg.Preset {
	case "owner":
		col := cfg.PresetArgs["owner_column"]
		expr := fmt.Sprintf("auth.uid() = %s", col)
		for _, op := range opOrder {
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
		}
	case "tenant":
		helper := tenantHelperFunction(table.Name, cfg.PresetArgs["membership_table"])
		exp.HelperFunctions = append(exp.HelperFunctions, helper)
		tenantCol := cfg.PresetArgs["tenant_column"]
		memberExpr := fmt.Sprintf("%s = %s()", tenantCol, helper.Name)
		for _, op := range opOrder {
			if op == "delete" {
				exp.Policies = append(exp.Policies, Policy{Op: op, Expression: fmt.Sprintf("%s AND is_admin()", memberExpr), Roles: rolesForOp(cfg, op)})
				continue
			}
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: memberExpr, Roles: rolesForOp(cfg, op)})
		}
		exp.RequestedIndexes = append(exp.RequestedIndexes, ir.IndexRequest{Columns: []string{tenantCol}})
	case "public-read":
		col := cfg.PresetArgs["owner_column"]
		writeExpr := fmt.Sprintf("auth.uid() = %s", col)
		exp.Policies = append(exp.Policies,
			Policy{Op: "select", Expression: "true", Roles: rolesForOp(cfg, "select")},
			Policy{Op: "insert", Expression: writeExpr, Roles: rolesForOp(cfg, "insert")},
			Policy{Op: "update", Expression: writeExpr, Roles: rolesForOp(cfg, "update")},
			Policy{Op: "delete", Expression: writeExpr, Roles: rolesForOp(cfg, "delete")},
		)
	case "authenticated":
		expr := "auth.uid() IS NOT NULL"
		for _, op := range opOrder {
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
		}
	case "admin-only":
		expr := "is_admin()"
		for _, op := range opOrder {
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
		}
	case "soft-delete":
		col := cfg.PresetArgs["deleted_at_column"]
		expr := fmt.Sprintf("%s IS NULL", col)
		exp.Policies = append(exp.Policies,
			Policy{Op: "select", Expression: expr, Roles: rolesForOp(cfg, "select")},
			Policy{Op: "insert", Expression: "true", Roles: rolesForOp(cfg, "insert")},
			Policy{Op: "update", Expression: expr, Roles: rolesForOp(cfg, "update")},
		)
		// delete forbidden: no policy emitted, RLS default-denies.
	case "time-window":
		startCol, endCol := cfg.PresetArgs["start_column"], cfg.PresetArgs["end_column"]
		expr := fmt.Sprintf("now() BETWEEN %s AND %s", startCol, endCol)
		for _, op := range opOrder {
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
		}
	case "hierarchical":
		helper := hierarchyHelperFunction(table.Name, cfg.PresetArgs["org_hierarchy_table"])
		exp.HelperFunctions = append(exp.HelperFunctions, helper)
		orgCol := cfg.PresetArgs["org_column"]
		expr := fmt.Sprintf("%s = ANY(%s())", orgCol, helper.Name)
		for _, op := range opOrder {
			exp.Policies = append(exp.Policies, Policy{Op: op, Expression: expr, Roles: rolesForOp(cfg, op)})
		}
		exp.RequestedIndexes = append(exp.RequestedIndexes, ir.IndexRequest{Columns: []string{orgCol}})
	}
	return exp, nil
}

func rolesForOp(cfg *ir.RLSConfig, op string) []string {
	if cfg.PerOpRoles != nil {
		if roles, ok := cfg.PerOpRoles[op]; ok {
			return roles
		}
	}
	return cfg.Roles
}

func autoDiscover(table *ir.Table, param string) string {
	var wanted string
	switch param {
	case "owner_column":
		wanted = "created_by"
	default:
		return ""
	}
	for _, f := range table.Fields {
		if f.Name == wanted {
			return f.Name
		}
	}
	return ""
}

func tenantHelperFunction(table, membershipTable string) *ir.Function {
	return &ir.Function{
		Name:       fmt.Sprintf("current_tenant_id_for_%s", table),
		UID:        fmt.Sprintf("fn_current_tenant_%s", table),
		Returns:    "uuid",
		Language:   "sql",
		Security:   "DEFINER",
		Volatility: "STABLE",
		Body:       fmt.Sprintf("SELECT tenant_id FROM %s WHERE user_id = auth.uid() LIMIT 1", membershipTable),
	}
}

func hierarchyHelperFunction(table, hierarchyTable string) *ir.Function {
	return &ir.Function{
		Name:       fmt.Sprintf("accessible_org_ids_for_%s", table),
		UID:        fmt.Sprintf("fn_accessible_orgs_%s", table),
		Returns:    "uuid[]",
		Language:   "sql",
		Security:   "DEFINER",
		Volatility: "STABLE",
		Body:       fmt.Sprintf("SELECT array_agg(org_id) FROM %s WHERE ancestor_id = current_org_id()", hierarchyTable),
	}
}

// PresetNames returns the catalog's preset names sorted, for diagnostics/tests.
func PresetNames() []string {
	names := make([]string, 0, len(presetRequiredParams))
	for k := range presetRequiredParams {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
