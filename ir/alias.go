package ir

// canonicalFieldAnnotation maps short-form field annotation names to their
// canonical form per spec.md §3.1. "uid" is deliberately absent: it is
// resolved contextually in the builder (bare @uid marks uniqueness, @uid
// with a value is an identity tag).
var canonicalFieldAnnotation = map[string]string{
	"pk":  "primaryKey",
	"fk":  "foreignKey",
	"idx": "index",
}

// canonicalTypeAnnotation maps short-form type-scope annotation names.
var canonicalTypeAnnotation = map[string]string{}

func resolveFieldAlias(name string) string {
	if canon, ok := canonicalFieldAnnotation[name]; ok {
		return canon
	}
	return name
}

func resolveTypeAlias(name string) string {
	if canon, ok := canonicalTypeAnnotation[name]; ok {
		return canon
	}
	return name
}

// scalarMapping is the IDL-type to SQL-type table from spec.md §3.3.
var scalarMapping = map[string]string{
	"ID":       "uuid",
	"UUID":     "uuid",
	"String":   "text",
	"Int":      "integer",
	"Float":    "double precision",
	"Boolean":  "boolean",
	"DateTime": "timestamptz",
	"Date":     "date",
	"Time":     "time",
	"Decimal":  "numeric",
	"JSON":     "jsonb",
	"Inet":     "inet",
	"CIDR":     "cidr",
	"MacAddr":  "macaddr",
}

// reservedWords repeats the Identifier Service's reserved-word list (§4.2).
// Nothing in this package reads it; package ident keeps its own copy for its
// quoting decisions.
var reservedWords = map[string]bool{
	"user": true, "order": true, "group": true, "table": true, "column": true,
	"select": true, "insert": true, "update": true, "delete": true, "where": true,
	"from": true, "join": true, "limit": true, "offset": true, "union": true,
	"all": true, "distinct": true, "having": true, "between": true, "like": true,
	"in": true, "exists": true, "case": true, "when": true, "then": true,
	"else": true, "end": true, "and": true, "or": true, "not": true,
	"null": true, "true": true, "false": true,
}
