// Package ir defines the pure intermediate representation the compiler
// builds from parsed IDL source and every downstream component (identifier
// service, deduplicator, RLS expander, DDL emitter, diff engine, planner,
// snapshot writer) consumes.
//
// The IR is immutable once built: the builder owns construction, everything
// after it consumes by reference only.
package ir

// Schema is the IR root: an ordered collection of tables plus auxiliary
// top-level objects contributed by enum declarations, extensions, and the
// RLS preset catalog.
type Schema struct {
	IRVersion  string
	Tables     []*Table
	Enums      []*Enum
	Extensions []*Extension
	Functions  []*Function
	Roles      []*Role
}

// Table is one relational table lowered from a @table-annotated type.
type Table struct {
	Name        string
	UID         string
	Annotations map[string]Annotation
	Fields      []*Field
	Checks      []CheckConstraint
	RLS         *RLSConfig
	Line        int
}

// Field is one column (or virtual relation) of a Table.
type Field struct {
	Name         string
	UID          string
	BaseType     string
	NonNull      bool
	List         bool
	ItemNonNull  bool
	Annotations  map[string]Annotation
	PrimaryKey   bool
	Unique       bool
	Default      *DefaultValue
	ForeignKey   *ForeignKeyRef
	Indexes      []IndexRequest
	Check        string // field-level check(expr), promoted to a table CHECK
	Virtual      bool   // hasOne/hasMany: contributes no column
	BelongsTo    bool   // belongsTo: real FK column
	Classification
	Line int
}

// Classification carries the non-DDL-affecting signals spec.md groups under
// weight/critical/sensitive/pii/deprecated/skip. critical has no DDL effect
// (open question 1, resolved: ignored downstream of the IR); the rest are
// informational. All of them stay on the IR field and reach the snapshot
// only through the field's annotation map; the evidence map records none.
type Classification struct {
	Weight     float64
	Critical   bool
	Sensitive  bool
	PII        bool
	Deprecated bool
	Skip       bool
}

// DefaultValue is either a literal value or a verbatim SQL expression; the
// emitter never interprets either, it writes them through.
type DefaultValue struct {
	Literal    string
	Expression string
}

// ForeignKeyRef points a field at another table's column. RefColumn is the
// column part of the source's "Table.column" ref; the builder rejects a ref
// without one, so there is no default column.
type ForeignKeyRef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// IndexRequest is a single requested index, pre-deduplication.
type IndexRequest struct {
	Columns []string
	Unique  bool
	Where   string
	Method  string
	Name    string
}

// CheckConstraint is a table-level CHECK, whether promoted from a field's
// check(expr) annotation or synthesized for non-null list items.
type CheckConstraint struct {
	Name       string
	Expression string
}

// RLSConfig is the resolved row-level security configuration for a table.
// Defaults per spec: enabled=true, select/insert/update=true, delete=false,
// roles=[authenticated].
type RLSConfig struct {
	Enabled    bool
	Select     string
	Insert     string
	Update     string
	Delete     string
	Roles      []string
	PerOpRoles map[string][]string
	Preset     string
	PresetArgs map[string]string
}

// Annotation is the IR-level normalized form of idl.Annotation: alias
// resolved, arguments reduced to a simple string-keyed map of scalar text
// (the builder has already validated shape; emitters never see idl values).
type Annotation struct {
	Name string
	Args map[string]string
}

// Enum is a top-level enum type, backing both scalar columns of that enum
// and the add_enum_value additive diff step.
type Enum struct {
	Name   string
	UID    string
	Values []string
}

// Extension is a required PostgreSQL extension (e.g. pgcrypto for gen_random_uuid()).
type Extension struct {
	Name        string
	IfNotExists bool
}

// Function backs computed columns and RLS preset helper functions.
type Function struct {
	Name       string
	UID        string
	Parameters []FunctionParam
	Returns    string
	Language   string
	Security   string // INVOKER or DEFINER
	Volatility string // VOLATILE, STABLE, IMMUTABLE
	Body       string
	Comment    string
}

type FunctionParam struct {
	Name string
	Type string
}

// Role backs @grant targets: a database role the DDL emitter GRANTs access to.
type Role struct {
	Name   string
	Login  bool
	Grants []string // table names this role is granted access on
}
