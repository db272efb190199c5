package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relschema/schemac/idl"
)

// Builder lowers a parsed idl.Document into a Schema, resolving annotation
// aliases, validating argument shapes, and assigning stable UIDs.
type Builder struct {
	// CollectErrors, when true, accumulates every ValidationError found
	// instead of returning on the first one.
	CollectErrors bool
	irVersion     string
}

// NewBuilder returns a Builder that stamps irVersion into the produced Schema.
func NewBuilder(irVersion string) *Builder {
	return &Builder{irVersion: irVersion}
}

// Build lowers doc into a Schema. If b.CollectErrors is set, err may be a
// ValidationErrors slice containing every offending element; otherwise the
// first error short-circuits the walk.
func (b *Builder) Build(doc *idl.Document) (*Schema, error) {
	schema := &Schema{IRVersion: b.irVersion}
	var errs ValidationErrors

	fail := func(subject string, err error) error {
		ve := &ValidationError{Subject: subject, Err: err}
		if b.CollectErrors {
			errs = append(errs, ve)
			return nil
		}
		return ve
	}

	seen := map[string]bool{}
	for _, enumDef := range doc.Enums {
		schema.Enums = append(schema.Enums, &Enum{
			Name:   enumDef.Name,
			UID:    uidOrSynthesize(enumDef.Annotations, "enum_"+strings.ToLower(enumDef.Name)),
			Values: append([]string(nil), enumDef.Values...),
		})
	}

	for _, typeDef := range doc.Types {
		if !idl.HasAnnotation(typeDef.Annotations, "table") {
			continue
		}
		if seen[typeDef.Name] {
			if err := fail(typeDef.Name, fmt.Errorf("%w: %s", ErrDuplicateTable, typeDef.Name)); err != nil {
				return nil, err
			}
			continue
		}
		seen[typeDef.Name] = true

		table, err := b.buildTable(&typeDef, fail)
		if err != nil {
			return nil, err
		}
		if table != nil {
			schema.Tables = append(schema.Tables, table)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return schema, nil
}

func (b *Builder) buildTable(typeDef *idl.TypeDef, fail func(string, error) error) (*Table, error) {
	table := &Table{
		Name:        typeDef.Name,
		UID:         uidOrSynthesize(typeDef.Annotations, "tbl_"+strings.ToLower(typeDef.Name)),
		Annotations: normalizeAnnotations(typeDef.Annotations, resolveTypeAlias),
		Line:        typeDef.Line,
	}

	for _, fieldDef := range typeDef.Fields {
		field, err := b.buildField(typeDef.Name, &fieldDef, fail)
		if err != nil {
			return nil, err
		}
		if field == nil {
			continue
		}
		table.Fields = append(table.Fields, field)
		if field.Check != "" {
			table.Checks = append(table.Checks, CheckConstraint{
				Name:       constraintCheckName(typeDef.Name, field.Name),
				Expression: field.Check,
			})
		}
		if field.ItemNonNull && field.List {
			table.Checks = append(table.Checks, CheckConstraint{
				Name:       constraintCheckName(typeDef.Name, field.Name) + "_notnull",
				Expression: fmt.Sprintf(`NOT "%s" @> ARRAY[NULL]::%s[]`, field.Name, field.BaseType),
			})
		}
	}

	if ann, ok := idl.FindAnnotation(typeDef.Annotations, "rls"); ok {
		rls, err := buildRLSConfig(typeDef.Name, ann)
		if err != nil {
			if ferr := fail(typeDef.Name, err); ferr != nil {
				return nil, ferr
			}
		} else {
			table.RLS = rls
		}
	}

	return table, nil
}

func (b *Builder) buildField(tableName string, fieldDef *idl.FieldDef, fail func(string, error) error) (*Field, error) {
	subject := tableName + "." + fieldDef.Name
	base, nonNull, list, itemNonNull, err := unwrapTypeRef(fieldDef.Type)
	if err != nil {
		if ferr := fail(subject, err); ferr != nil {
			return nil, ferr
		}
		return nil, nil
	}

	sqlType, ok := scalarMapping[base]
	virtual := false
	for _, a := range fieldDef.Annotations {
		if n := resolveFieldAlias(a.Name); n == "hasOne" || n == "hasMany" {
			virtual = true
		}
	}
	if !ok && !virtual {
		if ferr := fail(subject, fmt.Errorf("%w: %s", ErrUnknownScalar, base)); ferr != nil {
			return nil, ferr
		}
		return nil, nil
	}

	field := &Field{
		Name:        fieldDef.Name,
		BaseType:    sqlType,
		NonNull:     nonNull,
		List:        list,
		ItemNonNull: itemNonNull,
		Annotations: normalizeAnnotations(fieldDef.Annotations, resolveFieldAlias),
		Line:        fieldDef.Line,
	}
	field.UID = uidOrSynthesize(fieldDef.Annotations, tableName+"_"+strings.ToLower(fieldDef.Name))

	for _, rawAnn := range fieldDef.Annotations {
		name := resolveFieldAlias(rawAnn.Name)
		switch name {
		case "primaryKey":
			field.PrimaryKey = true
		case "unique":
			field.Unique = true
		case "uid":
			if _, hasValue := rawAnn.Args["value"]; !hasValue && len(rawAnn.Args) == 0 {
				field.Unique = true
			}
		case "foreignKey":
			fk, err := buildForeignKeyRef(fieldDef.Name, rawAnn)
			if err != nil {
				if ferr := fail(subject, err); ferr != nil {
					return nil, ferr
				}
				continue
			}
			field.ForeignKey = fk
		case "index":
			field.Indexes = append(field.Indexes, buildIndexRequest(fieldDef.Name, rawAnn))
		case "default":
			field.Default = buildDefaultValue(rawAnn)
		case "check":
			if v, ok := rawAnn.Args["expr"]; ok {
				field.Check = v.Str
			}
		case "hasOne", "hasMany":
			field.Virtual = true
		case "belongsTo":
			field.BelongsTo = true
		case "weight":
			if v, ok := rawAnn.Args["v"]; ok {
				field.Weight = valueAsFloat(v)
			}
		case "critical":
			field.Critical = true
		case "sensitive":
			field.Sensitive = true
		case "pii":
			field.PII = true
		case "deprecated":
			field.Deprecated = true
		case "skip":
			field.Skip = true
		}
	}

	if field.Virtual {
		return field, nil
	}
	return field, nil
}

// unwrapTypeRef descends NonNull/List wrappers, accepting exactly NamedType,
// NonNullType, ListType as spec.md §4.1 step 2 requires.
func unwrapTypeRef(ref *idl.TypeRef) (base string, nonNull, list, itemNonNull bool, err error) {
	cur := ref
	for {
		switch cur.Kind {
		case idl.NamedType:
			return cur.Name, nonNull, list, itemNonNull, nil
		case idl.NonNullType:
			if cur == ref {
				nonNull = true
			} else if list {
				itemNonNull = true
			}
			cur = cur.Of
		case idl.ListType:
			list = true
			cur = cur.Of
		default:
			return "", false, false, false, fmt.Errorf("ir: unrecognized type wrapper kind")
		}
	}
}

func buildForeignKeyRef(fieldName string, ann idl.Annotation) (*ForeignKeyRef, error) {
	refVal, ok := ann.Args["ref"]
	if !ok || refVal.Kind != idl.ValueString {
		return nil, fmt.Errorf("%w: missing or non-string ref argument on field %s", ErrMalformedForeignKey, fieldName)
	}
	parts := strings.SplitN(refVal.Str, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedForeignKey, refVal.Str)
	}
	return &ForeignKeyRef{Column: fieldName, RefTable: parts[0], RefColumn: parts[1]}, nil
}

func buildIndexRequest(fieldName string, ann idl.Annotation) IndexRequest {
	req := IndexRequest{Columns: []string{fieldName}, Method: "btree"}
	if v, ok := ann.Args["unique"]; ok {
		req.Unique = v.Bool
	}
	if v, ok := ann.Args["where"]; ok {
		req.Where = v.Str
	}
	if v, ok := ann.Args["name"]; ok {
		req.Name = v.Str
	}
	if v, ok := ann.Args["using"]; ok {
		req.Method = v.Str
	}
	return req
}

func buildDefaultValue(ann idl.Annotation) *DefaultValue {
	d := &DefaultValue{}
	if v, ok := ann.Args["value"]; ok {
		d.Literal = valueAsText(v)
	}
	if v, ok := ann.Args["expr"]; ok {
		d.Expression = v.Str
	}
	return d
}

func buildRLSConfig(tableName string, ann idl.Annotation) (*RLSConfig, error) {
	rls := &RLSConfig{
		Enabled: true,
		Select:  "true",
		Insert:  "true",
		Update:  "true",
		Delete:  "false",
		Roles:   []string{"authenticated"},
	}
	if v, ok := ann.Args["preset"]; ok {
		if v.Kind != idl.ValueString && v.Kind != idl.ValueEnum {
			return nil, fmt.Errorf("%w: preset must be a string on table %s", ErrInvalidRLSExpression, tableName)
		}
		rls.Preset = v.Str
		rls.PresetArgs = map[string]string{}
		for k, arg := range ann.Args {
			if k == "preset" || k == "roles" {
				continue
			}
			rls.PresetArgs[k] = valueAsText(arg)
		}
	}
	for _, op := range []string{"select", "insert", "update", "delete"} {
		v, ok := ann.Args[op]
		if !ok {
			continue
		}
		if v.Kind != idl.ValueString {
			return nil, fmt.Errorf("%w: %s on table %s", ErrInvalidRLSExpression, op, tableName)
		}
		switch op {
		case "select":
			rls.Select = v.Str
		case "insert":
			rls.Insert = v.Str
		case "update":
			rls.Update = v.Str
		case "delete":
			rls.Delete = v.Str
		}
	}
	if v, ok := ann.Args["roles"]; ok && v.Kind == idl.ValueList {
		rls.Roles = nil
		for _, item := range v.List {
			rls.Roles = append(rls.Roles, valueAsText(item))
		}
	}
	return rls, nil
}

func normalizeAnnotations(anns []idl.Annotation, resolve func(string) string) map[string]Annotation {
	out := map[string]Annotation{}
	for _, a := range anns {
		name := resolve(a.Name)
		args := map[string]string{}
		for k, v := range a.Args {
			args[k] = valueAsText(v)
		}
		out[name] = Annotation{Name: name, Args: args}
	}
	return out
}

func uidOrSynthesize(anns []idl.Annotation, fallback string) string {
	if ann, ok := idl.FindAnnotation(anns, "uid"); ok {
		if v, ok := ann.Args["value"]; ok && v.Kind == idl.ValueString {
			return v.Str
		}
	}
	return fallback
}

func constraintCheckName(table, field string) string {
	return fmt.Sprintf("chk_%s_%s", table, field)
}

func valueAsText(v idl.AnnotationValue) string {
	switch v.Kind {
	case idl.ValueString, idl.ValueEnum:
		return v.Str
	case idl.ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case idl.ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case idl.ValueBool:
		return strconv.FormatBool(v.Bool)
	case idl.ValueNull:
		return ""
	default:
		return ""
	}
}

func valueAsFloat(v idl.AnnotationValue) float64 {
	switch v.Kind {
	case idl.ValueFloat:
		return v.Float
	case idl.ValueInt:
		return float64(v.Int)
	default:
		return 0
	}
}
