package idl

// TypeRef is a type reference as it appears in source: a bare name, wrapped
// in NonNull (!) and/or List ([ ]) any number of times. The parser accepts
// exactly these three wrapper kinds; anything else is a fatal parse error.
type TypeRef struct {
	Kind TypeRefKind
	Name string   // set when Kind == NamedType
	Of   *TypeRef // set when Kind == NonNullType or ListType
}

type TypeRefKind int

const (
	NamedType TypeRefKind = iota
	NonNullType
	ListType
)

// ValueKind tags the variant held by an AnnotationValue.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueNull
	ValueEnum
	ValueList
	ValueObject
)

// AnnotationValue is a typed variant over the value kinds an annotation
// argument may hold: string, integer, float, boolean, enum name, null,
// list-of-value, or object-of-value.
type AnnotationValue struct {
	Kind   ValueKind
	Str    string
	Int    int64
	Float  float64
	Bool   bool
	List   []AnnotationValue
	Object map[string]AnnotationValue
}

// Annotation is a single `@name(arg: value, ...)` or bare `@name` occurrence.
type Annotation struct {
	Name string // leading '@' already stripped, not yet alias-resolved
	Args map[string]AnnotationValue
	Line int
}

// FieldDef is one field of a type definition.
type FieldDef struct {
	Name        string
	Type        *TypeRef
	Annotations []Annotation
	Line int
}

// TypeDef is one top-level `type Name @annotation... { fields }` declaration.
type TypeDef struct {
	Name        string
	Annotations []Annotation
	Fields      []FieldDef
	Line        int
}

// EnumDef is a top-level `enum Name { VALUE, ... }` declaration.
type EnumDef struct {
	Name        string
	Values      []string
	Annotations []Annotation
	Line        int
}

// Document is the full parsed source: an ordered list of type and enum
// definitions, in source order.
type Document struct {
	Types []TypeDef
	Enums []EnumDef
}

// HasAnnotation reports whether name (already canonical or raw, caller's
// choice) appears among the given annotations.
func HasAnnotation(anns []Annotation, name string) bool {
	_, ok := FindAnnotation(anns, name)
	return ok
}

// FindAnnotation returns the first annotation in anns matching name.
func FindAnnotation(anns []Annotation, name string) (Annotation, bool) {
	for _, a := range anns {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}
