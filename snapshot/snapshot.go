// Package snapshot implements the Snapshot Writer: serializes the IR as the
// canonical diff input for future compile runs, per spec.md §4.9.
package snapshot

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/relschema/schemac/ir"
)

// Document is the canonical on-disk tree. Field order here drives YAML
// emission order; annotation/enum maps are sorted separately at encode time
// so two builds of the same schema always produce byte-identical snapshots.
type Document struct {
	IRVersion  string            `yaml:"ir_version"`
	Tables     []TableSnapshot   `yaml:"tables"`
	Enums      []EnumSnapshot    `yaml:"enums,omitempty"`
	Extensions []string          `yaml:"extensions,omitempty"`
	Functions  []string          `yaml:"functions,omitempty"`
	Roles      []string          `yaml:"roles,omitempty"`
}

type TableSnapshot struct {
	Name        string          `yaml:"name"`
	Fields      []FieldSnapshot `yaml:"fields"`
	Indexes     []IndexSnapshot `yaml:"indexes,omitempty"`
	ForeignKeys []FKSnapshot    `yaml:"foreign_keys,omitempty"`
}

type FieldSnapshot struct {
	Name        string            `yaml:"name"`
	Base        string            `yaml:"base"`
	NonNull     bool              `yaml:"non_null"`
	List        bool              `yaml:"list"`
	ItemNonNull bool              `yaml:"item_non_null"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

type IndexSnapshot struct {
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
	Where   string   `yaml:"where,omitempty"`
}

type FKSnapshot struct {
	Column    string `yaml:"column"`
	RefTable  string `yaml:"ref_table"`
	RefColumn string `yaml:"ref_column"`
}

// Build converts schema into its canonical snapshot Document. Tables and
// fields keep source order (spec.md §4.9: "arrays preserve source order");
// only map-shaped annotation data is sorted, since Go map iteration order
// is not itself a source order.
func Build(schema *ir.Schema) *Document {
	doc := &Document{IRVersion: schema.IRVersion}

	for _, t := range schema.Tables {
		doc.Tables = append(doc.Tables, tableSnapshot(t))
	}
	for _, e := range schema.Enums {
		doc.Enums = append(doc.Enums, EnumSnapshot{Name: e.Name, Values: e.Values})
	}
	for _, ext := range schema.Extensions {
		doc.Extensions = append(doc.Extensions, ext.Name)
	}
	for _, fn := range schema.Functions {
		doc.Functions = append(doc.Functions, fn.Name)
	}
	for _, r := range schema.Roles {
		doc.Roles = append(doc.Roles, r.Name)
	}

	return doc
}

// EnumSnapshot is kept as a separate type so the yaml tag set matches
// spec.md's tree literally, even though ir.Enum and EnumSnapshot currently
// carry the same fields.
type EnumSnapshot struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

func tableSnapshot(t *ir.Table) TableSnapshot {
	ts := TableSnapshot{Name: t.Name}
	for _, f := range t.Fields {
		if f.Virtual {
			continue
		}
		ts.Fields = append(ts.Fields, fieldSnapshot(f))
		for _, idx := range f.Indexes {
			ts.Indexes = append(ts.Indexes, IndexSnapshot{Columns: idx.Columns, Unique: idx.Unique, Where: idx.Where})
		}
		if f.ForeignKey != nil {
			ts.ForeignKeys = append(ts.ForeignKeys, FKSnapshot{
				Column: f.Name, RefTable: f.ForeignKey.RefTable, RefColumn: f.ForeignKey.RefColumn,
			})
		}
	}
	return ts
}

func fieldSnapshot(f *ir.Field) FieldSnapshot {
	fs := FieldSnapshot{
		Name: f.Name, Base: f.BaseType, NonNull: f.NonNull, List: f.List, ItemNonNull: f.ItemNonNull,
	}
	if len(f.Annotations) > 0 {
		fs.Annotations = map[string]string{}
		for name, ann := range f.Annotations {
			fs.Annotations[name] = flattenArgs(ann.Args)
		}
	}
	return fs
}

// flattenArgs renders an annotation's argument map deterministically: keys
// sorted, joined as "k=v,k=v". Good enough for diffing equality; never
// re-parsed.
func flattenArgs(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s=%s", k, args[k])
	}
	return out
}

// Marshal renders doc as canonical YAML with sorted map keys (yaml.v3 sorts
// map[string]X keys by default when encoding).
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Parse reads a previously written snapshot back into a Document, the
// counterpart the Diff Engine loads as its "prior" input.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: parse: %w", err)
	}
	return &doc, nil
}

// ToIR reconstructs a minimal *ir.Schema from a Document, sufficient for use
// as the Diff Engine's prior schema: only the fields diff.Diff actually
// reads (table/field identity, nullability, indexes, foreign keys, enum
// values) round-trip; UIDs and annotations beyond the flattened string are
// not reconstructed, since the diff engine never consults them.
func ToIR(doc *Document) *ir.Schema {
	schema := &ir.Schema{IRVersion: doc.IRVersion}

	for _, ts := range doc.Tables {
		table := &ir.Table{Name: ts.Name}
		fkByColumn := map[string]FKSnapshot{}
		for _, fk := range ts.ForeignKeys {
			fkByColumn[fk.Column] = fk
		}
		for _, fsnap := range ts.Fields {
			field := &ir.Field{
				Name: fsnap.Name, BaseType: fsnap.Base, NonNull: fsnap.NonNull,
				List: fsnap.List, ItemNonNull: fsnap.ItemNonNull,
			}
			if fk, ok := fkByColumn[fsnap.Name]; ok {
				field.ForeignKey = &ir.ForeignKeyRef{RefTable: fk.RefTable, RefColumn: fk.RefColumn}
			}
			table.Fields = append(table.Fields, field)
		}
		for _, idx := range ts.Indexes {
			if len(table.Fields) == 0 {
				continue
			}
			owner := table.Fields[0]
			for _, f := range table.Fields {
				if len(idx.Columns) > 0 && f.Name == idx.Columns[0] {
					owner = f
					break
				}
			}
			owner.Indexes = append(owner.Indexes, ir.IndexRequest{
				Columns: idx.Columns, Unique: idx.Unique, Where: idx.Where,
			})
		}
		schema.Tables = append(schema.Tables, table)
	}

	for _, es := range doc.Enums {
		schema.Enums = append(schema.Enums, &ir.Enum{Name: es.Name, Values: es.Values})
	}

	return schema
}
