package dedup_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/relschema/schemac/dedup"
	"github.com/relschema/schemac/ir"
)

func tableWith(pk bool, unique ...string) *ir.Table {
	table := &ir.Table{Name: "widgets"}
	table.Fields = append(table.Fields, &ir.Field{Name: "id", PrimaryKey: pk})
	for _, u := range unique {
		table.Fields = append(table.Fields, &ir.Field{Name: u, Unique: true})
	}
	return table
}

func TestFilterElidesIndexCoveredByPrimaryKey(t *testing.T) {
	c := qt.New(t)

	table := tableWith(true)
	dd := dedup.New(table)

	kept, notices := dd.Filter([]ir.IndexRequest{{Columns: []string{"id"}}})
	c.Assert(kept, qt.HasLen, 0)
	c.Assert(notices, qt.HasLen, 1)
	c.Assert(notices[0].Reason, qt.Equals, "primary key on id")
}

func TestFilterElidesIndexCoveredByUniqueConstraint(t *testing.T) {
	c := qt.New(t)

	table := tableWith(false, "email")
	dd := dedup.New(table)

	kept, notices := dd.Filter([]ir.IndexRequest{{Columns: []string{"email"}}})
	c.Assert(kept, qt.HasLen, 0)
	c.Assert(notices, qt.HasLen, 1)
	c.Assert(notices[0].Reason, qt.Equals, "unique constraint on email")
}

func TestFilterKeepsNonRedundantIndex(t *testing.T) {
	c := qt.New(t)

	table := tableWith(true)
	dd := dedup.New(table)

	kept, notices := dd.Filter([]ir.IndexRequest{{Columns: []string{"created_at"}}})
	c.Assert(kept, qt.HasLen, 1)
	c.Assert(notices, qt.HasLen, 0)
}

func TestFilterElidesDuplicateSignatureAcrossCalls(t *testing.T) {
	c := qt.New(t)

	table := tableWith(false)
	dd := dedup.New(table)

	req := ir.IndexRequest{Columns: []string{"status"}}
	kept1, notices1 := dd.Filter([]ir.IndexRequest{req})
	c.Assert(kept1, qt.HasLen, 1)
	c.Assert(notices1, qt.HasLen, 0)

	kept2, notices2 := dd.Filter([]ir.IndexRequest{req})
	c.Assert(kept2, qt.HasLen, 0)
	c.Assert(notices2, qt.HasLen, 1)
	c.Assert(notices2[0].Reason, qt.Equals, "an index with the same signature")
}

func TestFilterKeepsPartialIndexEvenIfPrefixMatchesPK(t *testing.T) {
	c := qt.New(t)

	table := tableWith(true)
	dd := dedup.New(table)

	kept, notices := dd.Filter([]ir.IndexRequest{{Columns: []string{"id"}, Where: "deleted_at IS NULL"}})
	c.Assert(kept, qt.HasLen, 1)
	c.Assert(notices, qt.HasLen, 0)
}

func TestFilterPrefixMatchRequiresOrderedPrefix(t *testing.T) {
	c := qt.New(t)

	table := &ir.Table{Name: "widgets", Fields: []*ir.Field{
		{Name: "a", PrimaryKey: true},
		{Name: "b", PrimaryKey: true},
	}}
	dd := dedup.New(table)

	// column order reversed relative to the PK: not a prefix, so not redundant.
	kept, notices := dd.Filter([]ir.IndexRequest{{Columns: []string{"b", "a"}}})
	c.Assert(kept, qt.HasLen, 1)
	c.Assert(notices, qt.HasLen, 0)
}
