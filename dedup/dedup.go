// Package dedup implements the Index Deduplicator: per-table state that
// elides index requests already covered by the primary key, an existing
// unique constraint, or a prior request with the same signature.
package dedup

import (
	"fmt"
	"strings"

	"github.com/relschema/schemac/ir"
)

// Signature uniquely identifies an index request for redundancy purposes.
type Signature struct {
	Table   string
	Columns string // columns joined with "," in request order
	Unique  bool
	Where   string
}

// Deduplicator holds the per-table state spec.md §4.3 describes: the
// primary-key column set, the unique-constraint column groups, and the
// signatures already emitted.
type Deduplicator struct {
	pkColumns     []string
	uniqueGroups  [][]string
	seenSignatures map[Signature]bool
	table         string
}

// New builds a Deduplicator for table, seeded from its fields: the primary
// key column set and every unique-constraint column group (single-column
// unique fields contribute a one-element group).
func New(table *ir.Table) *Deduplicator {
	d := &Deduplicator{table: table.Name, seenSignatures: map[Signature]bool{}}
	for _, f := range table.Fields {
		if f.PrimaryKey {
			d.pkColumns = append(d.pkColumns, f.Name)
		}
		if f.Unique {
			d.uniqueGroups = append(d.uniqueGroups, []string{f.Name})
		}
	}
	return d
}

// Notice describes a skipped, redundant index request.
type Notice struct {
	Columns []string
	Reason  string
}

// String renders the notice the way the DDL emitter writes it into the
// stream as a comment line (scenario C of spec.md §8).
func (n Notice) String() string {
	return fmt.Sprintf("-- Skipped redundant index: Index on %s is covered by %s",
		strings.Join(n.Columns, ", "), n.Reason)
}

// Filter returns the requests from reqs that are not redundant, plus a
// Notice for each one elided, in request order.
func (d *Deduplicator) Filter(reqs []ir.IndexRequest) (kept []ir.IndexRequest, notices []Notice) {
	for _, req := range reqs {
		if reason, redundant := d.isRedundant(req); redundant {
			notices = append(notices, Notice{Columns: req.Columns, Reason: reason})
			continue
		}
		d.seenSignatures[signatureOf(d.table, req)] = true
		kept = append(kept, req)
	}
	return kept, notices
}

func (d *Deduplicator) isRedundant(req ir.IndexRequest) (string, bool) {
	sig := signatureOf(d.table, req)
	if d.seenSignatures[sig] {
		return "an index with the same signature", true
	}
	if req.Where != "" {
		return "", false
	}
	if isPrefix(req.Columns, d.pkColumns) {
		return fmt.Sprintf("primary key on %s", strings.Join(d.pkColumns, ", ")), true
	}
	for _, group := range d.uniqueGroups {
		if isPrefix(req.Columns, group) {
			return fmt.Sprintf("unique constraint on %s", strings.Join(group, ", ")), true
		}
	}
	return "", false
}

func isPrefix(columns, of []string) bool {
	if len(of) == 0 || len(columns) > len(of) {
		return false
	}
	for i, c := range columns {
		if c != of[i] {
			return false
		}
	}
	return true
}

func signatureOf(table string, req ir.IndexRequest) Signature {
	return Signature{
		Table:   table,
		Columns: strings.Join(req.Columns, ","),
		Unique:  req.Unique,
		Where:   req.Where,
	}
}
