// Package evidence implements the Evidence Map: a dictionary keyed by
// source UID, recording where content derived from that UID was emitted.
package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Record is one evidence entry: an artifact file, a line range within it,
// and a content hash over the emitted fragment's canonical text.
type Record struct {
	ArtifactFile string
	LineStart    int
	LineEnd      int
	SHA256       string
}

// Diagnostic is a non-fatal warning or a collected error attached to a UID.
type Diagnostic struct {
	Message string
	Type    string
	Context string
}

type key struct {
	uid          string
	artifactKind string
	file         string
	lineStart    int
	lineEnd      int
}

// Map accumulates evidence records, warnings, and errors for a single
// compile run. It is not safe for concurrent use; the core is single-threaded.
type Map struct {
	byUID    map[string]map[string][]Record // uid -> artifact_kind -> records
	seen     map[key]bool
	warnings map[string][]Diagnostic
	errors   map[string][]Diagnostic
}

// New returns an empty evidence Map.
func New() *Map {
	return &Map{
		byUID:    map[string]map[string][]Record{},
		seen:     map[key]bool{},
		warnings: map[string][]Diagnostic{},
		errors:   map[string][]Diagnostic{},
	}
}

// Record adds a record for uid under artifactKind. Recording is additive
// and idempotent per (uid, artifact_kind, file, lines): a duplicate key
// collapses to the one already stored.
func (m *Map) Record(uid, artifactKind, file string, lineStart, lineEnd int, content string) {
	k := key{uid: uid, artifactKind: artifactKind, file: file, lineStart: lineStart, lineEnd: lineEnd}
	if m.seen[k] {
		return
	}
	m.seen[k] = true
	sum := sha256.Sum256([]byte(content))
	rec := Record{ArtifactFile: file, LineStart: lineStart, LineEnd: lineEnd, SHA256: hex.EncodeToString(sum[:])}
	if m.byUID[uid] == nil {
		m.byUID[uid] = map[string][]Record{}
	}
	m.byUID[uid][artifactKind] = append(m.byUID[uid][artifactKind], rec)
}

// RecordWarning attaches a non-fatal warning to uid.
func (m *Map) RecordWarning(uid, message string) {
	m.warnings[uid] = append(m.warnings[uid], Diagnostic{Message: message, Type: "warning"})
}

// RecordError attaches a collected error to uid (used when the builder
// runs in collect mode).
func (m *Map) RecordError(uid, message, errType, context string) {
	m.errors[uid] = append(m.errors[uid], Diagnostic{Message: message, Type: errType, Context: context})
}

// Get returns every record for uid, grouped by artifact kind.
func (m *Map) Get(uid string) map[string][]Record {
	return m.byUID[uid]
}

// Warnings returns every warning recorded for uid.
func (m *Map) Warnings(uid string) []Diagnostic {
	return m.warnings[uid]
}

// UIDs returns every UID with at least one record, sorted.
func (m *Map) UIDs() []string {
	uids := make([]string, 0, len(m.byUID))
	for uid := range m.byUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}
