package plan

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// lockErrorNotes maps the SQLSTATE codes an executor is most likely to see
// while replaying a PlannedStep back to a human explanation of which lock
// conflict it signals. The planner never opens a connection itself; this
// table exists so a caller holding a *pgconn.PgError from the executor
// boundary can attach the right note to the step that failed.
var lockErrorNotes = map[string]string{
	"55P03": "lock_not_available: another session holds a conflicting lock on the target relation",
	"40P01": "deadlock_detected: the transactional batch was chosen as the deadlock victim",
	"25001": "active_sql_transaction: CREATE INDEX CONCURRENTLY cannot run inside a transaction block",
	"42710": "duplicate_object: the constraint or index already exists, likely a re-run after partial failure",
	"23503": "foreign_key_violation: existing rows violate the FK being validated by validate_fk",
	"57014": "query_canceled: the statement exceeded lock_timeout or statement_timeout",
}

// ClassifyError reports the human-readable lock-conflict note for err, if
// err (or something it wraps) is a *pgconn.PgError whose Code this planner
// recognizes. Returns "" when err is nil, not a PgError, or an
// unrecognized code — callers fall back to err.Error() in that case.
func ClassifyError(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	return lockErrorNotes[pgErr.Code]
}
