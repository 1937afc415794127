package gateway

import "fmt"

// ConnectionError: the store is unreachable or rejected the credentials.
// Fatal for the triggering operation; no retry is attempted here.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError: a read failed — malformed statement, type mismatch, or lost
// connectivity. No partial result is returned.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", truncateStatement(e.Query), e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MutationError: a write transaction failed. The transaction has been
// rolled back and the store is unchanged.
type MutationError struct {
	Stmt string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation %q: %v", truncateStatement(e.Stmt), e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

func truncateStatement(stmt string) string {
	if len(stmt) > 100 {
		return stmt[:100] + "..."
	}
	return stmt
}
