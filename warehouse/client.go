package warehouse

import (
	"context"
	"errors"

	"github.com/snowflakedb/gosnowflake"
)

// ErrUnknownQueryID is returned when a query ID does not correspond to a
// query submitted on this connection.
var ErrUnknownQueryID = errors.New("warehouse: unknown query id")

// Result holds the rows returned by one statement.
type Result struct {
	// Columns are the result column names, in select order.
	Columns []string

	// Rows are the row tuples, one []any per row.
	Rows [][]any
}

// Maps re-shapes the rows as column-name-keyed maps, the equivalent of a
// dict cursor.
func (r *Result) Maps() []map[string]any {
	maps := make([]map[string]any, len(r.Rows))
	for i, row := range r.Rows {
		m := make(map[string]any, len(r.Columns))
		for j, col := range r.Columns {
			if j < len(row) {
				m[col] = row[j]
			}
		}
		maps[i] = m
	}
	return maps
}

// Client opens authenticated warehouse connections.
type Client interface {
	// Connect opens a connection from a driver configuration. The caller
	// owns the returned Conn and must Close it.
	Connect(ctx context.Context, cfg *gosnowflake.Config) (Conn, error)
}

// Conn is one authenticated session. Implementations must be safe for use
// from a single task invocation; they are not shared across tasks.
type Conn interface {
	// Cursor creates a statement cursor on this connection.
	Cursor() (Cursor, error)

	// QueryDone reports whether an asynchronously submitted query has
	// finished. A query that finished with an error reports done together
	// with that error.
	QueryDone(ctx context.Context, queryID string) (bool, error)

	// Close releases the connection. Closing implicitly rolls back any
	// transaction left open on the session.
	Close() error
}

// Cursor executes statements on a connection.
type Cursor interface {
	// Execute runs a statement synchronously and returns its rows.
	Execute(ctx context.Context, stmt string, binds ...any) (*Result, error)

	// ExecuteAsync submits a statement and returns the server-assigned
	// query ID without waiting for completion.
	ExecuteAsync(ctx context.Context, stmt string, binds ...any) (string, error)

	// FetchByID returns the rows of a previously submitted query, waiting
	// for completion if necessary.
	FetchByID(ctx context.Context, queryID string) (*Result, error)

	// Close releases the cursor.
	Close() error
}
