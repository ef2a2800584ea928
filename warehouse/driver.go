package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/snowflakedb/gosnowflake"
)

// DriverClient is the production Client, backed by database/sql and the
// registered gosnowflake driver.
type DriverClient struct{}

// NewClient returns the driver-backed warehouse client.
func NewClient() *DriverClient {
	return &DriverClient{}
}

// Connect renders the config to a DSN, opens a database handle, and
// verifies connectivity with a ping.
func (*DriverClient) Connect(ctx context.Context, cfg *gosnowflake.Config) (Conn, error) {
	dsn, err := gosnowflake.DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("warehouse: build DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &driverConn{
		db:      db,
		pending: make(map[string]*pendingQuery),
	}, nil
}

// pendingQuery tracks one asynchronously submitted statement. The waiter
// goroutine blocks on the driver's lazy rows and publishes the outcome by
// closing done.
type pendingQuery struct {
	done   chan struct{}
	result *Result
	err    error
}

type driverConn struct {
	db *sql.DB

	mu      sync.Mutex
	pending map[string]*pendingQuery
}

func (c *driverConn) Cursor() (Cursor, error) {
	return &driverCursor{conn: c}, nil
}

func (c *driverConn) QueryDone(_ context.Context, queryID string) (bool, error) {
	c.mu.Lock()
	p, ok := c.pending[queryID]
	c.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownQueryID, queryID)
	}

	select {
	case <-p.done:
		return true, p.err
	default:
		return false, nil
	}
}

func (c *driverConn) Close() error {
	return c.db.Close()
}

func (c *driverConn) track(queryID string, p *pendingQuery) {
	c.mu.Lock()
	c.pending[queryID] = p
	c.mu.Unlock()
}

func (c *driverConn) take(queryID string) *pendingQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending[queryID]
	delete(c.pending, queryID)
	return p
}

type driverCursor struct {
	conn *driverConn
}

func (cur *driverCursor) Execute(ctx context.Context, stmt string, binds ...any) (*Result, error) {
	rows, err := cur.conn.db.QueryContext(ctx, stmt, binds...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (cur *driverCursor) ExecuteAsync(ctx context.Context, stmt string, binds ...any) (string, error) {
	idCh := make(chan string, 1)
	qctx := gosnowflake.WithAsyncMode(ctx)
	qctx = gosnowflake.WithQueryIDChan(qctx, idCh)

	// In async mode QueryContext returns once the statement is submitted;
	// the returned rows block on first access until the query completes.
	rows, err := cur.conn.db.QueryContext(qctx, stmt, binds...)
	if err != nil {
		return "", err
	}

	var queryID string
	select {
	case queryID = <-idCh:
	case <-ctx.Done():
		rows.Close()
		return "", ctx.Err()
	}

	p := &pendingQuery{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.result, p.err = collectRows(rows)
	}()
	cur.conn.track(queryID, p)

	return queryID, nil
}

func (cur *driverCursor) FetchByID(ctx context.Context, queryID string) (*Result, error) {
	p := cur.conn.take(queryID)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryID, queryID)
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.result, p.err
}

// Close is a no-op: cursors share the connection's database handle.
func (cur *driverCursor) Close() error {
	return nil
}

// collectRows drains and closes a row set into a Result.
func collectRows(rows *sql.Rows) (*Result, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
