package snowtask

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/polarflow/snowtask/credentials"
	"github.com/polarflow/snowtask/warehouse"
)

// Statements bracketing a MultiQuery transaction.
const (
	BeginTransactionStatement = "BEGIN TRANSACTION"
	EndTransactionStatement   = "COMMIT"
)

const instrumentationName = "github.com/polarflow/snowtask"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	statementsTotal metric.Int64Counter
	pollsTotal      metric.Int64Counter
	taskDuration    metric.Float64Histogram
)

func init() {
	statementsTotal, _ = meter.Int64Counter("snowtask.statements",
		metric.WithDescription("Statements executed by query tasks."))
	pollsTotal, _ = meter.Int64Counter("snowtask.query.polls",
		metric.WithDescription("Status checks performed while waiting for asynchronous queries."))
	taskDuration, _ = meter.Float64Histogram("snowtask.task.duration",
		metric.WithDescription("Wall time of one task invocation, connect included."),
		metric.WithUnit("s"))
}

// recordDuration returns a function that records the task's wall time.
func recordDuration(ctx context.Context, cfg *taskConfig, task string) func() {
	start := cfg.clock.Now()
	return func() {
		taskDuration.Record(ctx, cfg.clock.Now().Sub(start).Seconds(),
			metric.WithAttributes(attribute.String("task", task)))
	}
}

// Query executes one statement asynchronously: it opens a connection from
// the connector record, submits the statement, polls the query status at
// the configured interval until completion, and returns the fetched rows.
//
// The connection and cursor are released on every exit path. Errors
// surface immediately; retry policy belongs to the caller.
func Query(ctx context.Context, stmt string, connector credentials.Connector, opts ...Option) (*warehouse.Result, error) {
	const op = "Query"
	cfg := newTaskConfig(opts)

	ctx, span := tracer.Start(ctx, "snowtask.Query", trace.WithAttributes(
		attribute.String("snowflake.database", connector.Database),
		attribute.String("snowflake.warehouse", connector.Warehouse),
	))
	defer span.End()
	defer recordDuration(ctx, cfg, "query")()

	logger := cfg.logger.With("task", "query", "run_id", uuid.NewString())

	conn, cursor, err := open(ctx, cfg, connector)
	if err != nil {
		span.RecordError(err)
		return nil, wrapErr(op, err)
	}
	defer conn.Close()
	defer cursor.Close()

	result, err := runAsync(ctx, cfg, conn, cursor, stmt)
	if err != nil {
		span.RecordError(err)
		return nil, wrapErr(op, err)
	}

	logger.Info("query complete", "rows", len(result.Rows))
	return result, nil
}

// MultiQuery executes several statements in one session and returns their
// results in order.
//
// With AsTransaction the list is bracketed by BeginTransactionStatement
// and EndTransactionStatement; the bracket results are stripped from the
// output unless WithTransactionControlResults is set. A statement failure
// aborts the remainder, and the implicit rollback happens through the
// connection's close.
func MultiQuery(ctx context.Context, stmts []string, connector credentials.Connector, opts ...Option) ([]warehouse.Result, error) {
	const op = "MultiQuery"
	cfg := newTaskConfig(opts)

	ctx, span := tracer.Start(ctx, "snowtask.MultiQuery", trace.WithAttributes(
		attribute.String("snowflake.database", connector.Database),
		attribute.String("snowflake.warehouse", connector.Warehouse),
		attribute.Int("snowflake.statements", len(stmts)),
	))
	defer span.End()
	defer recordDuration(ctx, cfg, "multiquery")()

	logger := cfg.logger.With("task", "multiquery", "run_id", uuid.NewString())

	// Copy before bracketing; the caller's slice stays untouched.
	statements := append([]string(nil), stmts...)
	if cfg.asTransaction {
		statements = append([]string{BeginTransactionStatement}, statements...)
		statements = append(statements, EndTransactionStatement)
	}

	conn, cursor, err := open(ctx, cfg, connector)
	if err != nil {
		span.RecordError(err)
		return nil, wrapErr(op, err)
	}
	defer conn.Close()
	defer cursor.Close()

	results := make([]warehouse.Result, 0, len(statements))
	for _, stmt := range statements {
		result, err := runAsync(ctx, cfg, conn, cursor, stmt)
		if err != nil {
			span.RecordError(err)
			return nil, wrapErr(op, err)
		}
		results = append(results, *result)
	}

	if cfg.asTransaction && !cfg.keepTransactionControlResults {
		results = results[1 : len(results)-1]
	}

	logger.Info("multiquery complete", "statements", len(statements), "results", len(results))
	return results, nil
}

// QuerySync executes one statement synchronously and returns its rows.
// Use it for statements the asynchronous submit path does not support,
// such as PUT and GET.
func QuerySync(ctx context.Context, stmt string, connector credentials.Connector, opts ...Option) (*warehouse.Result, error) {
	const op = "QuerySync"
	cfg := newTaskConfig(opts)

	ctx, span := tracer.Start(ctx, "snowtask.QuerySync", trace.WithAttributes(
		attribute.String("snowflake.database", connector.Database),
		attribute.String("snowflake.warehouse", connector.Warehouse),
	))
	defer span.End()
	defer recordDuration(ctx, cfg, "query_sync")()

	logger := cfg.logger.With("task", "query_sync", "run_id", uuid.NewString())

	conn, cursor, err := open(ctx, cfg, connector)
	if err != nil {
		span.RecordError(err)
		return nil, wrapErr(op, err)
	}
	defer conn.Close()
	defer cursor.Close()

	result, err := cursor.Execute(ctx, stmt, cfg.binds...)
	statementsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "sync")))
	if err != nil {
		span.RecordError(err)
		return nil, wrapErr(op, err)
	}

	logger.Info("query complete", "rows", len(result.Rows))
	return result, nil
}

// open builds the connect config and acquires a connection and cursor.
func open(ctx context.Context, cfg *taskConfig, connector credentials.Connector) (warehouse.Conn, warehouse.Cursor, error) {
	connectCfg, err := connector.ConnectConfig()
	if err != nil {
		return nil, nil, err
	}
	conn, err := cfg.client.Connect(ctx, connectCfg)
	if err != nil {
		return nil, nil, err
	}
	cursor, err := conn.Cursor()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, cursor, nil
}

// runAsync submits a statement, waits for completion via the polling
// loop, and fetches the rows.
func runAsync(ctx context.Context, cfg *taskConfig, conn warehouse.Conn, cursor warehouse.Cursor, stmt string) (*warehouse.Result, error) {
	queryID, err := cursor.ExecuteAsync(ctx, stmt, cfg.binds...)
	statementsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "async")))
	if err != nil {
		return nil, err
	}

	p := &poller{
		conn:     conn,
		queryID:  queryID,
		interval: cfg.pollInterval,
		clock:    cfg.clock,
	}
	err = p.wait(ctx)
	pollsTotal.Add(ctx, int64(p.polls))
	if err != nil {
		return nil, err
	}

	return cursor.FetchByID(ctx, queryID)
}
