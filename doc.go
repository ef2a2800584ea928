// Package snowtask provides Snowflake query tasks for data pipelines.
//
// The package covers the three concerns a pipeline needs to talk to
// Snowflake: credential records with redacted secrets, connection
// parameter resolution (including RSA key pair authentication), and
// query execution with asynchronous polling.
//
// # Core Concepts
//
// The package is organized around a small number of concepts:
//
//   - Credentials: an account/auth record whose secret fields never
//     appear in logs or serialized output
//   - Connector: credentials plus the database, warehouse, and schema
//     that scope a session
//   - Tasks: Query, MultiQuery, and QuerySync, the functions a pipeline
//     step calls
//   - Block store: named storage for credential and connector records,
//     backed by memory, Redis, or etcd
//
// # Getting Started
//
// Build a connector and run a query:
//
//	import (
//		"github.com/polarflow/snowtask"
//		"github.com/polarflow/snowtask/credentials"
//		"github.com/polarflow/snowtask/secret"
//	)
//
//	connector := credentials.Connector{
//		Credentials: credentials.Credentials{
//			Account:  "myaccount",
//			User:     "etl",
//			Password: secret.New("hunter2"),
//		},
//		Database:  "ANALYTICS",
//		Warehouse: "LOADING",
//	}
//
//	result, err := snowtask.Query(ctx, "SELECT * FROM customers", connector)
//	if err != nil {
//		return err
//	}
//	for _, row := range result.Maps() {
//		process(row)
//	}
//
// Records can also be loaded by name from a block store:
//
//	store, err := blockstore.NewRedisStore(blockstore.RedisOptions{
//		URL:       "redis://localhost:6379",
//		Namespace: "prod",
//	})
//	if err != nil {
//		return err
//	}
//	connector, err := credentials.LoadConnector(ctx, store, "analytics-ro")
//
// # Asynchronous Execution
//
// Query and MultiQuery submit statements asynchronously and poll the
// query status until completion, so long-running statements do not
// hold a network call open. The poll interval is configurable:
//
//	result, err := snowtask.Query(ctx, stmt, connector,
//		snowtask.WithPollInterval(5*time.Second))
//
// QuerySync executes synchronously, for statements the asynchronous
// path does not support (PUT, GET).
//
// # Transactions
//
// MultiQuery can wrap its statement list in an explicit transaction:
//
//	results, err := snowtask.MultiQuery(ctx, stmts, connector,
//		snowtask.AsTransaction())
//
// The bracketing BEGIN TRANSACTION and COMMIT results are stripped
// from the output unless WithTransactionControlResults is set.
//
// # Error Handling
//
// Failures are returned as *Error values carrying the operation and a
// kind constant, and unwrap to the underlying sentinel:
//
//	if errors.Is(err, keypair.ErrBadPassphrase) {
//		// wrong private key passphrase
//	}
//
// Configuration errors (KindConfiguration) indicate a bad record and
// are not worth retrying; query errors (KindQuery) preserve the driver
// error untranslated.
//
// # Observability
//
// Tasks emit OpenTelemetry spans and counters through the global
// providers and log progress through log/slog. The telemetry
// subpackage installs a trace provider for processes that do not
// configure one themselves.
//
// # Thread Safety
//
// Task functions and block store implementations are safe for
// concurrent use. Each task invocation opens and closes its own
// connection.
package snowtask
