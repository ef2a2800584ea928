// Package warehouse defines the boundary to the Snowflake client and its
// production implementation on top of database/sql and the gosnowflake
// driver.
//
// The Client/Conn/Cursor interfaces mirror the shape the query tasks need:
// open a connection from a driver config, execute statements synchronously
// or asynchronously (submit, check status by query ID, fetch results), and
// release everything on close. Tests substitute stub implementations;
// nothing above this package touches the driver directly.
//
// Driver-level SQL and network errors pass through untranslated; retry
// and recovery policy belongs to the caller.
package warehouse
