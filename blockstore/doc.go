// Package blockstore provides load-by-name persistence for configuration
// documents ("blocks") such as credential and connector records.
//
// A Document is an opaque named payload with a kind; the store does not
// interpret the bytes. Three backends are provided:
//
//   - Memory: process-local, for tests and single-binary development
//   - Redis: shared store backed by go-redis/v9
//   - Etcd: shared store backed by an etcd cluster
//
// Typed decoding lives with the record types; see
// credentials.LoadConnector and credentials.LoadCredentials.
package blockstore
