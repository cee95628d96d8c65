// Package pg provides PostgreSQL connection pooling with startup retries,
// embedded goose migrations, health probes, and error classification helpers
// shared by the storage layer.
package pg
