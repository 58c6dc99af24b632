// Package postgres contains the PostgreSQL implementations of the store
// interfaces, built on pgx. Each store accepts a store.DBTX so it can run
// against either a real pool or a mock in tests.
package postgres
