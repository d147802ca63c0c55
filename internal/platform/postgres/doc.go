// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, translation of the engine-agnostic task query plan into SQL, and
// mapping between driver error shapes and the store's failure kinds.
package postgres
