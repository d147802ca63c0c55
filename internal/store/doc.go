// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
// It also defines the storage-agnostic failure kinds and the query plan
// used for listing tasks.
package store
