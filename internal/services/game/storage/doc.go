// Package storage defines persistence contracts for strategy charts, play
// sessions and the decision log.
//
// Implementations live in subpackages: sqlite for durable storage and memory
// for tests and throwaway runs.
//
// Common error types:
//   - ErrNotFound: requested record is missing
//   - ErrAlreadyExists: a record with the same key exists
package storage
