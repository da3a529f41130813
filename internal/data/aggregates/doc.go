// Package aggregates contains infrastructure implementations of domain aggregate contracts.
//
// Implementations in this package compose table-level repos from internal/data/repos,
// serialize writers per aggregate key, and own the transaction boundary for
// progress writes.
package aggregates
