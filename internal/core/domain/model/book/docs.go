// Package book models catalog metadata as seen by the order service.
//
// A Book is an external snapshot: a value fetched from the catalog service
// per lookup, used once to decide whether an order is accepted, and never
// stored or mutated. The catalog owns the data; this package only guarantees
// that a snapshot handed to the domain has been validated.
package book
