// Package order provides the domain model for purchase orders in the
// bookstore. It implements the Order aggregate root with lifecycle management
// and state transitions, plus the event payloads exchanged with the
// fulfillment process.
//
// The package includes:
//   - Order: the aggregate root holding identity, book details, and lifecycle
//   - Status: a state machine enforcing valid status transitions
//   - AcceptedEvent / DispatchedEvent: channel payloads
//
// Key business rules:
//   - An order is created Accepted (book found in the catalog, carrying the
//     "Title - Author" name and the catalog price) or Rejected (book absent,
//     no name or price)
//   - Rejected is terminal; Accepted -> Dispatched is the only transition and
//     Dispatched is terminal
//   - Re-applying the dispatch transition is a no-op, which makes consumption
//     from an at-least-once channel idempotent
//   - ISBN and quantity never change after creation; identifier, audit
//     timestamps, and version belong to the store
package order
