package order

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/book"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through one of the factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewAccepted, NewRejected, or Restore")

	// ErrOrderIsNotPersisted is returned when an operation requires a
	// store-assigned identifier but the order has never been saved.
	ErrOrderIsNotPersisted = errors.New("Order has no identifier before its first save")
)

// Order is the aggregate root for a purchase order. It is created as either
// accepted or rejected depending on catalog availability and can advance to
// dispatched upon notification from the fulfillment process.
//
// Invariants:
//   - bookISBN is required and, like quantity, never changes after creation
//   - quantity is positive (the 1..5 bound is enforced by the request layer)
//   - book name and price are present exactly when the status is Accepted
//     or Dispatched
//   - Rejected and Dispatched are terminal; Accepted -> Dispatched is the
//     only transition, and re-applying it is a no-op
//
// The identifier, audit timestamps, and version are store-managed: they are
// zero until the repository persists the order and populates them via
// MarkPersisted.
type Order struct {
	// id is the store-assigned identifier, zero before the first save
	id kernel.UUID

	// bookISBN identifies the ordered book in the catalog
	bookISBN string

	// bookName and bookPrice are set only for accepted orders
	bookName  *string
	bookPrice *decimal.Decimal

	// quantity is the number of copies ordered
	quantity int

	// status is the current state in the order lifecycle
	status Status

	// createdAt, modifiedAt, and version are maintained by the store
	createdAt  time.Time
	modifiedAt time.Time
	version    int64

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewAccepted creates an accepted order from a catalog snapshot. The recorded
// book name is the snapshot's "Title - Author" form and the price is taken
// verbatim from the catalog.
func NewAccepted(b book.Book, quantity int) (*Order, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	name := b.DisplayName()
	price := b.Price()

	o := &Order{
		bookName:      &name,
		bookPrice:     &price,
		status:        Accepted,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setBookISBN(b.ISBN()),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewRejected creates a rejected order for a book the catalog could not
// resolve. Book name and price stay absent; Rejected is terminal.
func NewRejected(bookISBN string, quantity int) (*Order, error) {
	o := &Order{
		status:        Rejected,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setBookISBN(bookISBN),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Restore rehydrates a persisted order from storage. It validates the
// identifier, the status, and the consistency between status and book
// details, so corrupted rows surface as errors instead of invalid aggregates.
func Restore(
	id kernel.UUID,
	bookISBN string,
	bookName *string,
	bookPrice *decimal.Decimal,
	quantity int,
	status Status,
	createdAt time.Time,
	modifiedAt time.Time,
	version int64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveBook(bookName != nil && bookPrice != nil); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		bookName:      bookName,
		bookPrice:     bookPrice,
		status:        status,
		createdAt:     createdAt,
		modifiedAt:    modifiedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setBookISBN(bookISBN),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their store-assigned identifiers.
// Unpersisted orders are never equal to anything.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

// ID returns the store-assigned identifier. Zero before the first save.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BookISBN returns the ISBN of the ordered book.
func (o *Order) BookISBN() string {
	return o.bookISBN
}

// BookName returns the recorded "Title - Author" name, or nil for rejected orders.
func (o *Order) BookName() *string {
	return o.bookName
}

// BookPrice returns the recorded catalog price, or nil for rejected orders.
func (o *Order) BookPrice() *decimal.Decimal {
	return o.bookPrice
}

// Quantity returns the number of copies ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the store-managed creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ModifiedAt returns the store-managed last-modification timestamp.
func (o *Order) ModifiedAt() time.Time {
	return o.modifiedAt
}

// Version returns the optimistic-concurrency counter, bumped by the store on
// every update.
func (o *Order) Version() int64 {
	return o.version
}

// IsPersisted reports whether the order has been saved and carries a
// store-assigned identifier.
func (o *Order) IsPersisted() bool {
	return !o.id.IsZero()
}

// Dispatch advances the order to Dispatched.
//
// The transition is idempotent: dispatching an already-dispatched order
// changes nothing and returns nil, so redelivered notifications from an
// at-least-once channel are harmless. Dispatching a rejected order is an
// error because Rejected is terminal.
func (o *Order) Dispatch() error {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPersisted records the store-managed fields after a successful save.
// It is called by the order repository and nothing else; the identifier is
// immutable once assigned.
func (o *Order) MarkPersisted(id kernel.UUID, createdAt, modifiedAt time.Time, version int64) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && !o.id.IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("identifier %s is immutable, cannot become %s", o.id, id))
	}

	o.id = id
	o.createdAt = createdAt
	o.modifiedAt = modifiedAt
	o.version = version
	return nil
}

func (o *Order) setBookISBN(bookISBN string) error {
	if bookISBN == "" {
		return errs.NewValueIsRequiredError("bookIsbn")
	}
	o.bookISBN = bookISBN
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}
