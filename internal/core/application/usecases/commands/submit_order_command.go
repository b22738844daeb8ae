package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrISBNIsRequired = errors.New("isbn is required")
)

// SubmitOrderCommand represents a request to place a purchase order for a
// book. The catalog decides whether the order is accepted or rejected; the
// command only carries what the buyer asked for.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("1234567891", 2)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, bookClient, publisher, logger)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
//	fmt.Printf("Order %s is %s", placed.ID(), placed.Status())
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	isbn     string
	quantity int

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit an order.
// Validates that the ISBN is not blank and the quantity is positive; the
// 1..5 quantity window is enforced by the inbound request layer.
func NewSubmitOrderCommand(isbn string, quantity int) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setISBN(isbn),
		cmd.setQuantity(quantity),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// ISBN returns the identifier of the requested book.
func (c SubmitOrderCommand) ISBN() string {
	return c.isbn
}

// Quantity returns the number of copies requested.
func (c SubmitOrderCommand) Quantity() int {
	return c.quantity
}

func (c *SubmitOrderCommand) setISBN(isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return ErrISBNIsRequired
	}

	c.isbn = isbn
	return nil
}

func (c *SubmitOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}
