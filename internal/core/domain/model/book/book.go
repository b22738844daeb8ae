package book

import (
	"errors"
	"fmt"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrBookIsNotConstructed is returned when a Book instance was not created
// through the NewBook factory method.
var ErrBookIsNotConstructed = errors.New("Book must be created via NewBook constructor")

// Book is a snapshot of catalog metadata fetched per lookup. It is not owned
// by this service: it is never cached or mutated, only read while deciding an
// order submission.
type Book struct { //nolint:recvcheck //using for validation
	isbn   string
	title  string
	author string
	price  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewBook creates a validated catalog snapshot. ISBN and title are required
// and the price must not be negative.
func NewBook(isbn, title, author string, price decimal.Decimal) (Book, error) {
	b := Book{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setISBN(isbn),
		b.setTitle(title),
		b.setAuthor(author),
		b.setPrice(price),
	); err != nil {
		return Book{}, err
	}

	return b, nil
}

// Validate ensures the Book was created through NewBook.
func (b Book) Validate() error {
	return b.guard.Validate(ErrBookIsNotConstructed)
}

// ISBN returns the book's unique identifier in the catalog.
func (b Book) ISBN() string {
	return b.isbn
}

// Title returns the book's title.
func (b Book) Title() string {
	return b.title
}

// Author returns the book's author.
func (b Book) Author() string {
	return b.author
}

// Price returns the book's catalog price.
func (b Book) Price() decimal.Decimal {
	return b.price
}

// DisplayName returns the "Title - Author" form recorded on accepted orders.
func (b Book) DisplayName() string {
	return b.title + " - " + b.author
}

func (b *Book) setISBN(isbn string) error {
	if isbn == "" {
		return errs.NewValueIsRequiredError("isbn")
	}
	b.isbn = isbn
	return nil
}

func (b *Book) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	b.title = title
	return nil
}

func (b *Book) setAuthor(author string) error {
	if author == "" {
		return errs.NewValueIsRequiredError("author")
	}
	b.author = author
	return nil
}

func (b *Book) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	b.price = price
	return nil
}
