// Package catalog implements the book lookup port against the catalog
// service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderservice/internal/core/domain/model/book"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultLookupTimeout = 3 * time.Second

	retryInitialInterval = 100 * time.Millisecond
	retryMultiplier      = 2
	// Two retries after the initial request, three attempts in total.
	retryMaxAttempts = 2
)

// errBookAbsent marks lookup outcomes that resolve to absence without
// further retries: a definitive not-found, a per-attempt timeout, and a
// catalog entry too malformed to build a book from.
var errBookAbsent = errors.New("book absent from catalog")

// bookDTO mirrors the catalog's response body. Unrecognized fields are
// ignored on decode.
type bookDTO struct {
	ISBN   string          `json:"isbn"`
	Title  string          `json:"title"`
	Author string          `json:"author"`
	Price  decimal.Decimal `json:"price"`
}

// Client is the HTTP implementation of ports.BookClient.
//
// Every failure mode degrades to absence rather than an error. An attempt
// that exceeds the lookup timeout resolves to absent without retrying, a
// semantic 404 resolves to absent immediately, and any other failure is
// retried with exponential backoff before falling back to absent. The
// submission path therefore never blocks on catalog trouble, it degrades
// to rejection.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewClient creates a catalog client for the given base URL. A non-positive
// lookupTimeout falls back to the default of three seconds.
func NewClient(baseURL string, lookupTimeout time.Duration, logger *slog.Logger) *Client {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}

	return &Client{
		httpClient:    &http.Client{},
		baseURL:       baseURL,
		lookupTimeout: lookupTimeout,
		logger:        logger.With("component", "catalog_client"),
	}
}

// Lookup resolves an ISBN to a catalog snapshot. Absence is reported as
// (nil, nil); a non-nil error is returned only when ctx is cancelled.
func (c *Client) Lookup(ctx context.Context, isbn string) (*book.Book, error) {
	operation := func() (*book.Book, error) {
		return c.fetch(ctx, isbn)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.Multiplier = retryMultiplier

	b, err := backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, retryMaxAttempts), ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, errBookAbsent) {
			c.logger.WarnContext(ctx, "Catalog lookup failed, treating book as absent",
				"isbn", isbn, "error", err)
		}
		return nil, nil
	}

	return b, nil
}

// fetch performs one lookup attempt. Returning a plain error makes the
// attempt retryable; wrapping in backoff.Permanent stops the retry loop.
func (c *Client) fetch(ctx context.Context, isbn string) (*book.Book, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/books/%s", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil {
			// The slow-catalog budget is spent. Absent, no retry.
			return nil, backoff.Permanent(errBookAbsent)
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(errBookAbsent)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var dto bookDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	b, err := book.NewBook(dto.ISBN, dto.Title, dto.Author, dto.Price)
	if err != nil {
		// The entry exists but violates our invariants. Retrying will
		// fetch the same entry, so resolve to absent now.
		c.logger.WarnContext(ctx, "Catalog returned an invalid book entry",
			"isbn", isbn, "error", err)
		return nil, backoff.Permanent(errBookAbsent)
	}

	return &b, nil
}
