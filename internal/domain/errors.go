package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// --- Error Taxonomy ---
//
// Three failure categories cross the gateway boundary:
//   - transport failures: the request never completed (wrapped cause)
//   - application failures: the server answered non-2xx (*APIError)
//   - local contract violations: sentinel errors below, raised before any
//     network I/O happens

var (
	// ErrMissingToken: a mutating call was attempted without the
	// anti-forgery token. Hard contract violation, never sent.
	ErrMissingToken = errors.New("anti-forgery token not found in cookies")

	// ErrLineNotFound: the referenced product has no line in the cart.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrMissingProduct: an operation was invoked without a product ID.
	ErrMissingProduct = errors.New("product id is required")

	// ErrReviewNotFound: the referenced review is not in the loaded feed.
	ErrReviewNotFound = errors.New("review not found")

	// ErrQuantityRange: requested quantity is negative or above the
	// configured maximum.
	ErrQuantityRange = errors.New("quantity out of range")

	// ErrSessionClosed: the cart session worker has been shut down.
	ErrSessionClosed = errors.New("cart session closed")
)

// APIError is an application-level rejection: the server answered with a
// non-2xx status for the named operation.
type APIError struct {
	Op     string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: server returned %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// NotFound reports whether the rejection was a 404 (used for idempotent
// removal: a second delete of an absent line is a reported failure, not a
// crash).
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsAPIError extracts an *APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
