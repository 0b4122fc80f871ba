package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrQuoteNotFound is returned when no quote matches the given filter
	ErrQuoteNotFound = errors.New("no price quotes found")

	// ErrMalformedQuote is returned when a raw quote's price or unit cannot be normalized
	ErrMalformedQuote = errors.New("quote price or unit could not be normalized")

	// ErrStoreUnavailable is returned when the quote store is unavailable
	ErrStoreUnavailable = errors.New("quote store unavailable")
)
