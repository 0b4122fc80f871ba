package domain

import "context"

// QuoteFilter narrows a quote listing. City is required by the delivery
// layer; Category and Store are optional refinements.
type QuoteFilter struct {
	City     string
	Category string
	Store    string
}

// QuoteRepository defines the interface for price quote persistence.
// Implementations must only return quotes that are still within their
// freshness window.
type QuoteRepository interface {
	List(ctx context.Context, filter QuoteFilter) ([]PriceQuote, error)
	Upsert(ctx context.Context, quote PriceQuote) error
}
