package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
	// Price encodes as a JSON number only because init sets the
	// process-wide decimal.MarshalJSONWithoutQuotes.
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}
