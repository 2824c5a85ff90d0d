// domain/product.go
package domain

import "context"

// ReplaceResult reports the outcome of a full-row overwrite that did not fail.
type ReplaceResult int

const (
	// ReplaceApplied means a row matched the id and was overwritten.
	ReplaceApplied ReplaceResult = iota
	// ReplaceNoMatch means no row carried the id when the write ran.
	ReplaceNoMatch
)

func (r ReplaceResult) String() string {
	switch r {
	case ReplaceApplied:
		return "applied"
	case ReplaceNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// ProductRepository is the persistence context for products. Implementations
// must be safe for concurrent use.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	// GetByID returns ErrProductNotFound when no row has the id.
	GetByID(ctx context.Context, id int) (*Product, error)
	// Create ignores product.ID and returns the row with the store-assigned id.
	Create(ctx context.Context, product *Product) (*Product, error)
	// Replace overwrites every column of the row with the given id.
	Replace(ctx context.Context, id int, product *Product) (ReplaceResult, error)
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
}
