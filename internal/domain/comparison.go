package domain

import "context"

// --- Comparison Entities ---

// ComparisonStatus is the tri-state outcome the comparison endpoints
// return: true = applied, false = rejected, null = no-op (e.g. the product
// was already on the list). Title and Text feed the status banner.
type ComparisonStatus struct {
	Status *bool  `json:"status"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Applied reports whether the operation changed the comparison list.
func (s *ComparisonStatus) Applied() bool {
	return s.Status != nil && *s.Status
}

// Rejected reports whether the server explicitly refused the operation.
func (s *ComparisonStatus) Rejected() bool {
	return s.Status != nil && !*s.Status
}

type ComparisonGateway interface {
	AddProduct(ctx context.Context, productID string) (*ComparisonStatus, error)
	RemoveProduct(ctx context.Context, productID string) (*ComparisonStatus, error)
}
