package domain

import (
	"context"
	"time"
)

// --- Review Entities ---

type ReviewUser struct {
	PK    int64  `json:"pk"`
	Login string `json:"login"`
}

type Review struct {
	PK        int64      `json:"pk"`
	User      ReviewUser `json:"user"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Updating  bool       `json:"updating"`
}

// ReviewPage is one page of a paginated review listing. Next is the
// server-supplied cursor URL for the following page, empty on the last one.
type ReviewPage struct {
	Count   int      `json:"count"`
	Next    string   `json:"next"`
	Results []Review `json:"results"`
}

type NewReview struct {
	ProductID string `json:"productId"`
	Text      string `json:"text"`
}

type ReviewGateway interface {
	// ListReviews fetches the first page when pageURL is empty, otherwise
	// the page at the server-supplied cursor URL.
	ListReviews(ctx context.Context, productID, pageURL string) (*ReviewPage, error)
	CreateReview(ctx context.Context, review NewReview) (*Review, error)
	UpdateReview(ctx context.Context, pk int64, text string) (*Review, error)
	DeleteReview(ctx context.Context, pk int64) error
}
