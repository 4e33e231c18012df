package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront-client/internal/domain"
)

// Wire shapes for the review resource. update_at mirrors the backend's
// field name; it maps onto domain.Review.UpdatedAt.

type reviewPayload struct {
	PK        int64             `json:"pk"`
	User      reviewUserPayload `json:"user"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
	UpdateAt  time.Time         `json:"update_at"`
	Updating  bool              `json:"updating"`
}

type reviewUserPayload struct {
	PK    int64  `json:"pk"`
	Login string `json:"login"`
}

type reviewPagePayload struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []reviewPayload `json:"results"`
}

type createReviewRequest struct {
	Text    string `json:"text"`
	Product string `json:"product"`
}

type updateReviewRequest struct {
	PK   int64  `json:"pk"`
	Text string `json:"text"`
}

func toReview(p reviewPayload) domain.Review {
	return domain.Review{
		PK:        p.PK,
		User:      domain.ReviewUser{PK: p.User.PK, Login: p.User.Login},
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdateAt,
		Updating:  p.Updating,
	}
}

// ListReviews fetches one page of reviews. With an empty pageURL it
// requests the first page for the product; otherwise it follows the
// server-supplied cursor URL as-is.
func (c *Client) ListReviews(ctx context.Context, productID, pageURL string) (*domain.ReviewPage, error) {
	target := pageURL
	if target == "" {
		target = c.url(c.paths.Reviews) + "?product=" + url.QueryEscape(productID)
	}

	var payload reviewPagePayload
	if err := c.do(ctx, "review.list", http.MethodGet, target, nil, &payload); err != nil {
		return nil, err
	}

	page := &domain.ReviewPage{
		Count:   payload.Count,
		Results: make([]domain.Review, 0, len(payload.Results)),
	}
	if payload.Next != nil {
		page.Next = *payload.Next
	}
	for _, p := range payload.Results {
		page.Results = append(page.Results, toReview(p))
	}
	return page, nil
}

// CreateReview posts a new review and returns the server-rendered object.
func (c *Client) CreateReview(ctx context.Context, review domain.NewReview) (*domain.Review, error) {
	body := createReviewRequest{Text: review.Text, Product: review.ProductID}
	var payload reviewPayload
	if err := c.do(ctx, "review.create", http.MethodPost, c.url(c.paths.Reviews), body, &payload); err != nil {
		return nil, err
	}
	created := toReview(payload)
	return &created, nil
}

// UpdateReview patches a review's text in place.
func (c *Client) UpdateReview(ctx context.Context, pk int64, text string) (*domain.Review, error) {
	body := updateReviewRequest{PK: pk, Text: text}
	var payload reviewPayload
	if err := c.do(ctx, "review.update", http.MethodPatch, c.url(c.paths.Reviews), body, &payload); err != nil {
		return nil, err
	}
	updated := toReview(payload)
	return &updated, nil
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, pk int64) error {
	target := c.url(c.paths.Reviews) + strconv.FormatInt(pk, 10) + "/"
	return c.do(ctx, "review.delete", http.MethodDelete, target, nil, nil)
}
