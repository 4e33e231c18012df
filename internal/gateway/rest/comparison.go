package rest

import (
	"context"
	"net/http"

	"storefront-client/internal/domain"
)

type comparisonRequest struct {
	ProductID string `json:"product_id"`
}

type comparisonStatusPayload struct {
	Status *bool  `json:"status"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// AddProduct puts a product on the comparison list. The server's tri-state
// status comes back even on a logical no-op, so the caller can show the
// right banner.
func (c *Client) AddProduct(ctx context.Context, productID string) (*domain.ComparisonStatus, error) {
	var payload comparisonStatusPayload
	body := comparisonRequest{ProductID: productID}
	if err := c.do(ctx, "comparison.add", http.MethodPost, c.url(c.paths.ComparisonAdd), body, &payload); err != nil {
		return nil, err
	}
	return &domain.ComparisonStatus{Status: payload.Status, Title: payload.Title, Text: payload.Text}, nil
}

// RemoveProduct takes a product off the comparison list.
func (c *Client) RemoveProduct(ctx context.Context, productID string) (*domain.ComparisonStatus, error) {
	var payload comparisonStatusPayload
	body := comparisonRequest{ProductID: productID}
	if err := c.do(ctx, "comparison.remove", http.MethodDelete, c.url(c.paths.ComparisonRemove), body, &payload); err != nil {
		return nil, err
	}
	return &domain.ComparisonStatus{Status: payload.Status, Title: payload.Title, Text: payload.Text}, nil
}
