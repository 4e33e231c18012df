package usecase

import (
	"context"

	"storefront-client/internal/domain"
	"storefront-client/internal/view"
)

// Comparison drives the comparison-list buttons. The server answers every
// call with a tri-state status that maps straight onto a banner severity:
// true = applied (green), false = rejected (red), null = no-op (yellow).
type Comparison struct {
	gateway domain.ComparisonGateway
	banner  *view.Banner
}

func NewComparison(gateway domain.ComparisonGateway, banner *view.Banner) *Comparison {
	return &Comparison{gateway: gateway, banner: banner}
}

// Add puts a product on the comparison list and shows the outcome banner.
func (c *Comparison) Add(ctx context.Context, productID string) error {
	status, err := c.gateway.AddProduct(ctx, productID)
	return c.show("Comparison", status, err)
}

// Remove takes a product off the comparison list and shows the outcome.
func (c *Comparison) Remove(ctx context.Context, productID string) error {
	status, err := c.gateway.RemoveProduct(ctx, productID)
	return c.show("Comparison", status, err)
}

func (c *Comparison) show(title string, status *domain.ComparisonStatus, err error) error {
	if err != nil {
		c.banner.Show(title+" failed", err.Error(), view.SeverityFailure)
		return err
	}

	severity := view.SeverityNotice
	switch {
	case status.Applied():
		severity = view.SeveritySuccess
	case status.Rejected():
		severity = view.SeverityFailure
	}
	c.banner.Show(status.Title, status.Text, severity)
	return nil
}
