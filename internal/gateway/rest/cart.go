package rest

import (
	"context"
	"net/http"

	"storefront-client/internal/domain"

	"github.com/shopspring/decimal"
)

// Wire shapes for the cart resource:
// GET  -> {cart: {products: {id: {...}}, total_cost, total_quantity}}
// POST {product_id, price_id?} / PATCH keyed map / DELETE {product_id}

type cartEnvelope struct {
	Cart cartPayload `json:"cart"`
}

type cartPayload struct {
	Products      map[string]productPayload `json:"products"`
	TotalCost     decimal.Decimal           `json:"total_cost"`
	TotalQuantity int                       `json:"total_quantity"`
}

type productPayload struct {
	PK          string          `json:"pk"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CostProduct decimal.Decimal `json:"cost_product"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
}

type addLineRequest struct {
	ProductID string `json:"product_id"`
	PriceID   string `json:"price_id,omitempty"`
}

type lineUpdateRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SellerID  string `json:"seller_id,omitempty"`
}

type removeLineRequest struct {
	ProductID string `json:"product_id"`
}

// FetchCart retrieves the authoritative cart state.
func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, "cart.fetch", http.MethodGet, c.url(c.paths.Cart), nil, &envelope); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		Lines: make(map[string]domain.CartLine, len(envelope.Cart.Products)),
		Summary: domain.CartSummary{
			TotalQuantity: envelope.Cart.TotalQuantity,
			TotalCost:     envelope.Cart.TotalCost,
		},
	}
	for id, p := range envelope.Cart.Products {
		productID := p.PK
		if productID == "" {
			productID = id
		}
		lineCost := p.CostProduct
		if lineCost.IsZero() && !p.Price.IsZero() {
			lineCost = domain.PreviewLineCost(p.Price, p.Quantity)
		}
		cart.Lines[productID] = domain.CartLine{
			ProductID:  productID,
			SellerID:   p.SellerID,
			SellerName: p.SellerName,
			Quantity:   p.Quantity,
			UnitPrice:  p.Price,
			LineCost:   lineCost,
		}
	}
	return cart, nil
}

// AddLine adds a product to the cart.
func (c *Client) AddLine(ctx context.Context, ref domain.ProductRef) error {
	body := addLineRequest{ProductID: ref.ProductID, PriceID: ref.PriceID}
	return c.do(ctx, "cart.add", http.MethodPost, c.url(c.paths.Cart), body, nil)
}

// UpdateLines changes quantities/seller selections with one PATCH
// carrying the keyed-map body.
func (c *Client) UpdateLines(ctx context.Context, updates []domain.LineUpdate) error {
	body := make(map[string]lineUpdateRequest, len(updates))
	for _, u := range updates {
		body[u.ProductID] = lineUpdateRequest{
			ProductID: u.ProductID,
			Quantity:  u.Quantity,
			SellerID:  u.SellerID,
		}
	}
	return c.do(ctx, "cart.update", http.MethodPatch, c.url(c.paths.Cart), body, nil)
}

// RemoveLine deletes a product's line from the cart.
func (c *Client) RemoveLine(ctx context.Context, productID string) error {
	body := removeLineRequest{ProductID: productID}
	return c.do(ctx, "cart.remove", http.MethodDelete, c.url(c.paths.Cart), body, nil)
}
