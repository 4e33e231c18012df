package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

// ProductRef identifies a product to add to the cart, optionally pinned to
// a specific price offer (seller + price pair).
type ProductRef struct {
	ProductID string `json:"productId"`
	PriceID   string `json:"priceId,omitempty"`
}

// LineUpdate is one requested quantity/seller change for a cart line.
// Quantity 0 means "remove the line" (see CartSession for the policy).
type LineUpdate struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	SellerID  string `json:"sellerId,omitempty"`
}

// CartLine is one product+seller+quantity entry within the cart.
// LineCost is the server-computed quantity x unit price for the line.
type CartLine struct {
	ProductID  string          `json:"productId"`
	SellerID   string          `json:"sellerId"`
	SellerName string          `json:"sellerName"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	LineCost   decimal.Decimal `json:"lineCost"`
}

// CartSummary holds the server-derived aggregates. The client never owns
// these values: they are recomputed by the server from the authoritative
// set of lines and mirrored into the view after each mutation.
type CartSummary struct {
	TotalQuantity int             `json:"totalQuantity"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

// Cart is the full fetched state: per-line detail keyed by product ID plus
// the derived summary. One line per product (one active seller selection).
type Cart struct {
	Lines   map[string]CartLine `json:"lines"`
	Summary CartSummary         `json:"summary"`
}

// Line returns the line for a product, if present.
func (c *Cart) Line(productID string) (CartLine, bool) {
	line, ok := c.Lines[productID]
	return line, ok
}

// PreviewLineCost is the display-only client-side approximation
// (quantity x unit price, rounded to 2 decimals). Authoritative costs
// always come from the next fetch.
func PreviewLineCost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// CartGateway is the single source of truth for the cart resource
// contract. All mutating calls carry the anti-forgery token; callers get
// typed errors, never silently-logged failures.
type CartGateway interface {
	FetchCart(ctx context.Context) (*Cart, error)
	AddLine(ctx context.Context, ref ProductRef) error
	UpdateLines(ctx context.Context, updates []LineUpdate) error
	RemoveLine(ctx context.Context, productID string) error
}
