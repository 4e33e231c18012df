// Package view mirrors fetched cart state into whatever surface the host
// binds: named text slots standing in for the page elements the storefront
// scripts used to mutate. A missing slot is warned about and skipped, never
// an error, so one absent element cannot fail a whole reconciliation.
package view

import (
	"strconv"
	"sync"

	"storefront-client/internal/domain"
	"storefront-client/pkg/logger"
)

// Well-known slot names. Per-line slots are derived with the Line* helpers.
const (
	SlotCartAmount    = "cart.amount"
	SlotCartCost      = "cart.cost"
	SlotReviewSection = "reviews.section"
	SlotReviewMain    = "reviews.main"
)

// LineSlotPrice names the unit-price text slot of a product card.
func LineSlotPrice(productID string) string { return "line." + productID + ".price" }

// LineSlotSeller names the seller-name text slot of a product card.
func LineSlotSeller(productID string) string { return "line." + productID + ".seller" }

// LineSlotCost names the computed line-cost text slot of a product card.
func LineSlotCost(productID string) string { return "line." + productID + ".cost" }

// Slot is one write-only text sink.
type Slot interface {
	SetText(text string)
}

// SlotFunc adapts a function to the Slot interface.
type SlotFunc func(text string)

func (f SlotFunc) SetText(text string) { f(text) }

// View holds the currently bound slots. Safe for concurrent use: the cart
// session applies state from its worker goroutine while the host binds and
// unbinds cards.
type View struct {
	mu    sync.Mutex
	slots map[string]Slot
}

func New() *View {
	return &View{slots: make(map[string]Slot)}
}

// Bind attaches a sink to a named slot, replacing any previous binding.
func (v *View) Bind(name string, slot Slot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.slots[name] = slot
}

// BindFunc is Bind with a bare function.
func (v *View) BindFunc(name string, fn func(text string)) {
	v.Bind(name, SlotFunc(fn))
}

// Unbind detaches a slot. Returns whether the slot was bound.
func (v *View) Unbind(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.slots[name]
	delete(v.slots, name)
	return ok
}

// Set writes text into a slot. Absent slots are logged and skipped.
func (v *View) Set(name, text string) {
	v.mu.Lock()
	slot, ok := v.slots[name]
	v.mu.Unlock()

	if !ok {
		logger.Warn().Str("slot", name).Msg("View slot not bound, skipping")
		return
	}
	slot.SetText(text)
}

// ApplyCart mirrors a fetched cart into the bound slots: aggregate
// quantity and cost badges, then per-line price, seller name, and line
// cost (2-decimal money text).
func (v *View) ApplyCart(cart *domain.Cart) {
	v.Set(SlotCartAmount, strconv.Itoa(cart.Summary.TotalQuantity))
	v.Set(SlotCartCost, cart.Summary.TotalCost.StringFixed(2))

	for id, line := range cart.Lines {
		v.Set(LineSlotPrice(id), line.UnitPrice.StringFixed(2)+" $")
		v.Set(LineSlotSeller(id), line.SellerName)
		v.Set(LineSlotCost(id), line.LineCost.StringFixed(2)+" $")
	}
}

// RemoveCard drops a product card's slots after a confirmed removal.
// Returns true only the first time, so a card is removed exactly once.
func (v *View) RemoveCard(productID string) bool {
	removed := v.Unbind(LineSlotPrice(productID))
	removed = v.Unbind(LineSlotSeller(productID)) || removed
	removed = v.Unbind(LineSlotCost(productID)) || removed
	return removed
}
