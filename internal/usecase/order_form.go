package usecase

import (
	"fmt"
	"sync"

	"storefront-client/internal/domain"
)

// Info texts mirrored into the order page's delivery/payment blocks.
const (
	deliveryInfoStore  = "We handle the delivery ourselves"
	deliveryInfoSeller = "Delivery according to the option chosen at the seller(s)"
	paymentInfoSeller  = "Payment according to the option chosen at the seller(s)"
	paymentInfoMissing = "Choose a payment option"
)

// OrderFormState is the visible snapshot after a toggle: which option
// group shows, which option and payment are selected, and the two info
// texts.
type OrderFormState struct {
	DeliveryType    string
	VisibleOptions  []string
	SelectedOption  string
	SelectedPayment string
	DeliveryInfo    string
	PaymentInfo     string
}

// OrderForm is the order page's display-toggle logic: choosing a delivery
// type switches which delivery-option group is visible, auto-selects that
// group's first option, and rewrites the delivery/payment info texts. For
// store delivery the payment info mirrors the checked payment option; for
// seller delivery it is a fixed message.
type OrderForm struct {
	mu sync.Mutex

	storeOptions  []string
	sellerOptions []string
	payments      []string

	deliveryType    string
	selectedOption  string
	selectedPayment string
}

func NewOrderForm(storeOptions, sellerOptions, payments []string) *OrderForm {
	f := &OrderForm{
		storeOptions:  storeOptions,
		sellerOptions: sellerOptions,
		payments:      payments,
	}
	// The page loads with store delivery checked.
	f.SetDeliveryType(domain.DeliveryStore)
	return f
}

// SetDeliveryType toggles the visible option group and auto-selects its
// first option.
func (f *OrderForm) SetDeliveryType(deliveryType string) error {
	if deliveryType != domain.DeliveryStore && deliveryType != domain.DeliverySeller {
		return fmt.Errorf("unknown delivery type %q", deliveryType)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.deliveryType = deliveryType
	options := f.visibleLocked()
	f.selectedOption = ""
	if len(options) > 0 {
		f.selectedOption = options[0]
	}
	return nil
}

// SelectOption picks a delivery option from the visible group.
func (f *OrderForm) SelectOption(option string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.visibleLocked() {
		if o == option {
			f.selectedOption = option
			return nil
		}
	}
	return fmt.Errorf("delivery option %q not available for %s delivery", option, f.deliveryType)
}

// SelectPayment picks a payment option. Only meaningful for store
// delivery; for seller delivery the payment text stays fixed.
func (f *OrderForm) SelectPayment(payment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.payments {
		if p == payment {
			f.selectedPayment = payment
			return nil
		}
	}
	return fmt.Errorf("unknown payment option %q", payment)
}

// State returns the visible snapshot.
func (f *OrderForm) State() OrderFormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := OrderFormState{
		DeliveryType:    f.deliveryType,
		VisibleOptions:  append([]string(nil), f.visibleLocked()...),
		SelectedOption:  f.selectedOption,
		SelectedPayment: f.selectedPayment,
	}

	switch f.deliveryType {
	case domain.DeliveryStore:
		state.DeliveryInfo = deliveryInfoStore
		if f.selectedPayment != "" {
			state.PaymentInfo = f.selectedPayment
		} else {
			state.PaymentInfo = paymentInfoMissing
		}
	case domain.DeliverySeller:
		state.DeliveryInfo = deliveryInfoSeller
		state.PaymentInfo = paymentInfoSeller
	}
	return state
}

func (f *OrderForm) visibleLocked() []string {
	if f.deliveryType == domain.DeliverySeller {
		return f.sellerOptions
	}
	return f.storeOptions
}
