package domain

// Request headers
const (
	HeaderCSRFToken = "X-CSRFToken"
	HeaderRequestID = "X-Request-Id"
)

// DefaultCSRFCookie is the cookie the anti-forgery token is read from.
const DefaultCSRFCookie = "csrftoken"

// Delivery types for the order form
const (
	DeliveryStore  = "store"
	DeliverySeller = "seller"
)

// List exports for validation
var DeliveryTypes = []string{
	DeliveryStore,
	DeliverySeller,
}
