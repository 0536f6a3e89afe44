package models

import "time"

const (
	PaymentMethodCash = "cash"
	PaymentMethodPix  = "pix"
	PaymentMethodCard = "card"
)

// KnownPaymentMethods lists every method a shop can enable, in display order.
var KnownPaymentMethods = []string{PaymentMethodPix, PaymentMethodCard, PaymentMethodCash}

// PaymentsConfig is what the owner sets on the payments screen.
type PaymentsConfig struct {
	EnabledMethods []string  `json:"enabledMethods"`
	PixKey         string    `json:"pixKey,omitempty"`
	Currency       string    `json:"currency"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// Enabled reports whether method is switched on.
func (c PaymentsConfig) Enabled(method string) bool {
	for _, m := range c.EnabledMethods {
		if m == method {
			return true
		}
	}
	return false
}

// --- PaymentRequest & Invoice ---
type PaymentRequest struct {
	ShopID      string
	Amount      float64
	Method      string // "cash", "pix" or "card"
	Currency    string
	Idempotency string
	Metadata    map[string]string
	Description string
}

type Invoice struct {
	InvoiceID string    `json:"invoiceId"`
	ShopID    string    `json:"shopId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	PaymentID string    `json:"paymentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
