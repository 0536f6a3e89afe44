package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"barbershop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// ErrPaymentFailed wraps card processor failures.
var ErrPaymentFailed = errors.New("payment failed")

// --- Interfaces ---
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// CardIntent is a card charge as the processor reports it.
type CardIntent struct {
	ID     string
	Status string
}

// IntentSucceeded is the processor status of a settled charge.
const IntentSucceeded = "succeeded"

// CardProcessor opens a card charge. Calls sharing idempotencyKey return the
// same charge.
type CardProcessor interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*CardIntent, error)
}

// --- PaymentHandler Implementation ---
type UnifiedPaymentHandler struct {
	logger *zap.Logger
	card   CardProcessor
	now    func() time.Time
}

// --- NewPaymentHandler Constructor ---
// A nil card processor records card payments with a simulated reference.
func NewPaymentHandler(logger *zap.Logger, card CardProcessor) *UnifiedPaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if card == nil {
		card = simulatedCardProcessor{}
	}
	return &UnifiedPaymentHandler{
		logger: logger,
		card:   card,
		now:    time.Now,
	}
}

// --- ProcessPayment Entry Point ---
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	now := h.now()
	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		ShopID:    req.ShopID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    InvoiceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch req.Method {
	case models.PaymentMethodCard:
		return h.processCardPayment(ctx, req, inv)
	case models.PaymentMethodCash, models.PaymentMethodPix:
		return h.processInPersonPayment(req, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

// --- Card Payment Processing ---
func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	metadata := map[string]string{"invoiceId": inv.InvoiceID, "shopId": req.ShopID}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	key := req.Idempotency
	if key == "" {
		key = inv.InvoiceID
	}
	intent, err := h.card.CreateIntent(ctx, toCents(req.Amount), req.Currency, key, metadata)
	if err != nil {
		h.logger.Error("card payment failed", zap.String("invoice", inv.InvoiceID), zap.Error(err))
		return nil, fmt.Errorf("%w: card: %v", ErrPaymentFailed, err)
	}

	inv.PaymentID = intent.ID
	// An intent that still needs client confirmation is not money received.
	if intent.Status == IntentSucceeded {
		inv.Status = InvoiceStatusPaid
	}
	inv.UpdatedAt = h.now()

	h.logger.Info("Card payment created",
		zap.String("invoice", inv.InvoiceID),
		zap.String("paymentID", intent.ID),
		zap.String("intentStatus", intent.Status),
	)
	return inv, nil
}

// --- Cash / Pix Processing ---
// Settled at the shop, so the invoice stays pending.
func (h *UnifiedPaymentHandler) processInPersonPayment(req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	inv.UpdatedAt = h.now()
	h.logger.Info("In-person payment recorded", zap.String("invoice", inv.InvoiceID), zap.String("method", req.Method))
	return inv, nil
}

// --- Validator ---
func validateRequest(req models.PaymentRequest) error {
	if req.Amount < 0 {
		return errors.New("invalid payment amount")
	}
	if req.ShopID == "" {
		return errors.New("missing shop ID")
	}
	if req.Currency == "" {
		return errors.New("missing currency")
	}
	return nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type simulatedCardProcessor struct{}

func (simulatedCardProcessor) CreateIntent(_ context.Context, _ int64, _, _ string, _ map[string]string) (*CardIntent, error) {
	return &CardIntent{ID: "pi_sim_" + uuid.New().String(), Status: "requires_payment_method"}, nil
}
