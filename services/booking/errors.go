package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSession        = errors.New("invalid booking session id")
	ErrPaymentMethodDisabled = errors.New("payment method not enabled for this shop")
)

// MissingFieldsError blocks finalization. Fields keeps the order
// service, client, date, time.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("booking incomplete, missing: %s", strings.Join(e.Fields, ", "))
}

// InputError rejects a step's own input.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
