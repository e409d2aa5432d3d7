// File: internal/services/payment/errors.go
package payment

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeSignature  ErrorType = "SIGNATURE"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type PaymentError struct {
	Type      ErrorType
	Code      int
	Message   string
	Operation string
	Cause     error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("payment %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *PaymentError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *PaymentError {
	return &PaymentError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation string, cause error) *PaymentError {
	return &PaymentError{Type: ErrTypeProvider, Operation: operation, Message: "provider request failed", Cause: cause}
}

func NewSignatureError(cause error) *PaymentError {
	return &PaymentError{Type: ErrTypeSignature, Operation: "webhook", Message: "signature verification failed", Cause: cause}
}
