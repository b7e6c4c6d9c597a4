package serrors

import "fmt"

// BaseError is a coded error surfaced to API consumers.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{Code: code, Message: message, LocaleKey: localeKey}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFieldRequiredError(field, localeKey string) *BaseError {
	return &BaseError{
		Code:      "FIELD_REQUIRED",
		Message:   fmt.Sprintf("%s is required", field),
		LocaleKey: localeKey,
	}
}
