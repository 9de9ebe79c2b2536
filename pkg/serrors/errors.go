// Package serrors provides structured errors carrying a stable machine
// code, a developer-facing message and an optional locale key for
// user-facing translation by the caller.
package serrors

import "fmt"

type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

// WithTemplateData returns a copy of the error with the given template
// data attached. The receiver is not mutated, so package-level error
// values can be shared safely.
func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	clone := *e
	clone.TemplateData = data
	return &clone
}

// WithMessage returns a copy of the error with the message replaced by
// the formatted string. The code and locale key are preserved.
func (e *BaseError) WithMessage(format string, args ...any) *BaseError {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Is reports whether target is a BaseError with the same code, so that
// errors.Is works across WithTemplateData/WithMessage copies.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	return ok && other.Code == e.Code
}
