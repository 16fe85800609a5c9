package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure rendered in the response envelope. Every caller-facing message
// has a Turkish counterpart in MessageTR. Fields and FieldsTR carry per-field validation
// failures keyed by their JSON names.
type Error struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	MessageTR string            `json:"message_tr,omitempty"`
	Status    int               `json:"status"`
	Fields    map[string]string `json:"fields,omitempty"`
	FieldsTR  map[string]string `json:"fields_tr,omitempty"`
	Err       error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func newLocalized(code string, status int, message, messageTR string) *Error {
	return &Error{Code: code, Status: status, Message: message, MessageTR: messageTR}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound    = newLocalized("NOT_FOUND", http.StatusNotFound, "resource not found", "kayıt bulunamadı")
	ErrValidation  = newLocalized("VALIDATION_ERROR", http.StatusBadRequest, "validation failed", "doğrulama başarısız")
	ErrInternal    = newLocalized("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error", "sunucu hatası")
	ErrCacheMiss   = New("CACHE_MISS", http.StatusNotFound, "cache entry not found")
	ErrDisabled    = newLocalized("FEATURE_DISABLED", http.StatusNotFound, "feature disabled", "özellik devre dışı")
	ErrUnavailable = newLocalized("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "dependency unavailable", "bağımlı servis kullanılamıyor")
)

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrNotFound.Code
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	wrapped := Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
	wrapped.MessageTR = ErrInternal.MessageTR
	return wrapped
}

// WithFields returns a copy of err annotated with field level messages in both languages.
func WithFields(err *Error, fields, fieldsTR map[string]string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Fields = copyMap(fields)
	clone.FieldsTR = copyMap(fieldsTR)
	return &clone
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Clone returns a copy of the error allowing for message overrides. An overridden message
// drops the inherited Turkish text; use Localize to set both.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
		clone.MessageTR = ""
	}
	return &clone
}

// Localize returns a copy of err carrying the given message pair.
func Localize(err *Error, message, messageTR string) *Error {
	clone := Clone(err, message)
	if clone != nil {
		clone.MessageTR = messageTR
	}
	return clone
}

// LocalizeWrap wraps cause under base's code and status with a message pair.
func LocalizeWrap(cause error, base *Error, message, messageTR string) *Error {
	wrapped := Wrap(cause, base.Code, base.Status, message)
	wrapped.MessageTR = messageTR
	return wrapped
}
