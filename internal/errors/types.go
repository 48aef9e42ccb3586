package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conneroisu/inkit/pkg/button"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeUnknownStyleValue = "ERR_UNKNOWN_STYLE_VALUE"
	ErrCodeUnknownStyleKind  = "ERR_UNKNOWN_STYLE_KIND"
	ErrCodeInvalidAttribute  = "ERR_INVALID_ATTRIBUTE"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeFileWrite         = "ERR_FILE_WRITE"
	ErrCodeFileRead          = "ERR_FILE_READ"
	ErrCodeStylesheetParse   = "ERR_STYLESHEET_PARSE"
	ErrCodeMissingTokens     = "ERR_MISSING_TOKENS"
	ErrCodeUnknownTokens     = "ERR_UNKNOWN_TOKENS"
	ErrCodeAccessibility     = "ERR_ACCESSIBILITY"
	ErrCodeServerStart       = "ERR_SERVER_START"
	ErrCodeInternalError     = "ERR_INTERNAL"
)

// InkitError is a structured error type with context.
type InkitError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Line        int
	Column      int
	Recoverable bool
}

// Error implements the error interface.
func (e *InkitError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				location += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *InkitError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *InkitError) Is(target error) bool {
	var t *InkitError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *InkitError) WithContext(key string, value interface{}) *InkitError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds file location information.
func (e *InkitError) WithLocation(filePath string, line, column int) *InkitError {
	e.FilePath = filePath
	e.Line = line
	e.Column = column

	return e
}

// WithCause sets the underlying error.
func (e *InkitError) WithCause(cause error) *InkitError {
	e.Cause = cause

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *InkitError {
	return &InkitError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *InkitError {
	return &InkitError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewNetworkError creates a network error.
func NewNetworkError(code, message string, cause error) *InkitError {
	return &InkitError{
		Type:    ErrorTypeNetwork,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *InkitError {
	return &InkitError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *InkitError {
	return &InkitError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// FromStyle translates an error returned while parsing button style values
// into a validation error. Other errors are returned unchanged.
func FromStyle(err error) error {
	if err == nil {
		return nil
	}
	var ve *button.ValueError
	if errors.As(err, &ve) {
		return NewValidationError(ErrCodeUnknownStyleValue,
			fmt.Sprintf("invalid %s %q (expected one of: %s)",
				ve.Kind, ve.Value, strings.Join(button.Values(ve.Kind), ", "))).
			WithCause(err).
			WithContext("kind", ve.Kind).
			WithContext("value", ve.Value)
	}
	var ie *InkitError
	if errors.As(err, &ie) {
		return err
	}
	return NewValidationError(ErrCodeUnknownStyleKind, "invalid style").WithCause(err)
}

// As is errors.As, exported so callers do not need to import both packages.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsType reports whether err is an InkitError of type t.
func IsType(err error, t ErrorType) bool {
	var ie *InkitError
	if errors.As(err, &ie) {
		return ie.Type == t
	}

	return false
}

// Logger is the subset of logging.Logger the handler needs.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler logs errors according to their type.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err. Recoverable errors are logged as warnings.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ie *InkitError
	if !errors.As(err, &ie) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	fields := []interface{}{"type", ie.Type, "code", ie.Code}
	for k, v := range ie.Context {
		fields = append(fields, k, v)
	}
	if ie.FilePath != "" {
		fields = append(fields, "file", ie.FilePath)
	}

	if ie.Recoverable {
		h.logger.Warn(ctx, err, "Recoverable error occurred", fields...)
		return
	}
	h.logger.Error(ctx, err, "Error occurred", fields...)
}
