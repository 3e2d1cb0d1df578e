package errors

import (
	"errors"
	"fmt"

	"github.com/mcncl/jsonlit/internal/token"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe a literal to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrMissingKeySep   = errors.New("object entry has no ':' separating key from value")
	ErrEmptySegment    = errors.New("empty expression segment")
	ErrDepthExceeded   = errors.New("literal nesting exceeds the maximum depth")
	ErrMissingType     = errors.New("no target type before the first ',' of the invocation")
)

// ErrorType categorizes errors by pipeline stage
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeLexing     ErrorType = "lexing"
	ErrorTypeStructural ErrorType = "structural"
	ErrorTypeExpression ErrorType = "expression"
	ErrorTypeGenerate   ErrorType = "generate"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewLexingError creates a new error related to tokenizing the literal
func NewLexingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeLexing,
		Message: message,
		Err:     err,
	}
}

// NewStructuralError creates a new error for a literal whose shape does not
// match the object/array/scalar grammar at some nesting level
func NewStructuralError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStructural,
		Message: message,
		Err:     err,
	}
}

// NewExpressionError creates a new error for a segment that fails to parse as
// a freestanding Go expression
func NewExpressionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExpression,
		Message: message,
		Err:     err,
	}
}

// NewGenerateError creates a new error related to code generation
func NewGenerateError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeGenerate,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to code formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// At prefixes a message with a source position, for errors attributable to a
// specific token of the literal.
func At(pos token.Pos, message string) string {
	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, message)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeLexing:
			return fmt.Sprintf("Literal tokenizing error: %s", appErr.Message)
		case ErrorTypeStructural:
			return fmt.Sprintf("Literal structure error: %s", appErr.Message)
		case ErrorTypeExpression:
			return fmt.Sprintf("Expression error: %s", appErr.Message)
		case ErrorTypeGenerate:
			return fmt.Sprintf("Code generation error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a literal to expand."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe a literal to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrMissingKeySep) {
		return "Error: An object entry is missing the ':' between its key and value."
	}
	if errors.Is(err, ErrDepthExceeded) {
		return "Error: The literal is nested too deeply."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
