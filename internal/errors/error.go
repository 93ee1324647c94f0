package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups errors by how the runtime reacts to them.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryElement    Category = "element"
	CategoryContract   Category = "contract"
	CategoryConfig     Category = "config"
)

// Kind is the closed set of error kinds crossing the registry/scanner boundary.
type Kind string

const (
	KindElementNotFound Kind = "ElementNotFound"
	KindObserverFailed  Kind = "ObserverFailed"
	KindJsError         Kind = "JsError"
	KindBehaviorFailed  Kind = "BehaviorFailed"
	KindInvalidSelector Kind = "InvalidSelector"
	KindInvalidConfig   Kind = "InvalidConfig"
)

// BehaviorError is a structured error with a code, a kind and the fields
// each kind carries.
type BehaviorError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Kind is the error kind.
	Kind Kind

	// Category decides whether the error is fatal or recovered.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Selector is set for ElementNotFound and InvalidSelector.
	Selector string

	// Reason is set for ObserverFailed.
	Reason string

	// ElementID and Attribute identify the failing pair for BehaviorFailed.
	ElementID string
	Attribute string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Sentinels for errors.Is. They match any error of the same kind.
var (
	ErrElementNotFound = &BehaviorError{Kind: KindElementNotFound}
	ErrObserverFailed  = &BehaviorError{Kind: KindObserverFailed}
	ErrJsError         = &BehaviorError{Kind: KindJsError}
	ErrBehaviorFailed  = &BehaviorError{Kind: KindBehaviorFailed}
	ErrInvalidSelector = &BehaviorError{Kind: KindInvalidSelector}
	ErrInvalidConfig   = &BehaviorError{Kind: KindInvalidConfig}
)

// Error implements the error interface.
func (e *BehaviorError) Error() string {
	msg := e.Message
	switch e.Kind {
	case KindElementNotFound, KindInvalidSelector:
		if e.Selector != "" {
			msg = fmt.Sprintf("%s: %s", msg, e.Selector)
		}
	case KindObserverFailed:
		if e.Reason != "" {
			msg = fmt.Sprintf("%s: %s", msg, e.Reason)
		}
	case KindBehaviorFailed:
		msg = fmt.Sprintf("%s: [%s] on #%s", msg, e.Attribute, e.ElementID)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *BehaviorError) Unwrap() error {
	return e.Wrapped
}

// Is matches another BehaviorError of the same kind.
func (e *BehaviorError) Is(target error) bool {
	t, ok := target.(*BehaviorError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// WithDetail adds a detailed explanation to the error.
func (e *BehaviorError) WithDetail(d string) *BehaviorError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *BehaviorError) WithSuggestion(s string) *BehaviorError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *BehaviorError) Wrap(err error) *BehaviorError {
	e.Wrapped = err
	return e
}

// New creates a BehaviorError from a registered error code.
func New(code string) *BehaviorError {
	template, ok := registry[code]
	if !ok {
		return &BehaviorError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &BehaviorError{
		Code:     code,
		Kind:     template.Kind,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a BehaviorError with a formatted message and no code.
func Newf(kind Kind, category Category, format string, args ...any) *BehaviorError {
	return &BehaviorError{
		Kind:     kind,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under a registered code. BehaviorErrors
// are returned unchanged.
func FromError(err error, code string) *BehaviorError {
	if err == nil {
		return nil
	}
	var be *BehaviorError
	if stderrors.As(err, &be) {
		return be
	}
	return New(code).Wrap(err)
}

// ElementNotFound reports a missing required element.
func ElementNotFound(selector string) *BehaviorError {
	e := New(CodeElementNotFound)
	e.Selector = selector
	return e
}

// ObserverFailed reports that the mutation observer could not be set up.
func ObserverFailed(reason string) *BehaviorError {
	e := New(CodeObserverFailed)
	e.Reason = reason
	return e
}

// JsError reports a host environment failure.
func JsError(message string) *BehaviorError {
	e := New(CodeJsError)
	e.Message = message
	return e
}

// BehaviorFailed wraps the error a behaviour returned for one element.
func BehaviorFailed(attribute, elementID string, err error) *BehaviorError {
	e := New(CodeBehaviorFailed)
	e.Attribute = attribute
	e.ElementID = elementID
	e.Wrapped = err
	return e
}

// InvalidSelector reports a selector the host tree cannot parse.
func InvalidSelector(selector string, err error) *BehaviorError {
	e := New(CodeInvalidSelector)
	e.Selector = selector
	e.Wrapped = err
	return e
}

// InvalidConfig reports an invalid configuration value.
func InvalidConfig(format string, args ...any) *BehaviorError {
	e := New(CodeInvalidConfig)
	e.Detail = fmt.Sprintf(format, args...)
	e.Message = fmt.Sprintf("%s: %s", e.Message, e.Detail)
	return e
}

// IsStructural reports whether err is a fatal initialisation error.
func IsStructural(err error) bool {
	var be *BehaviorError
	return stderrors.As(err, &be) && be.Category == CategoryStructural
}

// KindOf returns the kind of err, or "" when err is not a BehaviorError.
func KindOf(err error) Kind {
	var be *BehaviorError
	if stderrors.As(err, &be) {
		return be.Kind
	}
	return ""
}
