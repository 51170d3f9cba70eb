package services

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies pipeline failures so callers can decide whether the
// input can be self-corrected (bad file, bad filters) or not.
type ErrorKind string

const (
	ErrSchema      ErrorKind = "schema"
	ErrDataQuality ErrorKind = "data_quality"
	ErrParse       ErrorKind = "parse"
	ErrRender      ErrorKind = "render"
	ErrInternal    ErrorKind = "internal"
)

// ReportError is the error type for every failure the pipeline can produce.
// Details carries structured context (offending columns, drop counts, filter
// values) so the message stays readable while nothing is lost.
type ReportError struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	Cause   error
}

func (e *ReportError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches one structured context value and returns the error for
// chaining.
func (e *ReportError) WithDetail(key string, value any) *ReportError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func newError(kind ErrorKind, message string) *ReportError {
	return &ReportError{Kind: kind, Message: message}
}

// NewSchemaError reports a structural problem with the uploaded sheet:
// required columns absent or no data rows at all.
func NewSchemaError(message string) *ReportError {
	return newError(ErrSchema, message)
}

// NewDataQualityError reports that the data survived schema checks but is not
// trustworthy enough to report on (excessive row loss, nothing left after
// filtering).
func NewDataQualityError(message string) *ReportError {
	return newError(ErrDataQuality, message)
}

// NewParseError reports a malformed caller-supplied scalar, e.g. a filter
// date that does not parse. Per-row cell values never produce this; they
// degrade to defaults instead.
func NewParseError(message string) *ReportError {
	return newError(ErrParse, message)
}

// NewRenderError wraps a failure from the PDF or Excel engine.
func NewRenderError(message string, cause error) *ReportError {
	return &ReportError{Kind: ErrRender, Message: message, Cause: cause}
}

// WrapInternal marks an unexpected fault, capturing a stack trace for the
// logs. Callers surface these as a generic internal error.
func WrapInternal(cause error, message string) *ReportError {
	return &ReportError{
		Kind:    ErrInternal,
		Message: message,
		Cause:   errors.WithStack(cause),
	}
}

// KindOf returns the ErrorKind of err, or ErrInternal when err is not a
// ReportError.
func KindOf(err error) ErrorKind {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Kind
	}
	return ErrInternal
}

// IsUserError reports whether err is something the caller can fix by
// correcting the upload or the filter parameters.
func IsUserError(err error) bool {
	switch KindOf(err) {
	case ErrSchema, ErrDataQuality, ErrParse:
		return true
	}
	return false
}
