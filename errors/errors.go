package errors

import (
	// Go Internal Packages
	"fmt"
	"sort"
	"strings"

	// External Packages
	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an error by what went wrong, not where.
type Kind uint8

const (
	Other        Kind = iota // Unclassified error.
	Invalid                  // Invalid configuration or a payload that doesn't match its format.
	Unavailable              // Broker cannot be reached.
	Subscription             // Topic is unknown or not authorized for this consumer.
	Internal                 // Internal error or inconsistency.
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Unavailable:
		return "unavailable"
	case Subscription:
		return "subscription"
	case Internal:
		return "internal"
	}
	return "other"
}

// Error is a classified error carrying a short operation message and its cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error. A nil cause is allowed.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether err is classified with the given kind.
func Is(kind Kind, err error) bool {
	return err != nil && KindOf(err) == kind
}

// Wrap annotates err with a message and a stack trace.
func Wrap(err error, msg string) error {
	return pkgerrors.Wrap(err, msg)
}

// New returns an error with a stack trace.
func New(msg string) error {
	return pkgerrors.New(msg)
}

// As is errors.As, re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return pkgerrors.As(err, target)
}

// IsErr is errors.Is, re-exported so callers need a single errors import.
func IsErr(err, target error) bool {
	return pkgerrors.Is(err, target)
}

// ValidationErrors collects per-field validation failures.
type ValidationErrors struct {
	fields map[string][]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{fields: make(map[string][]string)}
}

// Add records a failure for field.
func (v *ValidationErrors) Add(field, msg string) {
	v.fields[field] = append(v.fields[field], msg)
}

// Err returns nil when nothing was added, otherwise an Invalid error listing
// every field in a stable order.
func (v *ValidationErrors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(v.fields[k], ", ")))
	}
	return E(Invalid, "", pkgerrors.New(strings.Join(parts, "; ")))
}
