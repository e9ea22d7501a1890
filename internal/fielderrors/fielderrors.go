// Package fielderrors defines location-scoped validation errors returned by
// forum mutations.
//
// A FieldError names the input path it belongs to (for example ["title"] or
// ["threads", "2"]) and carries a stable machine code plus a server-default
// human text. Errors that concern the whole form rather than one input use
// RootLocation.
package fielderrors

import "strings"

// RootLocation is the synthetic path for whole-form errors.
const RootLocation = "__root__"

// FieldError is one validation failure reported for a mutation.
type FieldError struct {
	Location []string `json:"location"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
}

// New builds a FieldError for the given location path.
func New(location []string, typ, message string) FieldError {
	loc := make([]string, len(location))
	copy(loc, location)
	return FieldError{Location: loc, Type: typ, Message: message}
}

// Root builds a FieldError at RootLocation.
func Root(typ, message string) FieldError {
	return FieldError{Location: []string{RootLocation}, Type: typ, Message: message}
}

// Path returns the location joined with dots, e.g. "threads.2".
func (e FieldError) Path() string {
	return strings.Join(e.Location, ".")
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return e.Path() + ": " + e.Type
}

// List collects field errors in insertion order.
//
// The zero value is ready to use.
type List struct {
	errors []FieldError
}

// Add appends an error at location.
func (l *List) Add(location []string, typ, message string) {
	l.errors = append(l.errors, New(location, typ, message))
}

// AddField appends an error for a single top-level field.
func (l *List) AddField(field, typ, message string) {
	l.Add([]string{field}, typ, message)
}

// AddRoot appends a whole-form error.
func (l *List) AddRoot(typ, message string) {
	l.errors = append(l.errors, Root(typ, message))
}

// HasErrors reports whether anything was collected.
func (l *List) HasErrors() bool {
	return len(l.errors) > 0
}

// HasErrorAt reports whether an error exists at the dotted path.
func (l *List) HasErrorAt(path string) bool {
	for _, e := range l.errors {
		if e.Path() == path {
			return true
		}
	}
	return false
}

// HasRootError reports whether a whole-form error was collected.
func (l *List) HasRootError() bool {
	return l.HasErrorAt(RootLocation)
}

// Errors returns a copy of the collected errors, or nil when empty.
func (l *List) Errors() []FieldError {
	if len(l.errors) == 0 {
		return nil
	}
	out := make([]FieldError, len(l.errors))
	copy(out, l.errors)
	return out
}
