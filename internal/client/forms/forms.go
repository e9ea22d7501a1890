// Package forms tracks one user-initiated action from input to result and
// resolves its failure into a single message through rooterror.
//
// A Form moves Idle -> Submitting -> Succeeded or Failed. Reject records a
// local validation failure without a request. Submit runs exactly one
// request; there is no retry.
package forms

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophforum/internal/client/client"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/rooterror"
)

type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ErrBusy is returned by Submit while a request is in flight.
var ErrBusy = errors.New("form is already submitting")

// Request performs the form's single call. Field errors reported by the
// server go in the slice; the error is for transport failures only.
type Request func(ctx context.Context) ([]fielderrors.FieldError, error)

type Form struct {
	resolver *rooterror.Resolver
	messages rooterror.Messages
	classify func(error) rooterror.Outcome

	state   State
	plain   string
	outcome rooterror.Outcome
	errors  []fielderrors.FieldError
}

// New returns an idle form. messages overrides the texts of the error types
// the form cares about; resolver may be nil for built-in English defaults.
func New(resolver *rooterror.Resolver, messages rooterror.Messages) *Form {
	if resolver == nil {
		resolver = rooterror.NewResolver(nil)
	}
	return &Form{resolver: resolver, messages: messages, classify: client.Outcome}
}

func (f *Form) State() State {
	return f.state
}

// Reset returns the form to Idle and forgets the last result.
func (f *Form) Reset() {
	f.state = Idle
	f.plain = ""
	f.outcome = rooterror.Success()
	f.errors = nil
}

// Reject fails the form with a local validation code.
func (f *Form) Reject(code string) {
	f.Reset()
	f.plain = code
	f.state = Failed
}

// Submit runs req and records its result. It reports whether the request
// succeeded without field errors.
func (f *Form) Submit(ctx context.Context, req Request) (bool, error) {
	if f.state == Submitting {
		return false, ErrBusy
	}
	f.Reset()
	f.state = Submitting

	errs, err := req(ctx)
	f.outcome = f.classify(err)
	f.errors = errs

	if err != nil || len(errs) > 0 {
		f.state = Failed
		return false, nil
	}
	f.state = Succeeded
	return true, nil
}

// FieldErrors returns the server errors of the last submission.
func (f *Form) FieldErrors() []fielderrors.FieldError {
	return f.errors
}

// Error resolves the message to show at the given locations, the form root
// when none are given.
func (f *Form) Error(locations ...string) (rooterror.Error, bool) {
	if f.state != Failed {
		return rooterror.Error{}, false
	}
	return f.resolver.Resolve(rooterror.Input{
		Plain:     f.plain,
		Transport: f.outcome,
		Errors:    f.errors,
		Messages:  f.messages,
		Locations: locations,
	})
}
