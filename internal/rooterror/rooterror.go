package rooterror

import (
	"strings"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
)

// Error types synthesized or defaulted by the resolver.
const (
	TypeGraphQL       = "client_error.graphql"
	TypeNetwork       = "client_error.network"
	TypeNotAuthorized = "auth_error.not_authorized"
)

// Messages maps error types to display text. A missing or empty entry means
// the caller has no override for that type.
type Messages map[string]string

// Error is the resolved error to display.
type Error struct {
	Type    string
	Message string
}

// Input gathers everything known about one settled action.
type Input struct {
	// Plain is a local validation code, checked before any request was made.
	Plain string
	// Transport is how the request ended.
	Transport Outcome
	// Errors are the field errors returned by the server, in server order.
	Errors []fielderrors.FieldError
	// Messages are the caller's display overrides.
	Messages Messages
	// Locations are the render locations of interest. Nil means the root;
	// an empty slice matches nothing.
	Locations []string
}

// Localizer supplies localized text for a message id.
type Localizer interface {
	T(id, fallback string) string
}

type fallbackLocalizer struct{}

func (fallbackLocalizer) T(_, fallback string) string { return fallback }

type defaultMessage struct {
	id       string
	fallback string
}

var (
	graphqlMessage = defaultMessage{id: TypeGraphQL, fallback: "Unexpected error has occurred."}
	networkMessage = defaultMessage{id: TypeNetwork, fallback: "Site server can't be reached."}
)

// defaults are consulted after the caller's Messages.
var defaults = map[string]defaultMessage{
	TypeNotAuthorized: {id: TypeNotAuthorized, fallback: "You need to be signed in to perform this action."},
}

// Resolver resolves errors using a Localizer for its default texts.
type Resolver struct {
	loc Localizer
}

// NewResolver returns a Resolver. A nil Localizer uses the English defaults.
func NewResolver(loc Localizer) *Resolver {
	if loc == nil {
		loc = fallbackLocalizer{}
	}
	return &Resolver{loc: loc}
}

var std = NewResolver(nil)

// Resolve resolves in with the English defaults.
func Resolve(in Input) (Error, bool) {
	return std.Resolve(in)
}

// Resolve returns the error to display for in, or false when there is none
// at the requested locations.
func (r *Resolver) Resolve(in Input) (Error, bool) {
	if in.Plain != "" {
		if msg := in.Messages[in.Plain]; msg != "" {
			return Error{Type: in.Plain, Message: msg}, true
		}
	}

	errs := make([]fielderrors.FieldError, 0, len(in.Errors)+1)
	if synthesized, ok := r.transportError(in.Transport); ok {
		errs = append(errs, synthesized)
	}
	errs = append(errs, in.Errors...)
	if len(errs) == 0 {
		return Error{}, false
	}

	locations := in.Locations
	if locations == nil {
		locations = []string{fielderrors.RootLocation}
	}

	for _, location := range locations {
		for _, e := range errs {
			if strings.Join(e.Location, ".") == location {
				return Error{Type: e.Type, Message: r.message(in.Messages, e)}, true
			}
		}
	}
	return Error{}, false
}

// transportError synthesizes the root error for a failed transport.
// A 400 response and a failure without any network layer share the generic
// graphql code.
func (r *Resolver) transportError(o Outcome) (fielderrors.FieldError, bool) {
	switch o.Kind {
	case OutcomeSuccess:
		return fielderrors.FieldError{}, false
	case OutcomeNetworkFailure:
		return fielderrors.Root(TypeNetwork, r.text(networkMessage)), true
	default:
		return fielderrors.Root(TypeGraphQL, r.text(graphqlMessage)), true
	}
}

func (r *Resolver) message(messages Messages, e fielderrors.FieldError) string {
	if msg := messages[e.Type]; msg != "" {
		return msg
	}
	if d, ok := defaults[e.Type]; ok {
		return r.text(d)
	}
	return e.Message
}

func (r *Resolver) text(d defaultMessage) string {
	return r.loc.T(d.id, d.fallback)
}
