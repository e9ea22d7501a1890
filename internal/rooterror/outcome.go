package rooterror

import "fmt"

// OutcomeKind classifies how a request ended at the transport level.
type OutcomeKind int

const (
	// OutcomeSuccess means the request completed and a response was decoded.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNetworkFailure means the server could not be reached.
	OutcomeNetworkFailure
	// OutcomeServerError means the server answered with a failure status.
	OutcomeServerError
	// OutcomeUnclassified means the request failed without a recognizable
	// network layer reporting why.
	OutcomeUnclassified
)

// Outcome is the transport result of one request.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
}

// Success returns the outcome of a completed request.
func Success() Outcome { return Outcome{Kind: OutcomeSuccess} }

// NetworkFailure returns the outcome of an unreachable server.
func NetworkFailure() Outcome { return Outcome{Kind: OutcomeNetworkFailure} }

// ServerError returns the outcome of a failure status from the server.
func ServerError(code int) Outcome { return Outcome{Kind: OutcomeServerError, StatusCode: code} }

// Unclassified returns the outcome of a failure with no transport details.
func Unclassified() Outcome { return Outcome{Kind: OutcomeUnclassified} }

// Failed reports whether the request did not complete normally.
func (o Outcome) Failed() bool { return o.Kind != OutcomeSuccess }

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeNetworkFailure:
		return "network_failure"
	case OutcomeServerError:
		return fmt.Sprintf("server_error(%d)", o.StatusCode)
	default:
		return "unclassified"
	}
}
