package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophforum/internal/rooterror"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Outcome classifies the error of one RPC for the error resolver.
//
// Unreachable servers and deadlines are network failures. Any other gRPC
// status is a server error carrying the HTTP status equivalent of its code.
// Errors with no gRPC status, including a cancelled context, are
// unclassified.
func Outcome(err error) rooterror.Outcome {
	if err == nil {
		return rooterror.Success()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnavailable) {
		return rooterror.NetworkFailure()
	}

	st, ok := status.FromError(err)
	if !ok {
		return rooterror.Unclassified()
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return rooterror.NetworkFailure()
	case codes.Canceled:
		return rooterror.Unclassified()
	}
	return rooterror.ServerError(HTTPStatus(st.Code()))
}

// HTTPStatus maps a gRPC code to the HTTP status a gateway would answer.
func HTTPStatus(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.Canceled:
		return 499
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
