// Package rooterror resolves the single error message shown for a user action.
//
// A form submission can fail in three ways: a local precondition never sent to
// the server, a transport failure, or server-side field validation. Resolve
// folds all three into at most one Error for a given set of render locations.
//
// Resolution order:
//
//  1. A local validation code wins if the caller's Messages know it.
//  2. A failed transport synthesizes one root error, client_error.network for
//     NetworkFailure and client_error.graphql for every other failure.
//  3. Server field errors follow in the order they were received.
//  4. Locations are scanned in caller order; for each, the first error whose
//     dotted path equals the location is returned.
//
// The message for the chosen error comes from the caller's Messages, then the
// built-in defaults (auth_error.not_authorized), then the error's own text.
package rooterror
