// Package client talks to the gophforum server.
//
// GRPCClient wraps the api.ForumClient stub. It injects the
// access token into every call and, when the server answers that the token
// expired, rotates the token pair once and retries the call.
//
// RPC failures are returned unchanged; Outcome classifies them into the
// transport outcome the error resolver understands. Field errors arrive in
// the response payloads, never as Go errors.
package client
