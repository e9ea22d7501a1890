// Package api is the wire contract between the gophforum server and client.
//
// Messages are plain Go structs carried over gRPC with a JSON codec, so the
// service descriptor and client stub are written by hand instead of being
// generated from protobuf definitions. Mutations report validation failures
// in their Errors field; gRPC status errors are reserved for transport and
// internal failures.
package api
