package rpcwire

import "google.golang.org/grpc"

// CallOption selects this package's codec for a single RPC invocation.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

// DialOptions returns the grpc.DialOption set every gateway in this module
// dials with, so every outbound call defaults to the canonical codec without
// callers having to remember CallOption() at each call site.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithDefaultCallOptions(CallOption()),
	}
}
