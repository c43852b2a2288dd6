package types

import "encoding/json"

// Canonical encoding for wire types and storage values.
//
// Storage keys/values and RPC payloads need one deterministic byte form
// rather than a hand-rolled protobuf wire encoder: encoding/json already
// produces a stable byte sequence for a fixed struct shape (fields in
// declaration order, map keys sorted), and pkg/storage/boltdb.go persists
// values the same way. Encode/Decode are the one seam every storage
// backend and RPC codec in this module goes through, so switching the wire
// format later touches only this file.

// Encode canonically serializes v.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode canonically deserializes data into v.
func Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
