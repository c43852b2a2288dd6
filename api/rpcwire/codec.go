// Package rpcwire registers the gRPC wire codec shared by the coordinator
// and worker API services.
//
// A protobuf/prost-generated wire format would normally back these
// services. Reproducing that here would mean hand-authoring the full
// protoc-gen-go-grpc output (descriptor bytes, ProtoReflect machinery)
// without access to a protoc toolchain in this environment. Instead this
// codec plugs into google.golang.org/grpc's real, public
// codec-registration mechanism (encoding.RegisterCodec, the same extension
// point production code uses for msgpack/proto-json codecs) and marshals
// with the canonical encoding already chosen for storage
// (pkg/types.Encode/Decode), so a CreateSubDataflowRequest round-trips
// byte-identically whether it is written to bbolt or sent over the wire.
package rpcwire

import (
	"fmt"

	"google.golang.org/grpc/encoding"

	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// Name is the content-subtype under which this codec is registered; gRPC
// calls made with grpc.CallContentSubtype(Name) are marshaled through it.
const Name = "lightflusjson"

func init() {
	encoding.RegisterCodec(canonicalCodec{})
}

type canonicalCodec struct{}

func (canonicalCodec) Name() string { return Name }

func (canonicalCodec) Marshal(v any) ([]byte, error) {
	b, err := types.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("rpcwire: marshal: %w", err)
	}
	return b, nil
}

func (canonicalCodec) Unmarshal(data []byte, v any) error {
	if err := types.Decode(data, v); err != nil {
		return fmt.Errorf("rpcwire: unmarshal: %w", err)
	}
	return nil
}
