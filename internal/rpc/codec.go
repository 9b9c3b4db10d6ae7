// Package rpc describes the gophtasks.TaskService gRPC service: request and
// response messages, the service descriptor used by the server, and a client
// stub. Messages are plain structs carried by a JSON codec registered under the
// "json" content subtype, so no generated code is involved.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype both peers must use.
const CodecName = "json"

// JSONCodec marshals messages with encoding/json.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}
