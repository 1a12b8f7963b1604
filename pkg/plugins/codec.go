package plugins

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName selects the JSON wire encoding on every call. The plugin side
// registers the same codec, so no generated message types are needed.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
