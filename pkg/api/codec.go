// Package api defines the chitfund RPC surface: procedure names, request and
// response messages, a JSON codec for connect, and typed clients.
package api

import "encoding/json"

// Codec marshals messages as JSON. It replaces connect's protobuf-only JSON
// codec so plain Go structs can travel over the Connect protocol.
type Codec struct{}

// Name is the codec name negotiated through the Content-Type header.
func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
