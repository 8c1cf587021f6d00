package packer

import "github.com/vmihailenco/msgpack/v5"

// EncodeMessage packs v into a compact binary blob.
func EncodeMessage(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// DecodeMessage unpacks a blob produced by EncodeMessage into v.
func DecodeMessage(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
