package server

import (
	"encoding/json"
	"fmt"
)

// jsonCodec replaces connect's protojson codec so handlers can use plain Go structs.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal() > %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("json.Unmarshal() > %w", err)
	}
	return nil
}
