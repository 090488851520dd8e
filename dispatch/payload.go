package dispatch

import (
	"encoding/json"
	"fmt"
)

// Payload is the decoded JSON object of a successful response. It is empty,
// never nil, when the response had no body.
type Payload map[string]any

// Decode converts the payload into out, which must be a pointer to a type
// json.Unmarshal accepts.
func (p Payload) Decode(out any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
