package content

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial JSON object merged over an existing item, key by key.
// The id key is ignored so an item keeps its identity.
type Patch map[string]json.RawMessage

// merge writes src overlaid with p into dst, which should point at a zero
// value so no slices are shared with src.
func (p Patch) merge(src, dst any) error {
	base, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encoding item: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return fmt.Errorf("decoding item: %w", err)
	}
	for k, v := range p {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding patch: %w", err)
	}
	if err := json.Unmarshal(merged, dst); err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	return nil
}
