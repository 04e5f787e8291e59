package report

import (
	"encoding/json"
	"fmt"
)

// Partial is a field-wise update to a Record, keyed by the record's JSON
// field names. It is the shape both surfaces naturally produce: the web API
// request body, the LLM's extractedData object, and the scripted chat
// handlers all funnel through it.
type Partial map[string]any

// Apply merges partial into rec: every key present in partial replaces the
// corresponding record field, keys absent from partial are untouched. Nested
// slices are replaced wholesale, so an accidentSequence update must carry the
// entire new sequence. Applying the same partial twice is a no-op the second
// time.
func Apply(rec *Record, partial Partial) error {
	if len(partial) == 0 {
		return nil
	}
	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("encode partial: %w", err)
	}
	// Slices must be overwritten, not element-merged, so clear the ones the
	// partial names before decoding into the record.
	if _, ok := partial["accidentSequence"]; ok {
		rec.AccidentSequence = nil
	}
	if _, ok := partial["witnesses"]; ok {
		rec.Witnesses = nil
	}
	if err := json.Unmarshal(raw, rec); err != nil {
		return fmt.Errorf("apply partial: %w", err)
	}
	if _, ok := partial["accidentSequence"]; ok {
		rec.AccidentSequence = Renumber(rec.AccidentSequence)
	}
	return nil
}
