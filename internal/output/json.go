package output

import (
	"encoding/json"

	"codescope/internal/analyzer"
)

// JSON serializes the result with stable formatting. Map keys are
// sorted by the encoder, so identical results produce identical bytes.
func JSON(res *analyzer.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}
