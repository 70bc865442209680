// Package report writes rankings to JSON files and Excel workbooks.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/talent-match/internal/matching"
)

// WriteJSON writes r to path, or to a temporary file when path is empty,
// and returns the file written.
func WriteJSON(path string, r *matching.Ranking) (string, error) {
	if path == "" {
		return r.DumpToTmpFile()
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode ranking: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
