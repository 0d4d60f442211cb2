package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/upsell/internal/report"
)

// WriteFile renders rep and writes it to path, creating parent
// directories as needed. An empty path writes DefaultFileName in the
// working directory. It returns the path written.
func WriteFile(path string, rep report.Report, opts Options) (string, error) {
	if path == "" {
		path = DefaultFileName
	}

	data, err := PDF(rep, opts)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
