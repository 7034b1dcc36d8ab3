package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveArtifact writes an artifact into outDir under its own filename. The
// write goes through a temp file and rename in the same directory so a
// failed export never leaves a partial file behind.
func SaveArtifact(outDir string, artifact *Artifact) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(outDir, artifact.Filename)

	tmp, err := os.CreateTemp(outDir, ".tmp-")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(artifact.Data); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename artifact: %w", err)
	}
	success = true
	return path, nil
}
