package jobs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"RodaClientPortal/internal/config"
	"RodaClientPortal/internal/logger"
)

type SweepConfig struct {
	Schedule      string
	ExportDir     string
	RetentionDays int
}

func NewDefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Schedule:      config.DefaultSweepSchedule,
		ExportDir:     config.DefaultExportDir,
		RetentionDays: config.ExportRetentionDays,
	}
}

// artifact extensions the sweep is allowed to touch
var artifactExts = map[string]bool{
	".pdf":  true,
	".xlsx": true,
	".csv":  true,
}

// RunRetentionSweep deletes export artifacts older than the retention
// window. Anything that is not a produced artifact is left alone.
func RunRetentionSweep(cfg SweepConfig) error {
	if cfg.RetentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)

	entries, err := os.ReadDir(cfg.ExportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !artifactExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		fullPath := filepath.Join(cfg.ExportDir, entry.Name())
		info, err := os.Stat(fullPath)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			log.Println("[Cron] failed to remove expired artifact:", fullPath, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[Cron] retention sweep removed %d expired artifact(s)", removed)
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("retention sweep removed expired artifacts")
		}
	}
	return nil
}
