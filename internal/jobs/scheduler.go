package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"RodaClientPortal/internal/config"
	"RodaClientPortal/internal/logger"
	"RodaClientPortal/internal/serviceiface"
)

// CronService owns the scheduled maintenance jobs: currently the export
// artifact retention sweep.
type CronService struct {
	config map[string]interface{}
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}) serviceiface.Service {
	return &CronService{config: cfg}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	sweep := NewDefaultSweepConfig()

	// Override from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["sweep_schedule"].(string); ok && schedule != "" {
			sweep.Schedule = schedule
		}
		if dir, ok := s.config["export_dir"].(string); ok && dir != "" {
			sweep.ExportDir = dir
		}
		if days, ok := s.config["retention_days"].(int); ok && days > 0 {
			sweep.RetentionDays = days
		}
		if f, ok := s.config["retention_days"].(float64); ok && f > 0 {
			sweep.RetentionDays = int(f)
		}
	}

	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", config.DefaultTimeZone, err)
	}

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(sweep.Schedule, func() {
		if err := RunRetentionSweep(sweep); err != nil {
			log.Println("[Cron] retention sweep failed:", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule retention sweep: %w", err)
	}
	s.cron.Start()

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Cron service started, sweep schedule %q dir %s", sweep.Schedule, sweep.ExportDir))
	}
	log.Println("Cron service started, artifact retention sweep scheduled")
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}
