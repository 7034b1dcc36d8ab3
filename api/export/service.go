package export

import (
	"context"
	"log"

	"RodaClientPortal/internal/creditapi"
	"RodaClientPortal/internal/history"
	"RodaClientPortal/internal/serviceiface"
	"RodaClientPortal/internal/session"
)

type ExportService struct {
	config   map[string]interface{}
	sessions *session.Manager
	credit   *creditapi.Client
	history  *history.Repository
}

func NewExportService(cfg map[string]interface{}, sessions *session.Manager, credit *creditapi.Client, hist *history.Repository) serviceiface.Service {
	return &ExportService{config: cfg, sessions: sessions, credit: credit, history: hist}
}

func (s *ExportService) Name() string {
	return "export"
}

func (s *ExportService) Start() error {
	if s.history != nil {
		if err := s.history.EnsureSchema(context.Background()); err != nil {
			// exports still work, only the audit trail is lost
			log.Println("[Export] history schema unavailable:", err)
			s.history = nil
		}
	}
	go StartExportService(s.config, s.sessions, s.credit, s.history)
	return nil
}

func (s *ExportService) Stop() error {
	return nil
}
