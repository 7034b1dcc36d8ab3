package appmanager

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"RodaClientPortal/api"
	apiexport "RodaClientPortal/api/export"
	"RodaClientPortal/internal/config"
	"RodaClientPortal/internal/creditapi"
	"RodaClientPortal/internal/history"
	"RodaClientPortal/internal/jobs"
	"RodaClientPortal/internal/logger"
	"RodaClientPortal/internal/monitor"
	"RodaClientPortal/internal/serviceiface"
	"RodaClientPortal/internal/session"

	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

var db *sql.DB
var pgxPool *pgxpool.Pool

func SetDB(database *sql.DB) {
	db = database
}

func SetPgxPool(pool *pgxpool.Pool) {
	pgxPool = pool
}

func creditAPIURL() string {
	if url := os.Getenv("CREDIT_API_URL"); url != "" {
		return url
	}
	return config.DefaultCreditAPIURL
}

var serviceConstructors = map[string]func(map[string]interface{}) serviceiface.Service{
	"logger": func(cfg map[string]interface{}) serviceiface.Service {
		return logger.NewLoggerService(cfg)
	},
	"monitor": func(cfg map[string]interface{}) serviceiface.Service {
		return monitor.NewMonitorService(cfg, creditAPIURL())
	},
	"session": func(cfg map[string]interface{}) serviceiface.Service {
		var ttlHours int
		toInt := func(v interface{}) int {
			switch t := v.(type) {
			case int:
				return t
			case int64:
				return int(t)
			case float64:
				return int(t)
			case string:
				var parsed int
				if _, err := fmt.Sscanf(t, "%d", &parsed); err == nil {
					return parsed
				}
			}
			return 0
		}
		if cfg != nil {
			if v, ok := cfg["session_ttl_hours"]; ok && v != nil {
				ttlHours = toInt(v)
			}
		}
		return session.NewManager(db, time.Duration(ttlHours)*time.Hour)
	},
	"export": func(cfg map[string]interface{}) serviceiface.Service {
		var hist *history.Repository
		if pgxPool != nil {
			hist = history.NewRepository(pgxPool)
		}
		return apiexport.NewExportService(cfg, sessionManager, creditapi.NewClient(creditAPIURL()), hist)
	},
	"gateway": func(cfg map[string]interface{}) serviceiface.Service {
		return api.NewGatewayService(cfg)
	},
	"cron": func(cfg map[string]interface{}) serviceiface.Service {
		return jobs.NewCronService(cfg)
	},
}

// sessionManager keeps the manager visible to later constructors: the export
// service and gateway reuse the instance created by the "session" entry.
var sessionManager *session.Manager

// ------------------- MANAGER -------------------

type AppManager struct {
	services []serviceiface.Service
	mu       sync.Mutex
}

func NewAppManager() *AppManager {
	return &AppManager{
		services: make([]serviceiface.Service, 0),
	}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()

	// First pass: start all except monitor
	for _, service := range am.services {
		if service.Name() == "monitor" {
			continue
		}
		fmt.Println("Starting service:", service.Name())
		if err := service.Start(); err != nil {
			return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
		}
	}

	// Now start the upstream monitor (after the services it probes for are up)
	for _, service := range am.services {
		if service.Name() == "monitor" {
			fmt.Println("Starting service:", service.Name())
			if err := service.Start(); err != nil {
				return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
			}
		}
	}
	return nil
}

func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for i := len(am.services) - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil {
			return fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	return nil
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}

	// sort by start_order
	sort.Slice(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})

	return seq.Services, nil
}

func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) {
	var probe *monitor.Monitor
	for _, svc := range configs {
		if constructor, ok := serviceConstructors[svc.Name]; ok {
			service := constructor(svc.Config)
			am.RegisterService(service)
			switch svc.Name {
			case "session":
				if mgr, ok := service.(*session.Manager); ok {
					sessionManager = mgr
					api.SetSessionManager(mgr)
				}
			case "monitor":
				if m, ok := service.(*monitor.Monitor); ok {
					probe = m
					api.SetMonitor(m)
				}
			}
		}
	}

	// Publish each service's listen address so the health surface can
	// report the topology
	if probe != nil {
		for _, svc := range configs {
			if port, ok := svc.Config["port"]; ok && port != nil {
				probe.AddResource(svc.Name+"_addr", fmt.Sprintf(":%v", port))
			}
		}
	}

	api.SetCreditClient(creditapi.NewClient(creditAPIURL()))

	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
}

func (am *AppManager) GetServiceByName(name string) serviceiface.Service {
	for _, svc := range am.services {
		if svc.Name() == name {
			return svc
		}
	}
	return nil
}
