package export

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"RodaClientPortal/api"
	"RodaClientPortal/internal/config"
	"RodaClientPortal/internal/creditapi"
	"RodaClientPortal/internal/history"
	"RodaClientPortal/internal/session"
)

// StartExportService runs the export HTTP service on its own port. All
// routes require an identified session; the middleware attaches the client
// profile to the request context.
func StartExportService(cfg map[string]interface{}, sessions *session.Manager, credit *creditapi.Client, hist *history.Repository) {
	exportDir := config.DefaultExportDir
	if cfg != nil {
		if dir, ok := cfg["export_dir"].(string); ok && dir != "" {
			exportDir = dir
		}
	}

	h := &handlers{credit: credit, history: hist, exportDir: exportDir}

	router := mux.NewRouter()
	router.HandleFunc("/export/cronograma", api.WithClientSession(sessions, h.ExportSchedule)).Methods("POST")
	router.HandleFunc("/export/creditos", api.WithClientSession(sessions, h.ExportCredits)).Methods("POST")
	router.HandleFunc("/export/pagos", api.WithClientSession(sessions, h.ExportPayments)).Methods("POST")
	router.HandleFunc("/export/share", api.WithClientSession(sessions, h.Share)).Methods("POST")
	router.HandleFunc("/export/history", api.WithClientSession(sessions, h.History)).Methods("POST")
	router.HandleFunc("/export/descargar", api.WithClientSession(sessions, h.Download)).Methods("POST")
	router.HandleFunc("/export/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Export Service is healthy"))
	}).Methods("GET")

	port := "7143"
	if cfg != nil {
		if p, ok := cfg["port"].(string); ok && p != "" {
			port = p
		}
	}
	log.Println("Export Service started on :" + port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Export Service failed: %v", err)
	}
}
