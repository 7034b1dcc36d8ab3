package config

const (
	DefaultTimeZone     = "America/Bogota"
	DefaultCreditAPIURL = "http://localhost:8000/api"
	DefaultDocType      = "CC"

	// Fixed key the session store persists client profiles under
	SessionStorageKey = "roda_client_info"

	// Export Configuration Constants
	DefaultExportDir     = "./exports"
	ExportRetentionDays  = 7
	DefaultSweepSchedule = "0 3 * * *" // nightly artifact cleanup
	DefaultSheetName     = "Reporte"

	// ShareAttribution closes the share summary; ExportAttribution is the
	// PDF footer line, restricted to cp1252-safe text.
	ShareAttribution  = "Reporte generado desde la app de Roda"
	ExportAttribution = "Generado desde la app de Roda"
)
