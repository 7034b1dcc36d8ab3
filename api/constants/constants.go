package constants

// ============================================================================
// SESSION ERRORS
// ============================================================================

const (
	ErrMissingSessionID = "session_id is required in the request"
	ErrInvalidSession   = "Tu sesión ha expirado o no es válida. Identifícate de nuevo"
	ErrMissingDocument  = "num_doc is required in the request"
	ErrClientNotFound   = "No encontramos un cliente con ese documento"
)

// ============================================================================
// EXPORT ERRORS
// ============================================================================

const (
	ErrUpstreamUnavailable = "No pudimos consultar tus datos. Intenta de nuevo"
	ErrExportFailed        = "No pudimos generar el reporte. Intenta de nuevo"
	ErrUnsupportedFormat   = "Formato de exportación no soportado"
	ErrUnsupportedMethod   = "Método para compartir no soportado"
	ErrUnknownDomain       = "Tipo de reporte no soportado"
	ErrHistoryUnavailable  = "No pudimos consultar tus exportaciones recientes"
	ErrExportNotFound      = "Ese reporte ya no está disponible"
)

// ============================================================================
// EXPORT DOMAINS
// ============================================================================

const (
	DomainSchedule = "cronograma"
	DomainCredits  = "creditos"
	DomainPayments = "pagos"
)
