package creditapi

// ClientProfile is the identity record returned by the document lookup.
type ClientProfile struct {
	ClienteID int    `json:"cliente_id"`
	TipoDoc   string `json:"tipo_doc"`
	NumDoc    string `json:"num_doc"`
	Nombre    string `json:"nombre"`
	Ciudad    string `json:"ciudad"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreditInfo is the enriched credit sub-record nested inside schedule rows.
type CreditInfo struct {
	CreditoID       int    `json:"credito_id"`
	Cliente         int    `json:"cliente"`
	ClientName      string `json:"client_name"`
	Producto        string `json:"producto"`
	Inversion       string `json:"inversion"`
	CuotasTotales   int    `json:"cuotas_totales"`
	TEA             string `json:"tea"`
	FechaDesembolso string `json:"fecha_desembolso"`
	FechaInicioPago string `json:"fecha_inicio_pago"`
	Estado          string `json:"estado"`
}

// ScheduleEntry is one scheduled installment. The credit fields may arrive
// either enriched (CreditInfo) or flat (Credito/Producto), depending on the
// upstream serializer in play.
type ScheduleEntry struct {
	ScheduleID       int         `json:"schedule_id"`
	Credito          int         `json:"credito,omitempty"`
	CreditInfo       *CreditInfo `json:"credit_info,omitempty"`
	NumCuota         int         `json:"num_cuota"`
	FechaVencimiento string      `json:"fecha_vencimiento"`
	ValorCuota       string      `json:"valor_cuota"`
	Estado           string      `json:"estado"`
	Producto         string      `json:"producto,omitempty"`
}

// Credit is one disbursed loan record.
type Credit struct {
	CreditoID       int    `json:"credito_id"`
	Cliente         int    `json:"cliente"`
	ClientName      string `json:"client_name,omitempty"`
	Producto        string `json:"producto"`
	Inversion       string `json:"inversion"`
	CuotasTotales   int    `json:"cuotas_totales"`
	TEA             string `json:"tea"`
	FechaDesembolso string `json:"fecha_desembolso"`
	FechaInicioPago string `json:"fecha_inicio_pago,omitempty"`
	Estado          string `json:"estado"`
}

// CuotaInfo is the enriched installment sub-record nested inside payments.
type CuotaInfo struct {
	NumCuota         int     `json:"num_cuota"`
	FechaVencimiento string  `json:"fecha_vencimiento"`
	ValorCuota       float64 `json:"valor_cuota"`
	Estado           string  `json:"estado"`
	Producto         string  `json:"producto"`
}

// PaymentCreditInfo is the enriched credit sub-record nested inside payments.
type PaymentCreditInfo struct {
	CreditoID int    `json:"credito_id"`
	Producto  string `json:"producto"`
	ClienteID int    `json:"cliente_id"`
}

// Payment is one recorded money transfer applied against an installment.
type Payment struct {
	PagoID      int                `json:"pago_id"`
	Schedule    int                `json:"schedule"`
	Credito     *int               `json:"credito,omitempty"`
	Cuota       *int               `json:"cuota,omitempty"`
	FechaPago   string             `json:"fecha_pago"`
	Monto       string             `json:"monto"`
	Medio       string             `json:"medio"`
	CuotaInfo   *CuotaInfo         `json:"cuota_info,omitempty"`
	CreditoInfo *PaymentCreditInfo `json:"credito_info,omitempty"`
}

// ScheduleSummary aggregates a client's schedule state, computed upstream.
type ScheduleSummary struct {
	TotalCuotas      int     `json:"total_cuotas"`
	CuotasPagadas    int     `json:"cuotas_pagadas"`
	CuotasPendientes int     `json:"cuotas_pendientes"`
	CuotasVencidas   int     `json:"cuotas_vencidas"`
	MontoTotal       float64 `json:"monto_total"`
	MontoPagado      float64 `json:"monto_pagado"`
	MontoPendiente   float64 `json:"monto_pendiente"`
	PorcentajePagado float64 `json:"porcentaje_pagado"`
}

// PaymentSummary aggregates a client's payment history, computed upstream.
type PaymentSummary struct {
	TotalPagos       int     `json:"total_pagos"`
	MontoTotalPagado float64 `json:"monto_total_pagado"`
}
