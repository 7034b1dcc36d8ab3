package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"

	"RodaClientPortal/api"
	"RodaClientPortal/api/constants"
	"RodaClientPortal/internal/checksum"
	"RodaClientPortal/internal/creditapi"
	pipeline "RodaClientPortal/internal/export"
	"RodaClientPortal/internal/history"
	"RodaClientPortal/internal/logger"
)

// errUnknownDomain marks a caller asking for a report domain outside the
// closed cronograma/creditos/pagos set.
var errUnknownDomain = errors.New("unknown export domain")

type handlers struct {
	credit    *creditapi.Client
	history   *history.Repository
	exportDir string
}

// filterBody carries the caller's listing filters; rows handed to the
// pipeline are exactly what the upstream returns for these.
type filterBody struct {
	Estado     string `json:"estado,omitempty"`
	Producto   string `json:"producto,omitempty"`
	Medio      string `json:"medio,omitempty"`
	FechaDesde string `json:"fecha_desde,omitempty"`
	FechaHasta string `json:"fecha_hasta,omitempty"`
	OrdenarPor string `json:"ordenar_por,omitempty"`
	Orden      string `json:"orden,omitempty"`
}

type exportBody struct {
	SessionID     string     `json:"session_id"`
	Format        string     `json:"format"`
	Orientation   string     `json:"orientation,omitempty"`
	PageSize      string     `json:"pageSize,omitempty"`
	IncludeCharts bool       `json:"includeCharts,omitempty"`
	Filters       filterBody `json:"filters,omitempty"`
}

func (b *exportBody) request() pipeline.Request {
	return pipeline.Request{
		Format:        pipeline.Format(b.Format),
		Orientation:   pipeline.Orientation(b.Orientation),
		PageSize:      pipeline.PageSize(b.PageSize),
		IncludeCharts: b.IncludeCharts,
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": msg})
}

// respondArtifact records the document in the export history and streams it
// as an attachment. A history or save failure is logged, not fatal: the
// artifact is still returned.
func (h *handlers) respondArtifact(w http.ResponseWriter, r *http.Request, domain string, report *pipeline.TabularReport, body *exportBody) {
	artifact, err := pipeline.Export(report, body.request())
	if err != nil {
		if errors.Is(err, pipeline.ErrUnsupportedFormat) {
			writeJSONError(w, http.StatusBadRequest, constants.ErrUnsupportedFormat)
			return
		}
		var rowErr *pipeline.RowError
		if errors.As(err, &rowErr) {
			writeJSONError(w, http.StatusUnprocessableEntity, rowErr.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, constants.ErrExportFailed)
		return
	}

	sum := checksum.Sum(artifact.Data)
	if _, err := pipeline.SaveArtifact(h.exportDir, artifact); err != nil {
		// The streamed copy is still intact; only the server-side copy failed
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("[Export] failed to save artifact %s: %v", artifact.Filename, err))
		}
	}

	client, _ := api.GetClientFromCtx(r.Context())
	if h.history != nil {
		exportID, err := h.history.Insert(r.Context(), history.Record{
			ClienteID: client.ClienteID,
			Domain:    domain,
			Format:    string(body.request().Format),
			Filename:  artifact.Filename,
			RowCount:  len(report.Rows),
			Checksum:  sum,
		})
		if err != nil {
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("[Export] failed to record export: %v", err))
			}
		} else {
			w.Header().Set("X-Export-Id", exportID)
		}
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("[Export] client %d exported %s as %s (%d rows)",
			client.ClienteID, domain, body.Format, len(report.Rows)))
	}

	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("X-Artifact-Checksum", sum)
	w.Write(artifact.Data)
}

func decodeExportBody(w http.ResponseWriter, r *http.Request) (*exportBody, bool) {
	var body exportBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	return &body, true
}

// ExportSchedule handles POST /export/cronograma
func (h *handlers) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExportBody(w, r)
	if !ok {
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	page, err := h.credit.GetClientSchedule(r.Context(), client.ClienteID, &creditapi.ScheduleFilters{
		Estado:     body.Filters.Estado,
		Producto:   body.Filters.Producto,
		FechaDesde: body.Filters.FechaDesde,
		FechaHasta: body.Filters.FechaHasta,
		OrdenarPor: body.Filters.OrdenarPor,
		Orden:      body.Filters.Orden,
		All:        true,
	})
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, constants.ErrUpstreamUnavailable)
		return
	}

	report, err := pipeline.PrepareSchedule(page.Results)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.respondArtifact(w, r, constants.DomainSchedule, report, body)
}

// ExportCredits handles POST /export/creditos
func (h *handlers) ExportCredits(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExportBody(w, r)
	if !ok {
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	credits, err := h.fetchAllCredits(r, client.ClienteID, body)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, constants.ErrUpstreamUnavailable)
		return
	}

	report, err := pipeline.PrepareCredits(credits)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.respondArtifact(w, r, constants.DomainCredits, report, body)
}

// fetchAllCredits walks the paginated credit listing until exhausted;
// credits have no unpaginated mode upstream.
func (h *handlers) fetchAllCredits(r *http.Request, clienteID int, body *exportBody) ([]creditapi.Credit, error) {
	var credits []creditapi.Credit
	for page := 1; ; page++ {
		result, err := h.credit.GetClientCredits(r.Context(), clienteID, &creditapi.CreditFilters{
			Estado:     body.Filters.Estado,
			Producto:   body.Filters.Producto,
			FechaDesde: body.Filters.FechaDesde,
			FechaHasta: body.Filters.FechaHasta,
			OrdenarPor: body.Filters.OrdenarPor,
			Orden:      body.Filters.Orden,
			Page:       page,
			PageSize:   100,
		})
		if err != nil {
			return nil, err
		}
		credits = append(credits, result.Results...)
		if result.Next == nil || len(result.Results) == 0 {
			return credits, nil
		}
	}
}

// ExportPayments handles POST /export/pagos
func (h *handlers) ExportPayments(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExportBody(w, r)
	if !ok {
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	page, err := h.credit.GetClientPayments(r.Context(), client.ClienteID, &creditapi.PaymentFilters{
		FechaDesde: body.Filters.FechaDesde,
		FechaHasta: body.Filters.FechaHasta,
		Medio:      body.Filters.Medio,
		Estado:     body.Filters.Estado,
		All:        true,
	})
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, constants.ErrUpstreamUnavailable)
		return
	}

	report, err := pipeline.PreparePayments(page.Results)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.respondArtifact(w, r, constants.DomainPayments, report, body)
}

// Share handles POST /export/share: builds the deep link and returns it to
// the caller, which performs the actual navigation.
func (h *handlers) Share(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string     `json:"session_id"`
		Domain    string     `json:"domain"`
		Method    string     `json:"method"`
		Filters   filterBody `json:"filters,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	report, err := h.prepareDomain(r, client.ClienteID, body.Domain, &exportBody{Filters: body.Filters})
	if err != nil {
		var rowErr *pipeline.RowError
		switch {
		case errors.Is(err, errUnknownDomain):
			writeJSONError(w, http.StatusBadRequest, constants.ErrUnknownDomain)
		case errors.As(err, &rowErr):
			writeJSONError(w, http.StatusUnprocessableEntity, rowErr.Error())
		default:
			writeJSONError(w, http.StatusBadGateway, constants.ErrUpstreamUnavailable)
		}
		return
	}

	var shareURL string
	err = pipeline.Share(report, pipeline.ShareMethod(body.Method), func(link string) error {
		shareURL = link
		return nil
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, constants.ErrUnsupportedMethod)
		return
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("[Export] client %d shared %s via %s", client.ClienteID, body.Domain, body.Method))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"share_url":          shareURL,
		"summary":            pipeline.Summary(report),
		"total_de_registros": len(report.Rows),
	})
}

func (h *handlers) prepareDomain(r *http.Request, clienteID int, domain string, body *exportBody) (*pipeline.TabularReport, error) {
	switch domain {
	case constants.DomainSchedule:
		page, err := h.credit.GetClientSchedule(r.Context(), clienteID, &creditapi.ScheduleFilters{
			Estado:     body.Filters.Estado,
			Producto:   body.Filters.Producto,
			FechaDesde: body.Filters.FechaDesde,
			FechaHasta: body.Filters.FechaHasta,
			All:        true,
		})
		if err != nil {
			return nil, err
		}
		return pipeline.PrepareSchedule(page.Results)
	case constants.DomainCredits:
		credits, err := h.fetchAllCredits(r, clienteID, body)
		if err != nil {
			return nil, err
		}
		return pipeline.PrepareCredits(credits)
	case constants.DomainPayments:
		page, err := h.credit.GetClientPayments(r.Context(), clienteID, &creditapi.PaymentFilters{
			FechaDesde: body.Filters.FechaDesde,
			FechaHasta: body.Filters.FechaHasta,
			Medio:      body.Filters.Medio,
			All:        true,
		})
		if err != nil {
			return nil, err
		}
		return pipeline.PreparePayments(page.Results)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDomain, domain)
	}
}

// loadVerifiedArtifact re-reads a saved artifact and checks it against the
// digest recorded at export time, so a rotated or tampered file is never
// handed back out.
func loadVerifiedArtifact(dir string, rec *history.Record) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, rec.Filename))
	if err != nil {
		return nil, err
	}
	ok, err := checksum.NewMatcher(rec.Checksum).Match(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("artifact %s does not match its recorded checksum", rec.Filename)
	}
	return data, nil
}

// Download handles POST /export/descargar: re-serves a previously produced
// artifact from the export history.
func (h *handlers) Download(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
		ExportID  string `json:"export_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ExportID == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if h.history == nil {
		writeJSONError(w, http.StatusServiceUnavailable, constants.ErrHistoryUnavailable)
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	rec, err := h.history.GetByID(r.Context(), body.ExportID, client.ClienteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, constants.ErrExportNotFound)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, constants.ErrHistoryUnavailable)
		return
	}

	data, err := loadVerifiedArtifact(h.exportDir, rec)
	if err != nil {
		if os.IsNotExist(err) {
			// swept by retention or never saved
			writeJSONError(w, http.StatusNotFound, constants.ErrExportNotFound)
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("[Export] stored artifact %s failed verification: %v", rec.Filename, err))
		}
		writeJSONError(w, http.StatusInternalServerError, constants.ErrExportFailed)
		return
	}

	mimeType := pipeline.FormatMIME(pipeline.Format(rec.Format))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	w.Header().Set("X-Artifact-Checksum", rec.Checksum)
	w.Write(data)
}

// History handles POST /export/history
func (h *handlers) History(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
		Limit     int    `json:"limit,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if h.history == nil {
		writeJSONError(w, http.StatusServiceUnavailable, constants.ErrHistoryUnavailable)
		return
	}
	client, _ := api.GetClientFromCtx(r.Context())

	records, err := h.history.ListByClient(r.Context(), client.ClienteID, body.Limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, constants.ErrHistoryUnavailable)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"results": records})
}
