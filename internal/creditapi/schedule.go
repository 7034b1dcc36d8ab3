package creditapi

import (
	"context"
	"net/url"
	"strconv"
)

// ScheduleFilters narrows a schedule listing. All=true asks the upstream
// for the full, unpaginated set.
type ScheduleFilters struct {
	Estado     string
	Producto   string
	FechaDesde string
	FechaHasta string
	OrdenarPor string // fecha | cuota | valor | estado
	Orden      string // asc | desc
	Page       int
	PageSize   int
	All        bool
}

func (f *ScheduleFilters) values() url.Values {
	params := url.Values{}
	if f == nil {
		return params
	}
	if f.Estado != "" {
		params.Set("estado", f.Estado)
	}
	if f.Producto != "" {
		params.Set("producto", f.Producto)
	}
	if f.FechaDesde != "" {
		params.Set("fecha_desde", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		params.Set("fecha_hasta", f.FechaHasta)
	}
	if f.OrdenarPor != "" {
		params.Set("ordenar_por", f.OrdenarPor)
	}
	if f.Orden != "" {
		params.Set("orden", f.Orden)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	if f.All {
		params.Set("all", "true")
	}
	return params
}

// SchedulePage is the paginated envelope for schedule listings.
type SchedulePage struct {
	Count       int             `json:"count"`
	Next        *string         `json:"next"`
	Previous    *string         `json:"previous"`
	TotalPages  int             `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
	PageSize    int             `json:"page_size"`
	Results     []ScheduleEntry `json:"results"`
}

// GetClientSchedule lists a client's payment schedule. With All set the
// upstream returns a bare array, which is wrapped into a single page here.
func (c *Client) GetClientSchedule(ctx context.Context, clienteID int, filters *ScheduleFilters) (*SchedulePage, error) {
	params := filters.values()
	params.Set("cliente_id", strconv.Itoa(clienteID))

	if filters != nil && filters.All {
		var results []ScheduleEntry
		if err := c.getJSON(ctx, "cronograma/", params, &results); err != nil {
			return nil, err
		}
		return &SchedulePage{Count: len(results), Results: results}, nil
	}

	var page SchedulePage
	if err := c.getJSON(ctx, "cronograma/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCreditSchedule lists the schedule of a single credit.
func (c *Client) GetCreditSchedule(ctx context.Context, creditoID int) ([]ScheduleEntry, error) {
	params := url.Values{}
	params.Set("credito", strconv.Itoa(creditoID))

	var entries []ScheduleEntry
	if err := c.getJSON(ctx, "cronograma/", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetScheduleSummary fetches the upstream-computed schedule aggregate.
func (c *Client) GetScheduleSummary(ctx context.Context, clienteID int) (*ScheduleSummary, error) {
	params := url.Values{}
	params.Set("cliente_id", strconv.Itoa(clienteID))

	var summary ScheduleSummary
	if err := c.getJSON(ctx, "cronograma/resumen/", params, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
