package creditapi

import (
	"context"
	"net/url"
	"strconv"
)

// PaymentFilters narrows a payment listing.
type PaymentFilters struct {
	FechaDesde string
	FechaHasta string
	Medio      string
	Estado     string
	Page       int
	PageSize   int
	All        bool
}

func (f *PaymentFilters) values() url.Values {
	params := url.Values{}
	if f == nil {
		return params
	}
	if f.FechaDesde != "" {
		params.Set("fecha_desde", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		params.Set("fecha_hasta", f.FechaHasta)
	}
	if f.Medio != "" {
		params.Set("medio", f.Medio)
	}
	if f.Estado != "" {
		params.Set("estado", f.Estado)
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

// PaymentPage is the paginated envelope for payment listings.
type PaymentPage struct {
	Count       int       `json:"count"`
	Next        *string   `json:"next"`
	Previous    *string   `json:"previous"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	PageSize    int       `json:"page_size"`
	Results     []Payment `json:"results"`
}

// GetClientPayments lists a client's recorded payments. With All set the
// upstream returns a bare array, wrapped into a single page here.
func (c *Client) GetClientPayments(ctx context.Context, clienteID int, filters *PaymentFilters) (*PaymentPage, error) {
	params := filters.values()
	params.Set("cliente_id", strconv.Itoa(clienteID))

	if filters != nil && filters.All {
		var results []Payment
		if err := c.getJSON(ctx, "pagos/", params, &results); err != nil {
			return nil, err
		}
		return &PaymentPage{Count: len(results), Results: results}, nil
	}

	var page PaymentPage
	if err := c.getJSON(ctx, "pagos/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCreditPayments lists the payments applied against a single credit.
func (c *Client) GetCreditPayments(ctx context.Context, creditoID int) ([]Payment, error) {
	params := url.Values{}
	params.Set("credito", strconv.Itoa(creditoID))

	var payments []Payment
	if err := c.getJSON(ctx, "pagos/", params, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPaymentSummary fetches the upstream-computed payment aggregate.
func (c *Client) GetPaymentSummary(ctx context.Context, clienteID int) (*PaymentSummary, error) {
	params := url.Values{}
	params.Set("cliente_id", strconv.Itoa(clienteID))

	var summary PaymentSummary
	if err := c.getJSON(ctx, "pagos/resumen/", params, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
