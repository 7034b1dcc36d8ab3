package creditapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreditFilters narrows a credit listing. Zero values are omitted.
type CreditFilters struct {
	Estado     string
	Producto   string
	FechaDesde string
	FechaHasta string
	OrdenarPor string // fecha | inversion | estado | producto
	Orden      string // asc | desc
	Page       int
	PageSize   int
}

func (f *CreditFilters) values() url.Values {
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
	return params
}

// CreditPage is the paginated envelope for credit listings.
type CreditPage struct {
	Count       int      `json:"count"`
	Next        *string  `json:"next"`
	Previous    *string  `json:"previous"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	PageSize    int      `json:"page_size"`
	Results     []Credit `json:"results"`
}

// GetClientCredits lists a client's credits, paginated and filtered.
func (c *Client) GetClientCredits(ctx context.Context, clienteID int, filters *CreditFilters) (*CreditPage, error) {
	params := filters.values()
	params.Set("cliente_id", strconv.Itoa(clienteID))

	var page CreditPage
	if err := c.getJSON(ctx, "creditos/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCredit fetches a single credit by id.
func (c *Client) GetCredit(ctx context.Context, creditoID int) (*Credit, error) {
	var credit Credit
	if err := c.getJSON(ctx, fmt.Sprintf("creditos/%d/", creditoID), nil, &credit); err != nil {
		return nil, err
	}
	return &credit, nil
}
