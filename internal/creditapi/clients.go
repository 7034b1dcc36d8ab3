package creditapi

import (
	"context"
	"net/url"

	"RodaClientPortal/internal/config"
)

// SearchClientByDocument resolves a client profile from a document number.
// tipoDoc defaults to CC when empty.
func (c *Client) SearchClientByDocument(ctx context.Context, numDoc, tipoDoc string) (*ClientProfile, error) {
	if tipoDoc == "" {
		tipoDoc = config.DefaultDocType
	}
	params := url.Values{}
	params.Set("num_doc", numDoc)
	params.Set("tipo_doc", tipoDoc)

	var profile ClientProfile
	if err := c.getJSON(ctx, "clientes/buscar_cliente/", params, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
