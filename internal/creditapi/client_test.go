package creditapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientNormalizesBaseURL(t *testing.T) {
	require.Equal(t, "http://host:8000/api", NewClient("http://host:8000").BaseURL())
	require.Equal(t, "http://host:8000/api", NewClient("http://host:8000/").BaseURL())
	require.Equal(t, "http://host:8000/api", NewClient("http://host:8000/api").BaseURL())
	require.Equal(t, "http://host:8000/api", NewClient("http://host:8000/api/").BaseURL())
}

func TestSearchClientByDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/clientes/buscar_cliente/", r.URL.Path)
		require.Equal(t, "1032456789", r.URL.Query().Get("num_doc"))
		require.Equal(t, "CC", r.URL.Query().Get("tipo_doc"))
		json.NewEncoder(w).Encode(ClientProfile{
			ClienteID: 7,
			TipoDoc:   "CC",
			NumDoc:    "1032456789",
			Nombre:    "Laura Gómez",
			Ciudad:    "Bogotá",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	profile, err := client.SearchClientByDocument(context.Background(), "1032456789", "")
	require.NoError(t, err)
	require.Equal(t, 7, profile.ClienteID)
	require.Equal(t, "Laura Gómez", profile.Nombre)
}

func TestSearchClientByDocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Cliente no encontrado"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SearchClientByDocument(context.Background(), "000", "CC")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Cliente no encontrado", apiErr.Body)
}

func TestGetClientScheduleAllMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cronograma/", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("all"))
		require.Equal(t, "7", r.URL.Query().Get("cliente_id"))
		require.Equal(t, "pendiente", r.URL.Query().Get("estado"))
		// all-mode responses are a bare array, not a page envelope
		json.NewEncoder(w).Encode([]ScheduleEntry{
			{ScheduleID: 1, NumCuota: 1, FechaVencimiento: "2024-01-15", ValorCuota: "100000", Estado: "pendiente"},
			{ScheduleID: 2, NumCuota: 2, FechaVencimiento: "2024-02-15", ValorCuota: "100000", Estado: "pendiente"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.GetClientSchedule(context.Background(), 7, &ScheduleFilters{
		Estado: "pendiente",
		All:    true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	require.Nil(t, page.Next)
}

func TestGetClientSchedulePaginated(t *testing.T) {
	next := "http://example/api/cronograma/?page=2"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("page_size"))
		json.NewEncoder(w).Encode(SchedulePage{
			Count:       15,
			Next:        &next,
			TotalPages:  2,
			CurrentPage: 1,
			PageSize:    10,
			Results:     make([]ScheduleEntry, 10),
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.GetClientSchedule(context.Background(), 7, &ScheduleFilters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 15, page.Count)
	require.NotNil(t, page.Next)
	require.Len(t, page.Results, 10)
}

func TestGetClientCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/creditos/", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("cliente_id"))
		json.NewEncoder(w).Encode(CreditPage{
			Count: 1,
			Results: []Credit{
				{CreditoID: 12, Producto: "e-bike", Inversion: "4500000.00", TEA: "0.285", FechaDesembolso: "2023-11-02", Estado: "activo"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.GetClientCredits(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, "e-bike", page.Results[0].Producto)
}

func TestGetClientPaymentsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetClientPayments(context.Background(), 7, &PaymentFilters{All: true})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestGetScheduleSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cronograma/resumen/", r.URL.Path)
		json.NewEncoder(w).Encode(ScheduleSummary{
			TotalCuotas:      36,
			CuotasPagadas:    12,
			CuotasPendientes: 24,
			PorcentajePagado: 33.3,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	summary, err := client.GetScheduleSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 36, summary.TotalCuotas)
	require.Equal(t, 12, summary.CuotasPagadas)
}
