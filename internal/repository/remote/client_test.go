package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/repository/remote"
)

func TestClient_Fetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.NotEmpty(t, r.URL.Query().Get("t"), "cache buster expected")
		_, _ = w.Write([]byte(`{
			"stores":[{"storeName":"North","phone":"1","holidayDates":["2024-05-01"],"deliveryTime":"08:00"}],
			"products":[{"itemName":"noodle","unit":"kg"}],
			"orders":[{"id":"r1","date":"2024-05-01","deliveryTime":"08:00","storeName":"North","itemName":"noodle","quantity":3,"status":"pending"}]
		}`))
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Stores, 1)
	require.Equal(t, []string{"2024-05-01"}, snap.Stores[0].HolidayDates)
	require.Equal(t, []models.Product{{ItemName: "noodle", Unit: "kg"}}, snap.Products)
	require.Len(t, snap.Orders, 1)
	require.Equal(t, 3, snap.Orders[0].Quantity)
}

func TestClient_Fetch_RemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"sheet missing"}`))
	}))
	defer srv.Close()

	_, err := remote.NewClient(srv.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "sheet missing")
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := remote.NewClient(srv.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestClient_SaveOrders_SendsEnvelope(t *testing.T) {
	var got models.WriteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	err := c.SaveOrders(context.Background(), []models.Order{{
		ID: "a", Date: "2024-05-01", DeliveryTime: "08:00", StoreName: "North",
		ItemName: "noodle", Quantity: 2, Status: models.StatusPending,
	}})
	require.NoError(t, err)
	require.Equal(t, models.ActionSaveOrders, got.Action)
	require.Len(t, got.Orders, 1)
	require.Equal(t, "a", got.Orders[0].ID)
}

func TestClient_Save_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"locked"}`))
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL, time.Second)
	err := c.SaveStores(context.Background(), []models.Store{{StoreName: "North"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "saveStores rejected: locked")

	err = c.SaveProducts(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "saveProducts")
}

func TestClient_Save_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := remote.NewClient(url, 200*time.Millisecond).SaveOrders(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "saveOrders")
}
