package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/backend"
	httpdelivery "github.com/ting-32/noodle/internal/delivery/http"
	"github.com/ting-32/noodle/internal/models"
)

type backendStub struct {
	snap    models.Snapshot
	snapErr error
	applied []models.WriteRequest
	err     error
}

var _ backend.Backend = (*backendStub)(nil)

func (b *backendStub) Snapshot(context.Context) (models.Snapshot, error) { return b.snap, b.snapErr }

func (b *backendStub) Apply(_ context.Context, req models.WriteRequest) error {
	b.applied = append(b.applied, req)
	return b.err
}

func (b *backendStub) HandleMessage(context.Context, []byte) error { return nil }

func serveBackend(b backend.Backend, method, body string) *httptest.ResponseRecorder {
	r := httpdelivery.NewBackendHandler(b).InitRoutes()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBackend_GetSnapshot(t *testing.T) {
	b := &backendStub{snap: models.Snapshot{
		Stores:   []models.Store{{StoreName: "North", HolidayDates: []string{}}},
		Products: []models.Product{},
		Orders:   []models.Order{},
	}}
	w := serveBackend(b, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok","stores":[{"storeName":"North","phone":"","holidayDates":[],"deliveryTime":""}],"products":[],"orders":[]}`, w.Body.String())

	b.snapErr = errors.New("db down")
	w = serveBackend(b, http.MethodGet, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestBackend_PostWrite(t *testing.T) {
	b := &backendStub{}
	w := serveBackend(b, http.MethodPost, `{"action":"saveProducts","products":[{"itemName":"noodle","unit":"kg"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.Len(t, b.applied, 1)
	require.Equal(t, models.ActionSaveProducts, b.applied[0].Action)

	b.err = fmt.Errorf("%w: duplicate product", backend.ErrValidation)
	w = serveBackend(b, http.MethodPost, `{"action":"saveProducts","products":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"error"`)
	require.Contains(t, w.Body.String(), "duplicate product")

	w = serveBackend(b, http.MethodPost, `not json`)
	require.Contains(t, w.Body.String(), `"status":"error"`)
}
