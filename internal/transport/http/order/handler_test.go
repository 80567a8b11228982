package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lautaok/panel-pedidos/internal/config"
	"github.com/Lautaok/panel-pedidos/internal/entity"
	repo "github.com/Lautaok/panel-pedidos/internal/repository/order"
	service "github.com/Lautaok/panel-pedidos/internal/service/order"
)

type memStorage struct {
	orders map[int64]entity.Order
	nextID int64
}

func newMemStorage() *memStorage {
	return &memStorage{orders: make(map[int64]entity.Order)}
}

func (m *memStorage) Create(_ context.Context, order *entity.Order) error {
	m.nextID++
	order.ID = m.nextID
	m.orders[order.ID] = *order
	return nil
}

func (m *memStorage) List(context.Context) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DeliveryDate.Equal(out[j].DeliveryDate) {
			return out[i].DeliveryDate.Before(out[j].DeliveryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStorage) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &order, nil
}

func (m *memStorage) Update(_ context.Context, order *entity.Order) error {
	existing, ok := m.orders[order.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.CustomerName = order.CustomerName
	existing.Product = order.Product
	existing.Quantity = order.Quantity
	existing.DeliveryDate = order.DeliveryDate
	m.orders[order.ID] = existing
	return nil
}

func (m *memStorage) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func setup(t *testing.T) (*echo.Echo, *memStorage) {
	t.Helper()

	storage := newMemStorage()
	svc := service.NewService(service.Params{
		Storage: storage,
		Config:  config.Config{},
		Logger:  zap.NewNop(),
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e, storage
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestCreateOrderRedirects(t *testing.T) {
	e, storage := setup(t)

	rec := postForm(e, "/orders/new", url.Values{
		"nombre":        {"Ana"},
		"producto":      {"Widget"},
		"cantidad":      {"5"},
		"fecha_entrega": {"2030-01-02"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	order, err := storage.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, "Widget", order.Product)
	assert.Equal(t, 5, order.Quantity)
	assert.Equal(t, "2030-01-02", order.DeliveryDate.Format("2006-01-02"))
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, today(), order.OrderDate)
}

func TestCreateOrderValidation(t *testing.T) {
	e, storage := setup(t)

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing nombre", url.Values{"producto": {"Widget"}, "cantidad": {"5"}, "fecha_entrega": {"2030-01-02"}}},
		{"missing producto", url.Values{"nombre": {"Ana"}, "cantidad": {"5"}, "fecha_entrega": {"2030-01-02"}}},
		{"non-numeric cantidad", url.Values{"nombre": {"Ana"}, "producto": {"Widget"}, "cantidad": {"five"}, "fecha_entrega": {"2030-01-02"}}},
		{"missing cantidad", url.Values{"nombre": {"Ana"}, "producto": {"Widget"}, "fecha_entrega": {"2030-01-02"}}},
		{"malformed fecha_entrega", url.Values{"nombre": {"Ana"}, "producto": {"Widget"}, "cantidad": {"5"}, "fecha_entrega": {"02/01/2030"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postForm(e, "/orders/new", tc.form)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			payload := decode(t, rec)
			assert.Equal(t, false, payload["success"])
			assert.Equal(t, "bad_request", payload["error"].(map[string]any)["kind"])
		})
	}

	assert.Empty(t, storage.orders)
}

func TestDashboard(t *testing.T) {
	e, storage := setup(t)

	soon := &entity.Order{CustomerName: "Ana", Product: "Widget", Quantity: 5, OrderDate: today(), DeliveryDate: today().AddDate(0, 0, 1), Status: "Pending"}
	far := &entity.Order{CustomerName: "Carlos", Product: "Gadget", Quantity: 1, OrderDate: today(), DeliveryDate: today().AddDate(0, 0, 30), Status: "Pending"}
	require.NoError(t, storage.Create(context.Background(), far))
	require.NoError(t, storage.Create(context.Background(), soon))

	rec := get(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	assert.Equal(t, true, payload["success"])

	entries := payload["data"].([]any)
	require.Len(t, entries, 2)

	first := entries[0].(map[string]any)
	second := entries[1].(map[string]any)

	// sorted by delivery date: the due order comes first and alerts
	assert.Equal(t, "Ana", first["order"].(map[string]any)["customer_name"])
	assert.Equal(t, true, first["alert"])
	assert.Equal(t, "Carlos", second["order"].(map[string]any)["customer_name"])
	assert.Equal(t, false, second["alert"])
}

func TestDashboardEmpty(t *testing.T) {
	e, _ := setup(t)

	rec := get(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, true, payload["success"])
}

func TestNewFormEndpoint(t *testing.T) {
	e, _ := setup(t)

	rec := get(e, "/orders/new")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, true, payload["success"])
}

func TestEditFormPrefilled(t *testing.T) {
	e, storage := setup(t)

	order := &entity.Order{CustomerName: "Ana", Product: "Widget", Quantity: 5, OrderDate: today(), DeliveryDate: today().AddDate(0, 0, 7), Status: "Pending"}
	require.NoError(t, storage.Create(context.Background(), order))

	rec := get(e, "/orders/1")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "Ana", data["customer_name"])
	assert.Equal(t, "Widget", data["product"])
	assert.Equal(t, float64(5), data["quantity"])
}

func TestEditFormNotFound(t *testing.T) {
	e, _ := setup(t)

	rec := get(e, "/orders/99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "not_found", payload["error"].(map[string]any)["kind"])
}

func TestUpdateOrder(t *testing.T) {
	e, storage := setup(t)

	order := &entity.Order{CustomerName: "Ana", Product: "Widget", Quantity: 5, OrderDate: today(), DeliveryDate: today().AddDate(0, 0, 7), Status: "Pending"}
	require.NoError(t, storage.Create(context.Background(), order))

	rec := postForm(e, "/orders/1", url.Values{
		"nombre":        {"Ana"},
		"producto":      {"Widget"},
		"cantidad":      {"7"},
		"fecha_entrega": {"2030-07-05"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	updated, err := storage.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "2030-07-05", updated.DeliveryDate.Format("2006-01-02"))
	assert.Equal(t, today(), updated.OrderDate)
}

func TestUpdateOrderNotFound(t *testing.T) {
	e, _ := setup(t)

	rec := postForm(e, "/orders/99", url.Values{
		"nombre":        {"Ana"},
		"producto":      {"Widget"},
		"cantidad":      {"7"},
		"fecha_entrega": {"2030-07-05"},
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOrder(t *testing.T) {
	e, storage := setup(t)

	order := &entity.Order{CustomerName: "Ana", Product: "Widget", Quantity: 5, OrderDate: today(), DeliveryDate: today().AddDate(0, 0, 7), Status: "Pending"}
	require.NoError(t, storage.Create(context.Background(), order))

	rec := get(e, "/orders/1/delete")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	_, err := storage.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	rec = get(e, "/orders/1/delete")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	e, _ := setup(t)

	rec := get(e, "/orders/abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
