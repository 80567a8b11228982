package order

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Lautaok/panel-pedidos/internal/dto"
	"github.com/Lautaok/panel-pedidos/internal/entity"
	"github.com/Lautaok/panel-pedidos/internal/presentation/http/response"
	service "github.com/Lautaok/panel-pedidos/internal/service/order"
	"github.com/Lautaok/panel-pedidos/pkg/errorbank"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var httpTracer = otel.Tracer("github.com/Lautaok/panel-pedidos/transport/http/order")

// Handler exposes the order dashboard and form endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. The rendering layer lives
// elsewhere; every GET returns the plain view model and every successful
// write redirects back to the dashboard.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/", h.dashboard)
	g := e.Group("/orders")
	g.GET("/new", h.newForm)
	g.POST("/new", h.create)
	g.GET("/:id", h.editForm)
	g.POST("/:id", h.update)
	g.GET("/:id/delete", h.remove)
}

func (h *Handler) dashboard(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.dashboard")
	defer span.End()

	entries, err := h.svc.Dashboard(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	view := make([]dto.DashboardEntry, 0, len(entries))
	for _, entry := range entries {
		view = append(view, dto.DashboardEntry{
			Order: toDTO(&entry.Order),
			Alert: entry.Alert,
		})
	}
	span.SetAttributes(attribute.Int("orders.count", len(view)))

	return b.WithData(view).WithMeta("count", len(view)).Build()
}

func (h *Handler) newForm(c echo.Context) error {
	return response.New(c).WithData(dto.OrderForm{}).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	fields, err := parseOrderForm(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.String("order.customer", fields.CustomerName),
	))
	defer span.End()

	order := &entity.Order{
		CustomerName: fields.CustomerName,
		Product:      fields.Product,
		Quantity:     fields.Quantity,
		DeliveryDate: fields.DeliveryDate,
	}
	if err := h.svc.Create(ctx, order); err != nil {
		return b.WithError(err).Build()
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) editForm(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.editForm", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}
	fields, err := parseOrderForm(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if _, err := h.svc.Update(ctx, id, fields); err != nil {
		return b.WithError(err).Build()
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errorbank.BadRequest("invalid id", errorbank.WithCause(err))
	}
	return id, nil
}

// parseOrderForm validates the submitted form fields shared by the create and
// update routes.
func parseOrderForm(c echo.Context) (service.UpdateFields, error) {
	name := c.FormValue("nombre")
	product := c.FormValue("producto")
	if name == "" || product == "" {
		return service.UpdateFields{}, errorbank.BadRequest("nombre and producto are required")
	}

	quantity, err := strconv.Atoi(c.FormValue("cantidad"))
	if err != nil {
		return service.UpdateFields{}, errorbank.BadRequest("cantidad must be an integer", errorbank.WithCause(err))
	}

	delivery, err := time.Parse(dto.DateLayout, c.FormValue("fecha_entrega"))
	if err != nil {
		return service.UpdateFields{}, errorbank.BadRequest("fecha_entrega must be a YYYY-MM-DD date", errorbank.WithCause(err))
	}

	return service.UpdateFields{
		CustomerName: name,
		Product:      product,
		Quantity:     quantity,
		DeliveryDate: delivery,
	}, nil
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Product:      order.Product,
		Quantity:     order.Quantity,
		OrderDate:    order.OrderDate.Format(dto.DateLayout),
		DeliveryDate: order.DeliveryDate.Format(dto.DateLayout),
		Status:       order.Status,
	}
}
