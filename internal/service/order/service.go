package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Lautaok/panel-pedidos/internal/alert"
	"github.com/Lautaok/panel-pedidos/internal/cache"
	"github.com/Lautaok/panel-pedidos/internal/config"
	"github.com/Lautaok/panel-pedidos/internal/entity"
	"github.com/Lautaok/panel-pedidos/internal/messaging"
	repo "github.com/Lautaok/panel-pedidos/internal/repository/order"
	"github.com/Lautaok/panel-pedidos/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Lautaok/panel-pedidos/service/order")

// Storage is the persistence gateway the service depends on. The bun-backed
// repository satisfies it; tests substitute an in-memory implementation.
type Storage interface {
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]entity.Order, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
}

// UpdateFields holds the order attributes replaceable after creation.
// Id, order date and status are immutable through this path.
type UpdateFields struct {
	CustomerName string
	Product      string
	Quantity     int
	DeliveryDate time.Time
}

// DashboardEntry pairs an order with its due-date alert flag.
type DashboardEntry struct {
	Order entity.Order
	Alert bool
}

// Service encapsulates business logic around orders.
type Service struct {
	storage   Storage
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Storage   Storage
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		storage:   p.Storage,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		now: time.Now,
	}
}

// Create persists a new order. The order date is stamped with the current
// date and the status defaults to Pending; both are ignored on input.
func (s *Service) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errorbank.BadRequest("order payload is required")
	}
	order.OrderDate = dateOf(s.now())
	if order.Status == "" {
		order.Status = entity.DefaultStatus
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.String("order.customer", order.CustomerName)))
	defer span.End()

	if err := s.storage.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		if s.logger != nil {
			s.logger.Warn("orders cache write failed", zap.Int64("id", order.ID), zap.Error(err))
		}
	}

	s.publishOrderCreated(ctx, order)
	return nil
}

// Dashboard lists every order sorted by delivery date and annotates each with
// its alert flag computed against the current date.
func (s *Service) Dashboard(ctx context.Context) ([]DashboardEntry, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Dashboard")
	defer span.End()

	orders, err := s.storage.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}

	today := s.now()
	entries := make([]DashboardEntry, 0, len(orders))
	for _, order := range orders {
		entries = append(entries, DashboardEntry{
			Order: order,
			Alert: alert.Due(order.DeliveryDate, today),
		})
	}
	span.SetAttributes(attribute.Int("orders.count", len(entries)))
	return entries, nil
}

// Get retrieves an order by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("orders cache read failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	order, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		if s.logger != nil {
			s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return order, nil
}

// Update replaces the editable fields of an existing order and returns the
// updated record. Id and order date survive unchanged.
func (s *Service) Update(ctx context.Context, id int64, fields UpdateFields) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	order.CustomerName = fields.CustomerName
	order.Product = fields.Product
	order.Quantity = fields.Quantity
	order.DeliveryDate = dateOf(fields.DeliveryDate)

	if err := s.storage.Update(ctx, order); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return nil, errorbank.Internal("failed to update order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		if s.logger != nil {
			s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return order, nil
}

// Delete removes an order permanently and drops its cache entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage error")
		return errorbank.Internal("failed to delete order", errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
			if s.logger != nil {
				s.logger.Warn("orders cache delete failed", zap.Int64("id", id), zap.Error(err))
			}
		}
	}

	return nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Product:      order.Product,
		Quantity:     order.Quantity,
		DeliveryDate: order.DeliveryDate,
		Status:       order.Status,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order created", zap.Error(err))
		}
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) error {
	if s.cache == nil || order == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(order.ID), bytes, s.cacheTTL)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Product      string    `json:"product"`
	Quantity     int       `json:"quantity"`
	DeliveryDate time.Time `json:"delivery_date"`
	Status       string    `json:"status"`
}
