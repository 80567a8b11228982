package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lautaok/panel-pedidos/internal/database"
	"github.com/Lautaok/panel-pedidos/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Lautaok/panel-pedidos/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// Repository encapsulates read/write access for orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new order using the write connection. The assigned id is
// written back into the model.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.String("order.customer", order.CustomerName)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// List returns every order sorted by delivery date ascending. Orders sharing
// a delivery date keep insertion order via the id tiebreak.
func (r *Repository) List(ctx context.Context) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	var orders []entity.Order
	err := r.reader.NewSelect().Model(&orders).
		Order("delivery_date ASC").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// GetByID fetches an order by primary key using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// Update overwrites the editable columns of an existing order in a single
// statement. Id, order_date and status are never touched here.
func (r *Repository) Update(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Update", trace.WithAttributes(attribute.Int64("order.id", order.ID)))
	defer span.End()

	res, err := r.writer.NewUpdate().Model(order).
		Column("customer_name", "product", "quantity", "delivery_date").
		WherePK().
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}

// Delete removes an order permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().Model((*entity.Order)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}
