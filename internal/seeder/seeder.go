package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Lautaok/panel-pedidos/internal/database"
	"github.com/Lautaok/panel-pedidos/internal/entity"
)

// Module provides the seeder for CLI use.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Orders seeds example orders when the table is empty.
func (s *Seeder) Orders(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		if s.logger != nil {
			s.logger.Info("orders already present; skipping seed", zap.Int("count", count))
		}
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	samples := []entity.Order{
		{CustomerName: "Ana", Product: "Widget", Quantity: 5, OrderDate: today, DeliveryDate: today.AddDate(0, 0, 2), Status: entity.DefaultStatus},
		{CustomerName: "Carlos", Product: "Gadget", Quantity: 1, OrderDate: today, DeliveryDate: today.AddDate(0, 0, 10), Status: entity.DefaultStatus},
	}

	for _, sample := range samples {
		order := sample
		if _, err := s.db.NewInsert().Model(&order).Exec(ctx); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	}
	return nil
}
