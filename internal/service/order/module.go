package order

import (
	"go.uber.org/fx"

	repo "github.com/Lautaok/panel-pedidos/internal/repository/order"
)

// Module provides the order service to Fx, binding the bun repository to the
// Storage port.
var Module = fx.Options(
	fx.Provide(func(r *repo.Repository) Storage { return r }),
	fx.Provide(NewService),
)
