package app

import (
	"go.uber.org/fx"

	"github.com/Lautaok/panel-pedidos/internal/cache"
	"github.com/Lautaok/panel-pedidos/internal/config"
	"github.com/Lautaok/panel-pedidos/internal/database"
	"github.com/Lautaok/panel-pedidos/internal/logger"
	"github.com/Lautaok/panel-pedidos/internal/messaging"
	"github.com/Lautaok/panel-pedidos/internal/observability"
	repositoryorder "github.com/Lautaok/panel-pedidos/internal/repository/order"
	httpserver "github.com/Lautaok/panel-pedidos/internal/server/http"
	serviceorder "github.com/Lautaok/panel-pedidos/internal/service/order"
	transporthttp "github.com/Lautaok/panel-pedidos/internal/transport/http"
	"github.com/Lautaok/panel-pedidos/internal/worker"
	workerorder "github.com/Lautaok/panel-pedidos/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
