package main

import (
	"go.uber.org/fx"

	"github.com/Lautaok/panel-pedidos/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
