package main

import (
	"os"

	"github.com/Lautaok/panel-pedidos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
