package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/hashaudit/internal/engine"
	"github.com/dmitrijs2005/hashaudit/internal/engine/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := engine.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
