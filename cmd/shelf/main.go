package main

import (
	"context"
	"log"

	"github.com/MrSnakeDoc/shelf/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("❌ shelf failed to start: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("❌ shelf stopped with an error: %v", err)
	}
}
