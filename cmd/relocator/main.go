package main

import (
	"context"
	"log"

	"github.com/relocator/relocator/cmd/relocator/cmd"
	"github.com/relocator/relocator/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.Init(ctx)
	if err != nil {
		log.Printf("telemetry: %v, continuing without tracing", err)
	}
	defer shutdown(ctx)

	cmd.Execute()
}
