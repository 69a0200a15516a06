package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tbgclient/cmd/tbg/commands"
	"tbgclient/lib/telemetry"

	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	})))

	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "tbg")
	if err == nil {
		defer tel.Shutdown(context.Background())
	} else if !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}

	commands.ExecuteContext(ctx)
}
